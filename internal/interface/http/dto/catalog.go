package dto

import (
	"github.com/xiebiao/storefront/internal/domain/catalog"
)

// ListProductsRequest HTTP商品列表请求
type ListProductsRequest struct {
	Page       int    `form:"page" binding:"omitempty,min=1" example:"1"`
	CategoryID int    `form:"category_id" binding:"omitempty,min=1" example:"5"`
	Search     string `form:"search" binding:"omitempty,max=100" example:"耳机"`
}

// CategoryResponse HTTP分类响应
type CategoryResponse struct {
	ID       int    `json:"id" example:"5"`
	Name     string `json:"name" example:"数码配件"`
	Slug     string `json:"slug" example:"accessories"`
	Count    int    `json:"count" example:"12"`
	ImageURL string `json:"image_url" example:"https://shop.example.com/img/cat.jpg"`
}

// ProductListItem HTTP商品列表项
// 列表查询不返回描述字段(减少数据传输量)
type ProductListItem struct {
	ID       int    `json:"id" example:"18"`
	Name     string `json:"name" example:"蓝牙耳机"`
	Slug     string `json:"slug" example:"bluetooth-headset"`
	Price    string `json:"price" example:"45.00"`
	OnSale   bool   `json:"on_sale" example:"false"`
	ImageURL string `json:"image_url" example:"https://shop.example.com/img/p.jpg"`
	InStock  bool   `json:"in_stock" example:"true"`
}

// ProductResponse HTTP商品详情响应
type ProductResponse struct {
	ID               int                `json:"id" example:"18"`
	Name             string             `json:"name" example:"蓝牙耳机"`
	Slug             string             `json:"slug" example:"bluetooth-headset"`
	Price            string             `json:"price" example:"45.00"`
	RegularPrice     string             `json:"regular_price" example:"50.00"`
	SalePrice        string             `json:"sale_price" example:"45.00"`
	OnSale           bool               `json:"on_sale" example:"true"`
	Description      string             `json:"description"`
	ShortDescription string             `json:"short_description"`
	InStock          bool               `json:"in_stock" example:"true"`
	Images           []ProductImage     `json:"images"`
	Categories       []ProductCategory  `json:"categories"`
}

// ProductImage 商品图片
type ProductImage struct {
	Src  string `json:"src" example:"https://shop.example.com/img/p.jpg"`
	Name string `json:"name" example:"主图"`
}

// ProductCategory 商品所属分类
type ProductCategory struct {
	ID   int    `json:"id" example:"5"`
	Name string `json:"name" example:"数码配件"`
	Slug string `json:"slug" example:"accessories"`
}

// FromCategory 领域分类转HTTP响应
func FromCategory(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		Slug:     c.Slug,
		Count:    c.Count,
		ImageURL: c.ImageURL,
	}
}

// FromProductList 领域商品列表转HTTP列表项
func FromProductList(products []catalog.Product) []ProductListItem {
	items := make([]ProductListItem, 0, len(products))
	for i := range products {
		p := &products[i]
		items = append(items, ProductListItem{
			ID:       p.ID,
			Name:     p.Name,
			Slug:     p.Slug,
			Price:    p.Price,
			OnSale:   p.OnSale,
			ImageURL: p.MainImage(),
			InStock:  p.InStock(),
		})
	}
	return items
}

// FromProduct 领域商品转HTTP详情
func FromProduct(p *catalog.Product) *ProductResponse {
	images := make([]ProductImage, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, ProductImage{Src: img.Src, Name: img.Name})
	}
	categories := make([]ProductCategory, 0, len(p.Categories))
	for _, ref := range p.Categories {
		categories = append(categories, ProductCategory{ID: ref.ID, Name: ref.Name, Slug: ref.Slug})
	}
	return &ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		Price:            p.Price,
		RegularPrice:     p.RegularPrice,
		SalePrice:        p.SalePrice,
		OnSale:           p.OnSale,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		InStock:          p.InStock(),
		Images:           images,
		Categories:       categories,
	}
}
