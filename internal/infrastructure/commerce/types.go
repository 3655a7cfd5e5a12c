package commerce

import (
	"encoding/json"

	"github.com/xiebiao/storefront/internal/domain/catalog"
	"github.com/xiebiao/storefront/internal/domain/order"
)

// 远端商城接口的传输结构
// 设计说明:
// 1. 与远端JSON字段一一对应(snake_case),不直接暴露给domain层
// 2. 明细单价price远端返回JSON数字,其余金额返回字符串,用json.Number统一承接
// 3. 转换函数负责传输结构→领域实体的映射

// categoryPayload 分类
type categoryPayload struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
	Image *struct {
		Src string `json:"src"`
	} `json:"image"`
}

func (c *categoryPayload) toDomain() catalog.Category {
	imageURL := ""
	if c.Image != nil {
		imageURL = c.Image.Src
	}
	return catalog.Category{
		ID:       c.ID,
		Name:     c.Name,
		Slug:     c.Slug,
		Count:    c.Count,
		ImageURL: imageURL,
	}
}

// imagePayload 商品图片
type imagePayload struct {
	ID   int    `json:"id"`
	Src  string `json:"src"`
	Name string `json:"name"`
}

// categoryRefPayload 商品所属分类
type categoryRefPayload struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// productPayload 商品
type productPayload struct {
	ID               int                  `json:"id"`
	Name             string               `json:"name"`
	Slug             string               `json:"slug"`
	Price            string               `json:"price"`
	RegularPrice     string               `json:"regular_price"`
	SalePrice        string               `json:"sale_price"`
	OnSale           bool                 `json:"on_sale"`
	Description      string               `json:"description"`
	ShortDescription string               `json:"short_description"`
	StockStatus      string               `json:"stock_status"`
	Images           []imagePayload       `json:"images"`
	Categories       []categoryRefPayload `json:"categories"`
}

func (p *productPayload) toDomain() catalog.Product {
	images := make([]catalog.Image, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, catalog.Image{ID: img.ID, Src: img.Src, Name: img.Name})
	}
	categories := make([]catalog.CategoryRef, 0, len(p.Categories))
	for _, ref := range p.Categories {
		categories = append(categories, catalog.CategoryRef{ID: ref.ID, Name: ref.Name, Slug: ref.Slug})
	}
	return catalog.Product{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		Price:            p.Price,
		RegularPrice:     p.RegularPrice,
		SalePrice:        p.SalePrice,
		OnSale:           p.OnSale,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		StockStatus:      p.StockStatus,
		Images:           images,
		Categories:       categories,
	}
}

// addressPayload 订单地址
type addressPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	Postcode  string `json:"postcode,omitempty"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

func addressFromDomain(a order.Address) addressPayload {
	return addressPayload{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		State:     a.State,
		Postcode:  a.Postcode,
		Country:   a.Country,
		Email:     a.Email,
		Phone:     a.Phone,
	}
}

func (a *addressPayload) toDomain() order.Address {
	return order.Address{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		State:     a.State,
		Postcode:  a.Postcode,
		Country:   a.Country,
		Email:     a.Email,
		Phone:     a.Phone,
	}
}

// lineItemPayload 订单明细
type lineItemPayload struct {
	ID        int         `json:"id"`
	ProductID int         `json:"product_id"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	Price     json.Number `json:"price"` // 远端返回JSON数字
	Total     string      `json:"total"`
}

// orderPayload 订单
type orderPayload struct {
	ID            int               `json:"id"`
	Number        string            `json:"number"`
	Status        string            `json:"status"`
	Total         string            `json:"total"`
	Currency      string            `json:"currency"`
	DateCreated   string            `json:"date_created"`
	PaymentMethod string            `json:"payment_method"`
	Billing       addressPayload    `json:"billing"`
	Shipping      addressPayload    `json:"shipping"`
	LineItems     []lineItemPayload `json:"line_items"`
}

func (o *orderPayload) toDomain() *order.Order {
	lines := make([]order.LineItem, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		lines = append(lines, order.LineItem{
			ID:        li.ID,
			ProductID: li.ProductID,
			Name:      li.Name,
			Quantity:  li.Quantity,
			Price:     li.Price.String(),
			Total:     li.Total,
		})
	}
	return &order.Order{
		ID:            o.ID,
		Number:        o.Number,
		Status:        o.Status,
		Total:         o.Total,
		Currency:      o.Currency,
		DateCreated:   o.DateCreated,
		PaymentMethod: o.PaymentMethod,
		Billing:       o.Billing.toDomain(),
		Shipping:      o.Shipping.toDomain(),
		LineItems:     lines,
	}
}

// createLinePayload 下单明细(只传商品ID和数量)
type createLinePayload struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// createOrderPayload 下单请求体
type createOrderPayload struct {
	PaymentMethod      string              `json:"payment_method"`
	PaymentMethodTitle string              `json:"payment_method_title"`
	SetPaid            bool                `json:"set_paid"`
	CustomerNote       string              `json:"customer_note,omitempty"`
	Billing            addressPayload      `json:"billing"`
	Shipping           addressPayload      `json:"shipping"`
	LineItems          []createLinePayload `json:"line_items"`
}

func createOrderFromDraft(draft *order.Draft) createOrderPayload {
	lines := make([]createLinePayload, 0, len(draft.Lines))
	for _, l := range draft.Lines {
		lines = append(lines, createLinePayload{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return createOrderPayload{
		PaymentMethod:      draft.PaymentMethod,
		PaymentMethodTitle: draft.PaymentMethodTitle,
		SetPaid:            draft.SetPaid,
		CustomerNote:       draft.CustomerNote,
		Billing:            addressFromDomain(draft.Billing),
		Shipping:           addressFromDomain(draft.Shipping),
		LineItems:          lines,
	}
}
