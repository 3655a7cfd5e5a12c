package dto

import (
	"github.com/xiebiao/storefront/internal/domain/cart"
)

// AddCartItemRequest HTTP加购请求
// 只传商品ID和数量,价格等快照信息由服务端从远端商城取(防改价)
type AddCartItemRequest struct {
	ProductID int `json:"product_id" binding:"required,min=1" example:"18"`
	Quantity  int `json:"quantity" binding:"omitempty" example:"2"`
}

// UpdateCartItemRequest HTTP修改数量请求
// 数量小于等于0表示移除该条目
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" example:"3"`
}

// CartItemResponse HTTP购物车条目
type CartItemResponse struct {
	ProductID int    `json:"product_id" example:"18"`
	Name      string `json:"name" example:"蓝牙耳机"`
	Price     string `json:"price" example:"45.00"`
	ImageURL  string `json:"image_url" example:"https://shop.example.com/img/p.jpg"`
	Quantity  int    `json:"quantity" example:"2"`
}

// CartResponse HTTP购物车响应
type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	Total     string             `json:"total" example:"102.50"`
	ItemCount int                `json:"item_count" example:"3"`
}

// FromCartState 领域购物车状态转HTTP响应
func FromCartState(s *cart.State) *CartResponse {
	items := make([]CartItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, CartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			ImageURL:  item.ImageURL,
			Quantity:  item.Quantity,
		})
	}
	return &CartResponse{
		Items:     items,
		Total:     s.Total.StringFixed(2),
		ItemCount: s.ItemCount,
	}
}
