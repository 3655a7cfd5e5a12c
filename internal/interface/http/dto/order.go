package dto

import (
	"github.com/xiebiao/storefront/internal/domain/order"
)

// CheckoutRequest HTTP结算请求
// 字段完整性校验在领域层进行(固定校验顺序,返回业务错误码),
// 这里只做格式层面的宽松绑定
type CheckoutRequest struct {
	FirstName string `json:"first_name" example:"张"`
	LastName  string `json:"last_name" example:"三"`
	Address1  string `json:"address_1" example:"幸福路1号"`
	Address2  string `json:"address_2" example:""`
	City      string `json:"city" example:"达卡"`
	State     string `json:"state" example:""`
	Postcode  string `json:"postcode" example:"1212"`
	Country   string `json:"country" example:"BD"`
	Email     string `json:"email" example:"zhangsan@example.com"`
	Phone     string `json:"phone" example:"13800000000"`
	Note      string `json:"note" binding:"omitempty,max=500" example:"请工作日送货"`
}

// ToCustomerInfo 转换为领域买家信息
func (r *CheckoutRequest) ToCustomerInfo() *order.CustomerInfo {
	return &order.CustomerInfo{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Address1:  r.Address1,
		Address2:  r.Address2,
		City:      r.City,
		State:     r.State,
		Postcode:  r.Postcode,
		Country:   r.Country,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

// OrderSummaryResponse HTTP订单摘要(列表项)
type OrderSummaryResponse struct {
	ID          int    `json:"id" example:"531"`
	OrderNumber string `json:"order_number" example:"531"`
	Total       string `json:"total" example:"102.50"`
	Status      string `json:"status" example:"pending"`
	DateCreated string `json:"date_created" example:"2026-03-12T09:41:00"`
}

// OrderLineItemResponse HTTP订单明细项
type OrderLineItemResponse struct {
	ProductID int    `json:"product_id" example:"18"`
	Name      string `json:"name" example:"蓝牙耳机"`
	Quantity  int    `json:"quantity" example:"2"`
	Price     string `json:"price" example:"45.00"`
	Total     string `json:"total" example:"90.00"`
	ImageURL  string `json:"image_url" example:"https://shop.example.com/img/p.jpg"`
}

// OrderAddressResponse HTTP订单地址
type OrderAddressResponse struct {
	FirstName string `json:"first_name" example:"张"`
	LastName  string `json:"last_name" example:"三"`
	Address1  string `json:"address_1" example:"幸福路1号"`
	Address2  string `json:"address_2" example:""`
	City      string `json:"city" example:"达卡"`
	State     string `json:"state" example:""`
	Postcode  string `json:"postcode" example:"1212"`
	Country   string `json:"country" example:"BD"`
	Email     string `json:"email" example:"zhangsan@example.com"`
	Phone     string `json:"phone" example:"13800000000"`
}

// OrderResponse HTTP订单详情响应
type OrderResponse struct {
	ID            int                     `json:"id" example:"531"`
	Number        string                  `json:"number" example:"531"`
	Status        string                  `json:"status" example:"pending"`
	Total         string                  `json:"total" example:"102.50"`
	Currency      string                  `json:"currency" example:"BDT"`
	DateCreated   string                  `json:"date_created" example:"2026-03-12T09:41:00"`
	PaymentMethod string                  `json:"payment_method" example:"cod"`
	Billing       OrderAddressResponse    `json:"billing"`
	Shipping      OrderAddressResponse    `json:"shipping"`
	LineItems     []OrderLineItemResponse `json:"line_items"`
}

// ReconcileResponse HTTP对账结果响应
type ReconcileResponse struct {
	Checked int `json:"checked" example:"5"`
	Removed int `json:"removed" example:"1"`
	Updated int `json:"updated" example:"2"`
	Kept    int `json:"kept" example:"0"`
}

// FromOrderSummaries 领域订单摘要转HTTP列表
func FromOrderSummaries(summaries []order.Summary) []OrderSummaryResponse {
	list := make([]OrderSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		list = append(list, OrderSummaryResponse{
			ID:          s.ID,
			OrderNumber: s.OrderNumber,
			Total:       s.Total,
			Status:      s.Status,
			DateCreated: s.DateCreated,
		})
	}
	return list
}

// FromOrder 领域订单转HTTP详情
func FromOrder(o *order.Order) *OrderResponse {
	lines := make([]OrderLineItemResponse, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		lines = append(lines, OrderLineItemResponse{
			ProductID: li.ProductID,
			Name:      li.Name,
			Quantity:  li.Quantity,
			Price:     li.Price,
			Total:     li.Total,
			ImageURL:  li.ImageURL,
		})
	}
	return &OrderResponse{
		ID:            o.ID,
		Number:        o.Number,
		Status:        o.Status,
		Total:         o.Total,
		Currency:      o.Currency,
		DateCreated:   o.DateCreated,
		PaymentMethod: o.PaymentMethod,
		Billing:       fromAddress(o.Billing),
		Shipping:      fromAddress(o.Shipping),
		LineItems:     lines,
	}
}

func fromAddress(a order.Address) OrderAddressResponse {
	return OrderAddressResponse{
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
