package order

import (
	"context"
)

// DraftLine 下单明细(只传商品ID和数量,价格由远端计算)
type DraftLine struct {
	ProductID int
	Quantity  int
}

// Draft 订单创建请求
// 设计说明:价格不由客户端传递,远端商城按当前售价计算总额(防改价攻击)
type Draft struct {
	PaymentMethod      string // 支付方式(如cod货到付款)
	PaymentMethodTitle string // 支付方式展示名
	SetPaid            bool   // 是否标记已支付(货到付款为false)
	CustomerNote       string // 买家备注
	Billing            Address
	Shipping           Address
	Lines              []DraftLine
}

// Repository 订单仓储接口(依赖倒置原则)
// 由domain层定义接口,infrastructure层通过远端商城接口实现
type Repository interface {
	// Create 在远端商城创建订单
	Create(ctx context.Context, draft *Draft) (*Order, error)

	// FindByID 根据ID查询远端订单
	// 订单不存在(远端返回404)时返回ErrOrderNotFound
	FindByID(ctx context.Context, id int) (*Order, error)
}
