// Package checkout 结算应用服务
package checkout

import (
	"context"
	"time"

	"go.uber.org/zap"

	appcart "github.com/xiebiao/storefront/internal/application/cart"
	apporder "github.com/xiebiao/storefront/internal/application/order"
	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/pkg/metrics"
)

// 货到付款是当前唯一的支付方式,下单时不标记已支付
const (
	paymentMethodCOD      = "cod"
	paymentMethodCODTitle = "Cash on Delivery"
)

// PlaceOrderUseCase 下单用例
// 流程:校验购物车和买家信息 -> 远端创建订单 -> 记录本地摘要 -> 清空购物车
type PlaceOrderUseCase struct {
	cartMgr   *appcart.Manager
	orderRepo order.Repository
	history   *apporder.History
	publisher apporder.EventPublisher // 可为nil(事件发布关闭)
	log       *zap.Logger
}

// NewPlaceOrderUseCase 创建下单用例
func NewPlaceOrderUseCase(
	cartMgr *appcart.Manager,
	orderRepo order.Repository,
	history *apporder.History,
	publisher apporder.EventPublisher,
	log *zap.Logger,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		cartMgr:   cartMgr,
		orderRepo: orderRepo,
		history:   history,
		publisher: publisher,
		log:       log,
	}
}

// placedEvent 下单成功事件载荷
type placedEvent struct {
	OrderID     int    `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Total       string `json:"total"`
	Status      string `json:"status"`
	PlacedAt    string `json:"placed_at"`
}

// Execute 执行下单
// 设计说明:
// 1. 价格不传给远端,由远端按当前售价计算(防改价)
// 2. 摘要记录失败不回滚订单(远端订单已创建,本地摘要可通过对账补偿)
// 3. 购物车只在下单成功后清空,失败时保留以便重试
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, customer *order.CustomerInfo, note string) (*order.Order, error) {
	state := uc.cartMgr.State()
	if state.IsEmpty() {
		return nil, order.ErrEmptyCart
	}

	if err := customer.Validate(); err != nil {
		return nil, err
	}

	address := customer.ToAddress()
	draft := &order.Draft{
		PaymentMethod:      paymentMethodCOD,
		PaymentMethodTitle: paymentMethodCODTitle,
		SetPaid:            false,
		CustomerNote:       note,
		Billing:            address,
		Shipping:           address,
		Lines:              make([]order.DraftLine, 0, len(state.Items)),
	}
	for _, item := range state.Items {
		draft.Lines = append(draft.Lines, order.DraftLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	start := time.Now()
	o, err := uc.orderRepo.Create(ctx, draft)
	if err != nil {
		uc.log.Error("远端创建订单失败", zap.Error(err))
		if metrics.OrdersFailedTotal != nil {
			metrics.OrdersFailedTotal.Inc()
		}
		return nil, err
	}

	uc.log.Info("下单成功",
		zap.Int("order_id", o.ID),
		zap.String("order_number", o.Number),
		zap.String("total", o.Total),
	)
	if metrics.OrdersPlacedTotal != nil {
		metrics.OrdersPlacedTotal.Inc()
	}
	if metrics.OrderPlacementDuration != nil {
		metrics.OrderPlacementDuration.Observe(time.Since(start).Seconds())
	}

	// 摘要记录失败只记日志:远端订单是事实,本地列表缺失可通过对账补偿
	if err := uc.history.Record(ctx, o); err != nil {
		uc.log.Warn("本地订单摘要记录失败", zap.Int("order_id", o.ID), zap.Error(err))
	}

	// 清空购物车(持久化失败在Manager内部兜底)
	if _, err := uc.cartMgr.Clear(ctx); err != nil {
		uc.log.Warn("下单后清空购物车失败", zap.Error(err))
	}

	uc.publishPlaced(o)
	return o, nil
}

// publishPlaced 发布下单成功事件(尽力而为)
func (uc *PlaceOrderUseCase) publishPlaced(o *order.Order) {
	if uc.publisher == nil {
		return
	}
	event := placedEvent{
		OrderID:     o.ID,
		OrderNumber: o.Number,
		Total:       o.Total,
		Status:      o.Status,
		PlacedAt:    time.Now().Format(time.RFC3339),
	}
	if err := uc.publisher.Publish("order.placed", event); err != nil {
		uc.log.Warn("下单事件发布失败", zap.Error(err))
		if metrics.MessagesPublishedTotal != nil {
			metrics.MessagesPublishedTotal.WithLabelValues("order.placed", "failure").Inc()
		}
		return
	}
	if metrics.MessagesPublishedTotal != nil {
		metrics.MessagesPublishedTotal.WithLabelValues("order.placed", "success").Inc()
	}
}
