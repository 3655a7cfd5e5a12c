package order

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/domain/catalog"
	"github.com/xiebiao/storefront/internal/domain/order"
)

// GetOrderUseCase 订单详情查询用例
// 远端订单接口不返回商品图片,详情展示需要逐商品补充主图
type GetOrderUseCase struct {
	orderRepo   order.Repository
	catalogRepo catalog.Repository
	history     *History
	log         *zap.Logger
}

// NewGetOrderUseCase 创建订单详情查询用例
func NewGetOrderUseCase(orderRepo order.Repository, catalogRepo catalog.Repository, history *History, log *zap.Logger) *GetOrderUseCase {
	return &GetOrderUseCase{
		orderRepo:   orderRepo,
		catalogRepo: catalogRepo,
		history:     history,
		log:         log,
	}
}

// Execute 查询订单详情并补充商品主图
//
// 图片补充是尽力而为的:商品被删除或查询失败时该明细无图,
// 不影响订单详情本身的返回
func (uc *GetOrderUseCase) Execute(ctx context.Context, orderID int) (*order.Order, error) {
	if orderID <= 0 {
		return nil, order.ErrInvalidOrderID
	}

	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		// 远端404说明订单已删除,顺手移除本地摘要(不等下次对账)
		if errors.Is(err, order.ErrOrderNotFound) {
			if rmErr := uc.history.Remove(ctx, orderID); rmErr != nil {
				uc.log.Warn("移除本地订单摘要失败", zap.Int("order_id", orderID), zap.Error(rmErr))
			}
		}
		return nil, err
	}

	// 详情是最新的远端状态,顺手刷新本地摘要
	if err := uc.history.SyncFromOrder(ctx, o); err != nil {
		uc.log.Warn("刷新本地订单摘要失败", zap.Int("order_id", orderID), zap.Error(err))
	}

	for idx := range o.LineItems {
		product, err := uc.catalogRepo.FindProductByID(ctx, o.LineItems[idx].ProductID)
		if err != nil {
			uc.log.Debug("补充商品主图失败",
				zap.Int("product_id", o.LineItems[idx].ProductID),
				zap.Error(err))
			continue
		}
		o.LineItems[idx].ImageURL = product.MainImage()
	}

	return o, nil
}
