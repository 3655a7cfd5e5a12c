package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/storefront/internal/application/order"
	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/interface/http/dto"
	"github.com/xiebiao/storefront/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	history         *apporder.History
	getOrderUseCase *apporder.GetOrderUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(history *apporder.History, getOrderUseCase *apporder.GetOrderUseCase) *OrderHandler {
	return &OrderHandler{
		history:         history,
		getOrderUseCase: getOrderUseCase,
	}
}

// ListOrders 查询本地订单列表
// @Summary      订单列表
// @Description  读取本地订单摘要(离线可用,新订单在前),不请求远端
// @Tags         订单
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.OrderSummaryResponse}
// @Router       /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	summaries, err := h.history.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.FromOrderSummaries(summaries))
}

// GetOrder 查询订单详情
// @Summary      订单详情
// @Description  从远端商城查询订单详情,明细项补充商品主图
// @Tags         订单
// @Produce      json
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      200 {object} response.Response "订单不存在(code=40402)"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, order.ErrInvalidOrderID)
		return
	}

	o, err := h.getOrderUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.FromOrder(o))
}

// Reconcile 触发订单对账
// @Summary      订单对账
// @Description  将本地订单摘要与远端商城逐条核对:远端已删除的移除,状态漂移的刷新
// @Tags         订单
// @Produce      json
// @Success      200 {object} response.Response{data=dto.ReconcileResponse}
// @Router       /api/v1/orders/reconcile [post]
func (h *OrderHandler) Reconcile(c *gin.Context) {
	report, err := h.history.Reconcile(c.Request.Context(), apporder.ModeInteractive)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.ReconcileResponse{
		Checked: report.Checked,
		Removed: report.Removed,
		Updated: report.Updated,
		Kept:    report.Kept,
	})
}
