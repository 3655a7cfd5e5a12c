package handler

import (
	"github.com/gin-gonic/gin"

	appcheckout "github.com/xiebiao/storefront/internal/application/checkout"
	"github.com/xiebiao/storefront/internal/interface/http/dto"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/response"
)

// CheckoutHandler 结算HTTP处理器
type CheckoutHandler struct {
	placeOrderUseCase *appcheckout.PlaceOrderUseCase
}

// NewCheckoutHandler 创建结算处理器
func NewCheckoutHandler(placeOrderUseCase *appcheckout.PlaceOrderUseCase) *CheckoutHandler {
	return &CheckoutHandler{placeOrderUseCase: placeOrderUseCase}
}

// Checkout 下单结算
// @Summary      下单结算
// @Description  货到付款下单:远端创建订单,成功后记录本地摘要并清空购物车
// @Tags         结算
// @Accept       json
// @Produce      json
// @Param        request body dto.CheckoutRequest true "买家信息"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      200 {object} response.Response "购物车为空(code=40001)或收货信息不完整(code=40003)"
// @Router       /api/v1/checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	o, err := h.placeOrderUseCase.Execute(c.Request.Context(), req.ToCustomerInfo(), req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.FromOrder(o))
}
