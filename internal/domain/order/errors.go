package order

import (
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在(远端返回404)
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrEmptyCart 购物车为空,不能下单
	ErrEmptyCart = apperrors.New(apperrors.ErrCodeEmptyCart, "购物车为空")

	// ErrInvalidOrderID 订单ID不合法
	ErrInvalidOrderID = apperrors.New(apperrors.ErrCodeInvalidParams, "订单ID必须大于0")

	// 收货信息校验错误
	ErrMissingFirstName = apperrors.New(apperrors.ErrCodeMissingField, "请填写名字")
	ErrMissingLastName  = apperrors.New(apperrors.ErrCodeMissingField, "请填写姓氏")
	ErrMissingEmail     = apperrors.New(apperrors.ErrCodeMissingField, "请填写邮箱")
	ErrMissingPhone     = apperrors.New(apperrors.ErrCodeMissingField, "请填写联系电话")
	ErrMissingAddress   = apperrors.New(apperrors.ErrCodeMissingField, "请填写详细地址")
	ErrMissingCity      = apperrors.New(apperrors.ErrCodeMissingField, "请填写城市")
	ErrMissingState     = apperrors.New(apperrors.ErrCodeMissingField, "请填写省/州")
	ErrMissingPostcode  = apperrors.New(apperrors.ErrCodeMissingField, "请填写邮政编码")
	ErrInvalidEmail     = apperrors.New(apperrors.ErrCodeInvalidEmail, "邮箱格式不正确")
)
