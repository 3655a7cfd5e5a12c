package catalog

import (
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// 商品目录领域错误定义
var (
	// ErrProductNotFound 商品不存在(远端返回404)
	ErrProductNotFound = apperrors.New(apperrors.ErrCodeProductNotFound, "商品不存在")

	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")

	// ErrInvalidProductID 商品ID不合法
	ErrInvalidProductID = apperrors.New(apperrors.ErrCodeInvalidParams, "商品ID必须大于0")
)
