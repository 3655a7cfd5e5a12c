package catalog

import (
	"context"
)

// ProductQuery 商品列表查询条件
type ProductQuery struct {
	Page       int    // 页码(从1开始)
	CategoryID int    // 按分类过滤(0表示不过滤)
	Search     string // 关键字搜索(空表示不搜索)
}

// Repository 商品目录仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(远端商城接口客户端)
// 2. 商品数据归远端商城所有,仓储只提供读操作
type Repository interface {
	// ListCategories 查询所有商品分类
	ListCategories(ctx context.Context) ([]Category, error)

	// ListProducts 分页查询商品列表
	ListProducts(ctx context.Context, query ProductQuery) ([]Product, error)

	// FindProductByID 根据ID查找商品
	// 商品不存在时返回ErrProductNotFound
	FindProductByID(ctx context.Context, id int) (*Product, error)
}
