package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/domain/catalog"
)

// ListProductsRequest 商品列表查询请求
type ListProductsRequest struct {
	Page       int    // 页码(小于1时按第1页处理)
	CategoryID int    // 按分类过滤(0表示不过滤)
	Search     string // 关键字搜索
}

// ListProductsUseCase 商品列表用例
type ListProductsUseCase struct {
	repo catalog.Repository
	log  *zap.Logger
}

// NewListProductsUseCase 创建商品列表用例
func NewListProductsUseCase(repo catalog.Repository, log *zap.Logger) *ListProductsUseCase {
	return &ListProductsUseCase{
		repo: repo,
		log:  log,
	}
}

// Execute 分页查询商品列表
func (uc *ListProductsUseCase) Execute(ctx context.Context, req *ListProductsRequest) ([]catalog.Product, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	products, err := uc.repo.ListProducts(ctx, catalog.ProductQuery{
		Page:       page,
		CategoryID: req.CategoryID,
		Search:     req.Search,
	})
	if err != nil {
		uc.log.Error("查询商品列表失败",
			zap.Int("page", page),
			zap.Int("category_id", req.CategoryID),
			zap.Error(err))
		return nil, err
	}
	return products, nil
}
