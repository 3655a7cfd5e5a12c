package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/domain/catalog"
)

// GetProductUseCase 商品详情用例
type GetProductUseCase struct {
	repo catalog.Repository
	log  *zap.Logger
}

// NewGetProductUseCase 创建商品详情用例
func NewGetProductUseCase(repo catalog.Repository, log *zap.Logger) *GetProductUseCase {
	return &GetProductUseCase{
		repo: repo,
		log:  log,
	}
}

// Execute 查询商品详情
func (uc *GetProductUseCase) Execute(ctx context.Context, productID int) (*catalog.Product, error) {
	if productID <= 0 {
		return nil, catalog.ErrInvalidProductID
	}

	product, err := uc.repo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return product, nil
}
