// Package catalog 商品目录应用服务
//
// 目录数据归远端商城所有,应用层只做编排和业务过滤,不做缓存
package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/domain/catalog"
)

// ListCategoriesUseCase 分类列表用例
type ListCategoriesUseCase struct {
	repo catalog.Repository
	log  *zap.Logger
}

// NewListCategoriesUseCase 创建分类列表用例
func NewListCategoriesUseCase(repo catalog.Repository, log *zap.Logger) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		repo: repo,
		log:  log,
	}
}

// Execute 查询分类列表
// 业务规则:空分类(没有商品)不返回
func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]catalog.Category, error) {
	categories, err := uc.repo.ListCategories(ctx)
	if err != nil {
		uc.log.Error("查询分类列表失败", zap.Error(err))
		return nil, err
	}

	visible := make([]catalog.Category, 0, len(categories))
	for _, c := range categories {
		if c.HasProducts() {
			visible = append(visible, c)
		}
	}
	return visible, nil
}
