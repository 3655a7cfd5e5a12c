package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/storefront/internal/application/catalog"
	"github.com/xiebiao/storefront/internal/domain/catalog"
	"github.com/xiebiao/storefront/internal/interface/http/dto"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/response"
)

// CatalogHandler 商品目录HTTP处理器
type CatalogHandler struct {
	listCategoriesUseCase *appcatalog.ListCategoriesUseCase
	listProductsUseCase   *appcatalog.ListProductsUseCase
	getProductUseCase     *appcatalog.GetProductUseCase
}

// NewCatalogHandler 创建商品目录处理器
func NewCatalogHandler(
	listCategoriesUseCase *appcatalog.ListCategoriesUseCase,
	listProductsUseCase *appcatalog.ListProductsUseCase,
	getProductUseCase *appcatalog.GetProductUseCase,
) *CatalogHandler {
	return &CatalogHandler{
		listCategoriesUseCase: listCategoriesUseCase,
		listProductsUseCase:   listProductsUseCase,
		getProductUseCase:     getProductUseCase,
	}
}

// ListCategories 查询分类列表
// @Summary      分类列表
// @Description  查询商品分类(空分类不返回)
// @Tags         商品目录
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.CategoryResponse}
// @Failure      200 {object} response.Response "远端商城不可用(code=50002/50003)"
// @Router       /api/v1/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.listCategoriesUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		list = append(list, *dto.FromCategory(&categories[i]))
	}
	response.Success(c, list)
}

// ListProducts 分页查询商品列表
// @Summary      商品列表
// @Description  分页查询商品,支持按分类过滤和关键字搜索
// @Tags         商品目录
// @Produce      json
// @Param        page query int false "页码(从1开始)"
// @Param        category_id query int false "分类ID"
// @Param        search query string false "搜索关键字"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var req dto.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	products, err := h.listProductsUseCase.Execute(c.Request.Context(), &appcatalog.ListProductsRequest{
		Page:       page,
		CategoryID: req.CategoryID,
		Search:     req.Search,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, dto.FromProductList(products), page, len(products))
}

// GetProduct 查询商品详情
// @Summary      商品详情
// @Tags         商品目录
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response{data=dto.ProductResponse}
// @Failure      200 {object} response.Response "商品不存在(code=40401)"
// @Router       /api/v1/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, catalog.ErrInvalidProductID)
		return
	}

	product, err := h.getProductUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.FromProduct(product))
}
