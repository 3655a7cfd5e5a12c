package commerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/domain/catalog"
	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.CommerceConfig{
		BaseURL:        server.URL,
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
		Timeout:        5 * time.Second,
		PageSize:       20,
	}, zap.NewNop())
	return client, server
}

// TestClient_ListCategories 测试分类列表查询
func TestClient_ListCategories(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/categories", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Equal(t, "true", r.URL.Query().Get("hide_empty"))

		// 验证Basic Auth凭证
		user, pass, ok := r.BasicAuth()
		require.True(t, ok, "应该携带Basic Auth")
		assert.Equal(t, "ck_test", user)
		assert.Equal(t, "cs_test", pass)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 15, "name": "数码配件", "slug": "gadgets", "count": 8, "image": {"src": "https://shop.example.com/img/cat.jpg"}},
			{"id": 16, "name": "空分类", "slug": "empty", "count": 0, "image": null}
		]`))
	}))

	categories, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)

	assert.Equal(t, 15, categories[0].ID)
	assert.Equal(t, "数码配件", categories[0].Name)
	assert.Equal(t, 8, categories[0].Count)
	assert.Equal(t, "https://shop.example.com/img/cat.jpg", categories[0].ImageURL)
	assert.Equal(t, "", categories[1].ImageURL, "image为null时URL为空")
}

// TestClient_ListProducts 测试商品列表查询
func TestClient_ListProducts(t *testing.T) {
	t.Run("分页和过滤参数", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products", r.URL.Path)
			assert.Equal(t, "20", r.URL.Query().Get("per_page"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "publish", r.URL.Query().Get("status"))
			assert.Equal(t, "15", r.URL.Query().Get("category"))
			assert.Equal(t, "耳机", r.URL.Query().Get("search"))

			w.Write([]byte(`[{"id": 18, "name": "蓝牙耳机", "price": "45.00", "stock_status": "instock",
				"images": [{"id": 1, "src": "https://shop.example.com/img/p.jpg", "name": "主图"}],
				"categories": [{"id": 15, "name": "数码配件", "slug": "gadgets"}]}]`))
		}))

		products, err := client.ListProducts(context.Background(), catalog.ProductQuery{
			Page:       2,
			CategoryID: 15,
			Search:     "耳机",
		})
		require.NoError(t, err)
		require.Len(t, products, 1)

		assert.Equal(t, 18, products[0].ID)
		assert.Equal(t, "45.00", products[0].Price)
		assert.Equal(t, "https://shop.example.com/img/p.jpg", products[0].MainImage())
		require.Len(t, products[0].Categories, 1)
		assert.Equal(t, 15, products[0].Categories[0].ID)
	})

	t.Run("页码不合法时按第1页处理", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			assert.Empty(t, r.URL.Query().Get("category"), "未指定分类时不传category参数")
			w.Write([]byte(`[]`))
		}))

		products, err := client.ListProducts(context.Background(), catalog.ProductQuery{Page: 0})
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

// TestClient_FindProductByID 测试商品详情查询
func TestClient_FindProductByID(t *testing.T) {
	t.Run("商品存在", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products/18", r.URL.Path)
			w.Write([]byte(`{"id": 18, "name": "蓝牙耳机", "price": "45.00", "on_sale": true, "sale_price": "45.00", "regular_price": "60.00"}`))
		}))

		p, err := client.FindProductByID(context.Background(), 18)
		require.NoError(t, err)
		assert.Equal(t, "蓝牙耳机", p.Name)
		assert.True(t, p.OnSale)
		assert.Equal(t, "60.00", p.RegularPrice)
	})

	t.Run("商品不存在返回领域错误", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"code": "woocommerce_rest_product_invalid_id"}`))
		}))

		_, err := client.FindProductByID(context.Background(), 999)
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})
}

// TestClient_Create 测试远端下单
func TestClient_Create(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "cod", body["payment_method"])
		assert.Equal(t, false, body["set_paid"], "货到付款不应标记已支付")

		billing := body["billing"].(map[string]interface{})
		assert.Equal(t, "Rahim", billing["first_name"])
		assert.Equal(t, "BD", billing["country"])

		lines := body["line_items"].([]interface{})
		require.Len(t, lines, 1)
		line := lines[0].(map[string]interface{})
		assert.EqualValues(t, 18, line["product_id"])
		assert.EqualValues(t, 2, line["quantity"])
		assert.NotContains(t, line, "price", "下单不应传价格,金额由远端计算")

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 531, "number": "531", "status": "pending", "total": "90.00",
			"date_created": "2026-03-12T09:41:00",
			"line_items": [{"id": 1, "product_id": 18, "name": "蓝牙耳机", "quantity": 2, "price": 45, "total": "90.00"}]}`))
	}))

	addr := order.Address{
		FirstName: "Rahim", LastName: "Uddin", Address1: "House 12", City: "Dhaka",
		Country: "BD", Email: "rahim@example.com", Phone: "01712345678",
	}
	created, err := client.Create(context.Background(), &order.Draft{
		PaymentMethod:      "cod",
		PaymentMethodTitle: "Cash on Delivery",
		SetPaid:            false,
		Billing:            addr,
		Shipping:           addr,
		Lines:              []order.DraftLine{{ProductID: 18, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, 531, created.ID)
	assert.Equal(t, "531", created.Number)
	assert.Equal(t, "90.00", created.Total)
	require.Len(t, created.LineItems, 1)
	assert.Equal(t, "45", created.LineItems[0].Price, "明细单价是JSON数字,转为字符串保存")
}

// TestClient_FindByID 测试订单查询
func TestClient_FindByID(t *testing.T) {
	t.Run("订单存在", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/orders/531", r.URL.Path)
			w.Write([]byte(`{"id": 531, "number": "531", "status": "processing", "total": "90.00"}`))
		}))

		o, err := client.FindByID(context.Background(), 531)
		require.NoError(t, err)
		assert.Equal(t, "processing", o.Status)
	})

	t.Run("订单不存在返回领域错误", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		_, err := client.FindByID(context.Background(), 999)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

// TestClient_RemoteErrors 测试远端错误映射
func TestClient_RemoteErrors(t *testing.T) {
	t.Run("5xx映射为远端错误", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		_, err := client.ListCategories(context.Background())
		require.Error(t, err)

		appErr := apperrors.GetAppError(err)
		assert.Equal(t, apperrors.ErrCodeRemoteError, appErr.Code)
	})

	t.Run("连续失败后熔断快速失败", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		// 触发连续失败直到熔断开启
		for i := 0; i < 5; i++ {
			client.ListCategories(context.Background())
		}

		_, err := client.ListCategories(context.Background())
		require.Error(t, err)

		appErr := apperrors.GetAppError(err)
		assert.Equal(t, apperrors.ErrCodeRemoteDown, appErr.Code, "熔断开启后应该快速失败")
	})

	t.Run("非404的4xx不映射为NotFound", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"code": "woocommerce_rest_cannot_view"}`))
		}))

		_, err := client.FindProductByID(context.Background(), 18)
		require.Error(t, err)

		appErr := apperrors.GetAppError(err)
		assert.Equal(t, apperrors.ErrCodeRemoteError, appErr.Code)
	})
}
