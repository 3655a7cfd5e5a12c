// Package commerce 远端商城接口客户端
//
// 实现catalog.Repository和order.Repository,商品/订单数据归远端商城所有,
// 本服务只做读写代理。所有请求经过熔断器保护,远端持续故障时快速失败。
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/domain/catalog"
	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/metrics"
	"github.com/xiebiao/storefront/pkg/tracing"
)

// defaultPageSize 商品列表默认每页条数
const defaultPageSize = 20

// Client 远端商城接口客户端
type Client struct {
	baseURL    string
	key        string // Basic Auth用户名(consumer key)
	secret     string // Basic Auth密码(consumer secret)
	pageSize   int
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	log        *zap.Logger
}

// 编译期检查接口实现
var (
	_ catalog.Repository = (*Client)(nil)
	_ order.Repository   = (*Client)(nil)
)

// NewClient 创建客户端
func NewClient(cfg config.CommerceConfig, log *zap.Logger) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	breaker := circuitbreaker.NewCircuitBreaker("commerce-api", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Warn("熔断器状态变更",
			zap.String("name", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()))
		if metrics.CircuitBreakerState != nil {
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
		}
	})

	return &Client{
		baseURL:    cfg.BaseURL,
		key:        cfg.ConsumerKey,
		secret:     cfg.ConsumerSecret,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
		log:        log,
	}
}

// ListCategories 查询所有商品分类
// 分类总数不多,一次取满100条,空分类过滤交给应用层
func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	query := url.Values{}
	query.Set("per_page", "100")
	query.Set("hide_empty", "true")

	var payloads []categoryPayload
	if err := c.getJSON(ctx, "/products/categories", query, &payloads); err != nil {
		return nil, err
	}

	categories := make([]catalog.Category, 0, len(payloads))
	for idx := range payloads {
		categories = append(categories, payloads[idx].toDomain())
	}
	return categories, nil
}

// ListProducts 分页查询商品列表
func (c *Client) ListProducts(ctx context.Context, q catalog.ProductQuery) ([]catalog.Product, error) {
	page := q.Page
	if page <= 0 {
		page = 1
	}

	query := url.Values{}
	query.Set("per_page", strconv.Itoa(c.pageSize))
	query.Set("page", strconv.Itoa(page))
	query.Set("status", "publish")
	if q.CategoryID > 0 {
		query.Set("category", strconv.Itoa(q.CategoryID))
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}

	var payloads []productPayload
	if err := c.getJSON(ctx, "/products", query, &payloads); err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(payloads))
	for idx := range payloads {
		products = append(products, payloads[idx].toDomain())
	}
	return products, nil
}

// FindProductByID 根据ID查找商品
func (c *Client) FindProductByID(ctx context.Context, id int) (*catalog.Product, error) {
	var payload productPayload
	err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), nil, &payload)
	if err != nil {
		if isNotFound(err) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}
	product := payload.toDomain()
	return &product, nil
}

// Create 在远端商城创建订单
func (c *Client) Create(ctx context.Context, draft *order.Draft) (*order.Order, error) {
	body := createOrderFromDraft(draft)

	var payload orderPayload
	if err := c.postJSON(ctx, "/orders", body, &payload); err != nil {
		return nil, err
	}

	c.log.Info("远端订单创建成功",
		zap.Int("order_id", payload.ID),
		zap.String("order_number", payload.Number),
		zap.String("total", payload.Total))

	return payload.toDomain(), nil
}

// FindByID 根据ID查询远端订单
func (c *Client) FindByID(ctx context.Context, id int) (*order.Order, error) {
	var payload orderPayload
	err := c.getJSON(ctx, fmt.Sprintf("/orders/%d", id), nil, &payload)
	if err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	return payload.toDomain(), nil
}

// notFoundError 远端404标记
// 404是正常业务结果(商品下架/订单删除),不计入熔断失败
type notFoundError struct {
	path string
}

func (e *notFoundError) Error() string {
	return "远端资源不存在: " + e.path
}

func isNotFound(err error) bool {
	_, ok := err.(*notFoundError)
	return ok
}

// getJSON 发起GET请求并解析响应
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

// postJSON 发起POST请求并解析响应
func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

// doJSON 执行请求(熔断保护)
//
// 错误分类:
// - 网络错误/5xx: 计入熔断失败,返回ErrRemoteError
// - 熔断开启: 返回ErrRemoteDown(快速失败,不发请求)
// - 404: 返回notFoundError(不计入熔断失败,由调用方映射为领域错误)
// - 其他4xx: 返回ErrRemoteError(不计入熔断失败)
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	ctx, span := tracing.StartSpan(ctx, "commerce", method+" "+path)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
	)

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var status int
	var respBody []byte

	err := c.breaker.Execute(func() error {
		var reader io.Reader
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("请求体序列化失败: %w", err)
			}
			reader = bytes.NewReader(data)
		}

		req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
		if err != nil {
			return fmt.Errorf("构造请求失败: %w", err)
		}
		req.SetBasicAuth(c.key, c.secret)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("请求远端失败: %w", err)
		}
		defer resp.Body.Close()

		status = resp.StatusCode
		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("读取响应失败: %w", err)
		}

		// 5xx计入熔断失败
		if status >= http.StatusInternalServerError {
			return fmt.Errorf("远端服务错误: status=%d", status)
		}
		return nil
	})

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if err == circuitbreaker.ErrOpenState {
			c.log.Warn("熔断器开启,快速失败", zap.String("path", path))
			return apperrors.WrapCode(apperrors.ErrCodeRemoteDown, "商城服务暂时不可用，请稍后重试", err)
		}
		c.log.Error("远端请求失败",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return apperrors.WrapCode(apperrors.ErrCodeRemoteError, "商城服务调用失败，请稍后重试", err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", status))

	if status == http.StatusNotFound {
		return &notFoundError{path: path}
	}
	if status >= http.StatusBadRequest {
		span.SetStatus(codes.Error, fmt.Sprintf("远端返回错误状态: %d", status))
		c.log.Error("远端返回错误状态",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.ByteString("body", respBody))
		return apperrors.WrapCode(apperrors.ErrCodeRemoteError,
			fmt.Sprintf("商城服务返回错误(status=%d)", status), nil)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return apperrors.WrapCode(apperrors.ErrCodeRemoteError, "商城服务响应解析失败", err)
		}
	}
	return nil
}
