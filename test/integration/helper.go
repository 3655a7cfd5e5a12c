package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 测试假定服务已在本地启动(默认端口8080),未启动时跳过
// 启动方式: go run ./cmd/api

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// PingURL 健康检查URL
	PingURL = "http://localhost:8080/ping"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// CartData 购物车响应数据
type CartData struct {
	Items     []CartItem `json:"items"`
	Total     string     `json:"total"`
	ItemCount int        `json:"item_count"`
}

// CartItem 购物车条目
type CartItem struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	ImageURL  string `json:"image_url"`
	Quantity  int    `json:"quantity"`
}

// OrderSummaryData 订单摘要(列表项)
type OrderSummaryData struct {
	ID          int    `json:"id"`
	OrderNumber string `json:"order_number"`
	Total       string `json:"total"`
	Status      string `json:"status"`
	DateCreated string `json:"date_created"`
}

// ReconcileData 对账结果
type ReconcileData struct {
	Checked int `json:"checked"`
	Removed int `json:"removed"`
	Updated int `json:"updated"`
	Kept    int `json:"kept"`
}

// RequireService 检查服务是否已启动,未启动时跳过测试
func RequireService(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(PingURL)
	if err != nil {
		t.Skipf("服务未启动,跳过集成测试: %v", err)
	}
	resp.Body.Close()
}

// DoJSON 发送请求并解析统一响应
func DoJSON(t *testing.T, method, url string, data interface{}) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	return &result
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string) *Response {
	return DoJSON(t, http.MethodGet, url, nil)
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}) *Response {
	return DoJSON(t, http.MethodPost, url, data)
}

// ClearCart 清空购物车(测试前置/清理用)
func ClearCart(t *testing.T) {
	t.Helper()
	resp := DoJSON(t, http.MethodDelete, BaseURL+"/cart", nil)
	require.Equal(t, 0, resp.Code, "清空购物车失败")
}
