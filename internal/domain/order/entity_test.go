package order

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewSummary 测试从远端订单构建本地摘要
func TestNewSummary(t *testing.T) {
	o := &Order{
		ID:          531,
		Number:      "531",
		Status:      StatusProcessing,
		Total:       "135.00",
		DateCreated: "2026-03-12T09:41:00",
	}

	s := NewSummary(o)

	assert.Equal(t, 531, s.ID)
	assert.Equal(t, "531", s.OrderNumber)
	assert.Equal(t, StatusProcessing, s.Status)
	assert.Equal(t, "135.00", s.Total)
	assert.Equal(t, "2026-03-12T09:41:00", s.DateCreated)
}

// TestSummary_Matches 测试摘要与远端订单的一致性判断
func TestSummary_Matches(t *testing.T) {
	s := Summary{ID: 531, OrderNumber: "531", Status: StatusPending, Total: "135.00"}

	t.Run("状态和金额一致", func(t *testing.T) {
		assert.True(t, s.Matches(&Order{ID: 531, Status: StatusPending, Total: "135.00"}))
	})

	t.Run("状态漂移", func(t *testing.T) {
		assert.False(t, s.Matches(&Order{ID: 531, Status: StatusCompleted, Total: "135.00"}))
	})

	t.Run("金额漂移", func(t *testing.T) {
		assert.False(t, s.Matches(&Order{ID: 531, Status: StatusPending, Total: "120.00"}))
	})
}

// TestSummary_ApplyRemote 测试用远端订单刷新摘要
func TestSummary_ApplyRemote(t *testing.T) {
	s := Summary{ID: 531, OrderNumber: "531", Status: StatusPending, Total: "135.00", DateCreated: "2026-03-12T09:41:00"}

	s.ApplyRemote(&Order{
		ID:          531,
		Number:      "531",
		Status:      StatusCompleted,
		Total:       "120.00",
		DateCreated: "2026-03-13T00:00:00",
	})

	assert.Equal(t, StatusCompleted, s.Status)
	assert.Equal(t, "120.00", s.Total)
	assert.Equal(t, 531, s.ID, "ID不应该变化")
	assert.Equal(t, "531", s.OrderNumber, "订单号不应该变化")
	assert.Equal(t, "2026-03-12T09:41:00", s.DateCreated, "下单时间不应该变化")
}

// TestSummary_JSON 测试摘要的持久化格式(camelCase字段名)
func TestSummary_JSON(t *testing.T) {
	s := Summary{ID: 531, OrderNumber: "531", Status: StatusPending, Total: "135.00", DateCreated: "2026-03-12T09:41:00"}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": 531,
		"orderNumber": "531",
		"status": "pending",
		"total": "135.00",
		"dateCreated": "2026-03-12T09:41:00"
	}`, string(data))
}

// TestCustomerInfo_Validate 测试买家信息校验
func TestCustomerInfo_Validate(t *testing.T) {
	valid := CustomerInfo{
		FirstName: "Rahim",
		LastName:  "Uddin",
		Email:     "rahim@example.com",
		Phone:     "01712345678",
		Address1:  "House 12, Road 5",
		City:      "Dhaka",
		State:     "Dhaka",
		Postcode:  "1207",
	}

	t.Run("合法信息", func(t *testing.T) {
		info := valid
		assert.NoError(t, info.Validate())
	})

	t.Run("缺少名字", func(t *testing.T) {
		info := valid
		info.FirstName = "  "
		assert.ErrorIs(t, info.Validate(), ErrMissingFirstName)
	})

	t.Run("缺少姓氏", func(t *testing.T) {
		info := valid
		info.LastName = ""
		assert.ErrorIs(t, info.Validate(), ErrMissingLastName)
	})

	t.Run("缺少邮箱", func(t *testing.T) {
		info := valid
		info.Email = ""
		assert.ErrorIs(t, info.Validate(), ErrMissingEmail)
	})

	t.Run("缺少电话", func(t *testing.T) {
		info := valid
		info.Phone = ""
		assert.ErrorIs(t, info.Validate(), ErrMissingPhone)
	})

	t.Run("缺少地址", func(t *testing.T) {
		info := valid
		info.Address1 = ""
		assert.ErrorIs(t, info.Validate(), ErrMissingAddress)
	})

	t.Run("缺少城市", func(t *testing.T) {
		info := valid
		info.City = ""
		assert.ErrorIs(t, info.Validate(), ErrMissingCity)
	})

	t.Run("缺少省份", func(t *testing.T) {
		info := valid
		info.State = ""
		assert.ErrorIs(t, info.Validate(), ErrMissingState)
	})

	t.Run("缺少邮编", func(t *testing.T) {
		info := valid
		info.Postcode = ""
		assert.ErrorIs(t, info.Validate(), ErrMissingPostcode)
	})

	t.Run("邮箱格式不正确", func(t *testing.T) {
		info := valid
		info.Email = "not-an-email"
		assert.ErrorIs(t, info.Validate(), ErrInvalidEmail)
	})

	t.Run("必填项优先于邮箱格式", func(t *testing.T) {
		info := valid
		info.Email = "not-an-email"
		info.Phone = ""
		assert.ErrorIs(t, info.Validate(), ErrMissingPhone)
	})
}

// TestCustomerInfo_ToAddress 测试买家信息转订单地址
func TestCustomerInfo_ToAddress(t *testing.T) {
	info := CustomerInfo{
		FirstName: " Rahim ",
		LastName:  "Uddin",
		Address1:  "House 12, Road 5",
		City:      "Dhaka",
		Phone:     "01712345678",
		Email:     "rahim@example.com",
	}

	addr := info.ToAddress()

	assert.Equal(t, "Rahim", addr.FirstName, "应该去除首尾空白")
	assert.Equal(t, DefaultCountry, addr.Country, "国家为空时使用默认国家")

	info.Country = "US"
	assert.Equal(t, "US", info.ToAddress().Country)
}
