package cart

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/storefront/internal/domain/catalog"
)

func testProduct(id int, name, price string) *catalog.Product {
	return &catalog.Product{
		ID:    id,
		Name:  name,
		Price: price,
		Images: []catalog.Image{
			{Src: "https://shop.example.com/img/p.jpg"},
		},
	}
}

// TestState_AddItem 测试加入购物车
func TestState_AddItem(t *testing.T) {
	t.Run("加入新商品", func(t *testing.T) {
		s := NewState()
		s.AddItem(testProduct(18, "蓝牙耳机", "45.00"), 2)

		require.Len(t, s.Items, 1)
		assert.Equal(t, 18, s.Items[0].ProductID)
		assert.Equal(t, 2, s.Items[0].Quantity)
		assert.Equal(t, "45.00", s.Items[0].Price)
		assert.Equal(t, 2, s.ItemCount, "ItemCount应该是数量之和")
		assert.True(t, s.Total.Equal(decimal.RequireFromString("90.00")), "Total应该是90.00, 实际%s", s.Total)
	})

	t.Run("重复加入同商品时合并数量", func(t *testing.T) {
		s := NewState()
		s.AddItem(testProduct(18, "蓝牙耳机", "45.00"), 1)
		s.AddItem(testProduct(18, "蓝牙耳机", "45.00"), 3)

		require.Len(t, s.Items, 1, "同商品不应该产生新条目")
		assert.Equal(t, 4, s.Items[0].Quantity)
		assert.Equal(t, 4, s.ItemCount)
	})

	t.Run("数量不合法时按1处理", func(t *testing.T) {
		s := NewState()
		s.AddItem(testProduct(18, "蓝牙耳机", "45.00"), 0)

		require.Len(t, s.Items, 1)
		assert.Equal(t, 1, s.Items[0].Quantity)
	})

	t.Run("价格解析失败按0计入总额", func(t *testing.T) {
		s := NewState()
		s.AddItem(testProduct(18, "蓝牙耳机", "45.00"), 1)
		s.AddItem(testProduct(22, "脏数据商品", "not-a-price"), 2)

		require.Len(t, s.Items, 2)
		assert.Equal(t, 3, s.ItemCount, "脏价格商品仍计入件数")
		assert.True(t, s.Total.Equal(decimal.RequireFromString("45.00")), "脏价格按0计入总额")
	})
}

// TestState_RemoveItem 测试移除商品
func TestState_RemoveItem(t *testing.T) {
	s := NewState()
	s.AddItem(testProduct(18, "蓝牙耳机", "45.00"), 2)
	s.AddItem(testProduct(22, "充电器", "12.50"), 1)

	s.RemoveItem(18)

	require.Len(t, s.Items, 1)
	assert.Equal(t, 22, s.Items[0].ProductID)
	assert.Equal(t, 1, s.ItemCount)
	assert.True(t, s.Total.Equal(decimal.RequireFromString("12.50")))

	// 移除不存在的商品是空操作
	s.RemoveItem(999)
	assert.Len(t, s.Items, 1)
}

// TestState_UpdateQuantity 测试更新数量
func TestState_UpdateQuantity(t *testing.T) {
	t.Run("正常更新数量", func(t *testing.T) {
		s := NewState()
		s.AddItem(testProduct(18, "蓝牙耳机", "45.00"), 2)

		s.UpdateQuantity(18, 5)

		assert.Equal(t, 5, s.Items[0].Quantity)
		assert.Equal(t, 5, s.ItemCount)
		assert.True(t, s.Total.Equal(decimal.RequireFromString("225.00")))
	})

	t.Run("数量为0等价于移除", func(t *testing.T) {
		s := NewState()
		s.AddItem(testProduct(18, "蓝牙耳机", "45.00"), 2)

		s.UpdateQuantity(18, 0)

		assert.Empty(t, s.Items)
		assert.Equal(t, 0, s.ItemCount)
		assert.True(t, s.Total.IsZero())
	})

	t.Run("负数数量等价于移除", func(t *testing.T) {
		s := NewState()
		s.AddItem(testProduct(18, "蓝牙耳机", "45.00"), 2)

		s.UpdateQuantity(18, -3)

		assert.Empty(t, s.Items)
	})
}

// TestState_Clear 测试清空购物车
func TestState_Clear(t *testing.T) {
	s := NewState()
	s.AddItem(testProduct(18, "蓝牙耳机", "45.00"), 2)
	s.AddItem(testProduct(22, "充电器", "12.50"), 1)

	s.Clear()

	assert.Empty(t, s.Items)
	assert.Equal(t, 0, s.ItemCount)
	assert.True(t, s.Total.IsZero())
	assert.True(t, s.IsEmpty())
}

// TestItem_JSON 测试条目的持久化格式({product, quantity}嵌套结构)
func TestItem_JSON(t *testing.T) {
	item := Item{ProductID: 18, Name: "蓝牙耳机", Price: "45.00", ImageURL: "https://cdn.example.com/18.jpg", Quantity: 2}

	data, err := json.Marshal([]Item{item})
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"product": {"id": 18, "name": "蓝牙耳机", "price": "45.00", "imageUrl": "https://cdn.example.com/18.jpg"},
		"quantity": 2
	}]`, string(data))

	var restored []Item
	require.NoError(t, json.Unmarshal(data, &restored))
	require.Len(t, restored, 1)
	assert.Equal(t, item, restored[0])
}

// TestState_Normalize 测试从持久化恢复后重算派生字段
func TestState_Normalize(t *testing.T) {
	raw := `[{"product":{"id":18,"name":"蓝牙耳机","price":"45.00","imageUrl":""},"quantity":2}]`

	var items []Item
	require.NoError(t, json.Unmarshal([]byte(raw), &items))

	s := State{Items: items}
	s.Normalize()

	assert.Equal(t, 2, s.ItemCount, "恢复后应该重算ItemCount")
	assert.True(t, s.Total.Equal(decimal.RequireFromString("90.00")), "恢复后应该重算Total")
}

// TestParsePrice 测试价格解析
func TestParsePrice(t *testing.T) {
	assert.True(t, ParsePrice("45.00").Equal(decimal.RequireFromString("45.00")))
	assert.True(t, ParsePrice("").IsZero(), "空字符串按0处理")
	assert.True(t, ParsePrice("abc").IsZero(), "非法金额按0处理")
}
