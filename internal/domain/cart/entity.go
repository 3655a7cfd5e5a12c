package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/storefront/internal/domain/catalog"
)

// Item 购物车条目
// 设计说明:
// 1. 保存商品快照(名称/价格/主图),不直接引用catalog.Product
//   - 购物车需要持久化,快照避免序列化整个商品聚合
//   - 价格是"加入购物车时的价格"(远端改价不影响已有条目展示)
// 2. 持久化格式是{product: 商品快照, quantity: 数量}的嵌套结构,
//    与本地存储cart键的历史数据保持一致(见MarshalJSON)
type Item struct {
	ProductID int    // 商品ID(条目合并的依据)
	Name      string // 商品名称
	Price     string // 单价(字符串金额,如"45.00")
	ImageURL  string // 主图URL
	Quantity  int    // 数量
}

// productSnapshot 持久化中的商品快照
type productSnapshot struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	ImageURL string `json:"imageUrl"`
}

// persistedItem cart键中单个条目的存储形态
type persistedItem struct {
	Product  productSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

// MarshalJSON 按{product, quantity}嵌套结构序列化
func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(persistedItem{
		Product: productSnapshot{
			ID:       i.ProductID,
			Name:     i.Name,
			Price:    i.Price,
			ImageURL: i.ImageURL,
		},
		Quantity: i.Quantity,
	})
}

// UnmarshalJSON 从{product, quantity}嵌套结构恢复
func (i *Item) UnmarshalJSON(data []byte) error {
	var p persistedItem
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	i.ProductID = p.Product.ID
	i.Name = p.Product.Name
	i.Price = p.Product.Price
	i.ImageURL = p.Product.ImageURL
	i.Quantity = p.Quantity
	return nil
}

// Subtotal 条目小计(单价*数量)
// 价格解析失败按0处理
func (i *Item) Subtotal() decimal.Decimal {
	return ParsePrice(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// State 购物车状态
// 设计说明:
// 1. Total和ItemCount是派生字段,每次变更后重新计算(单一数据源是Items)
// 2. 只有Items会持久化(有序条目数组),派生字段只存在于内存,
//    从持久化恢复时重新计算
type State struct {
	Items     []Item          // 购物车条目
	Total     decimal.Decimal // 总金额(派生)
	ItemCount int             // 商品总件数(派生)
}

// NewState 创建空购物车
func NewState() *State {
	return &State{
		Items:     []Item{},
		Total:     decimal.Zero,
		ItemCount: 0,
	}
}

// ParsePrice 解析字符串金额
// 业务规则:解析失败返回0,单个脏数据不拖垮整个购物车
func ParsePrice(price string) decimal.Decimal {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// AddItem 加入商品
// 业务规则:
// 1. 已存在同商品ID的条目时合并数量,不新增条目
// 2. 变更后重新计算派生字段
func (s *State) AddItem(p *catalog.Product, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}

	for idx := range s.Items {
		if s.Items[idx].ProductID == p.ID {
			s.Items[idx].Quantity += quantity
			s.recalculate()
			return
		}
	}

	s.Items = append(s.Items, Item{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.MainImage(),
		Quantity:  quantity,
	})
	s.recalculate()
}

// RemoveItem 移除商品
// 商品不在购物车中时为空操作
func (s *State) RemoveItem(productID int) {
	filtered := s.Items[:0]
	for _, item := range s.Items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	s.Items = filtered
	s.recalculate()
}

// UpdateQuantity 更新商品数量
// 业务规则:数量<=0等价于移除该商品
func (s *State) UpdateQuantity(productID, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}

	for idx := range s.Items {
		if s.Items[idx].ProductID == productID {
			s.Items[idx].Quantity = quantity
			break
		}
	}
	s.recalculate()
}

// Clear 清空购物车
func (s *State) Clear() {
	s.Items = []Item{}
	s.recalculate()
}

// ItemFor 查找指定商品的条目
func (s *State) ItemFor(productID int) (Item, bool) {
	for _, item := range s.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return Item{}, false
}

// IsEmpty 购物车是否为空
func (s *State) IsEmpty() bool {
	return len(s.Items) == 0
}

// Normalize 重新计算派生字段
// 从持久化恢复后调用,存储中的Total/ItemCount可能过期
func (s *State) Normalize() {
	if s.Items == nil {
		s.Items = []Item{}
	}
	s.recalculate()
}

// recalculate 重新计算Total和ItemCount
func (s *State) recalculate() {
	total := decimal.Zero
	count := 0
	for idx := range s.Items {
		total = total.Add(s.Items[idx].Subtotal())
		count += s.Items[idx].Quantity
	}
	s.Total = total
	s.ItemCount = count
}
