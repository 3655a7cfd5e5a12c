package order

// 订单状态(远端商城定义的状态字符串)
// 本服务不拥有订单数据,状态由远端商城维护,这里只定义常用值
const (
	StatusPending    = "pending"    // 待支付
	StatusProcessing = "processing" // 处理中
	StatusOnHold     = "on-hold"    // 挂起
	StatusCompleted  = "completed"  // 已完成
	StatusCancelled  = "cancelled"  // 已取消
	StatusRefunded   = "refunded"   // 已退款
)

// Order 订单实体(远端商城订单的只读视图)
// 设计说明:
// 1. 订单数据归远端商城所有,本服务通过接口查询
// 2. 金额字段保持字符串形式(与远端接口一致,避免精度问题)
// 3. DateCreated保持远端返回的ISO8601字符串,不做时区转换
type Order struct {
	ID            int        // 远端订单ID
	Number        string     // 订单号(展示用)
	Status        string     // 订单状态
	Total         string     // 订单总金额(字符串金额)
	Currency      string     // 币种
	DateCreated   string     // 创建时间(ISO8601字符串)
	PaymentMethod string     // 支付方式
	Billing       Address    // 账单地址
	Shipping      Address    // 收货地址
	LineItems     []LineItem // 订单明细
}

// LineItem 订单明细项
type LineItem struct {
	ID        int    // 明细ID
	ProductID int    // 商品ID
	Name      string // 商品名称(下单时快照)
	Quantity  int    // 数量
	Price     string // 下单时单价(字符串金额)
	Total     string // 明细小计
	ImageURL  string // 商品主图URL(展示时补充,远端订单接口不返回)
}

// Address 订单地址
type Address struct {
	FirstName string
	LastName  string
	Address1  string
	Address2  string
	City      string
	State     string
	Postcode  string
	Country   string
	Email     string
	Phone     string
}

// Summary 本地订单摘要
// 设计说明:
// 1. 下单成功后保存到本地存储,用于离线展示订单列表
// 2. JSON标签即持久化格式(userOrders键),字段名保持camelCase兼容历史数据
// 3. 只保存列表展示所需的字段,详情按需从远端查询
type Summary struct {
	ID          int    `json:"id"`          // 远端订单ID
	OrderNumber string `json:"orderNumber"` // 订单号
	Total       string `json:"total"`       // 总金额
	Status      string `json:"status"`      // 订单状态
	DateCreated string `json:"dateCreated"` // 创建时间
}

// NewSummary 从远端订单构建本地摘要(工厂方法)
func NewSummary(o *Order) Summary {
	return Summary{
		ID:          o.ID,
		OrderNumber: o.Number,
		Total:       o.Total,
		Status:      o.Status,
		DateCreated: o.DateCreated,
	}
}

// Matches 摘要是否与远端订单一致
// 对账时用于判断是否需要更新本地摘要
func (s *Summary) Matches(o *Order) bool {
	return s.Status == o.Status && s.Total == o.Total
}

// ApplyRemote 用远端订单刷新摘要
// 只刷新会漂移的状态和金额,ID/订单号/下单时间不变
func (s *Summary) ApplyRemote(o *Order) {
	s.Status = o.Status
	s.Total = o.Total
}
