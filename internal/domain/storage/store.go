package storage

import (
	"context"
)

// 本地存储的键定义
// 持久化格式为JSON字符串,键名兼容历史数据
const (
	// KeyCart 购物车状态
	KeyCart = "cart"

	// KeyUserOrders 本地订单摘要列表
	KeyUserOrders = "userOrders"
)

// Store 本地键值存储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(Redis或MySQL,按配置选择)
// 2. 值统一为JSON字符串,序列化由调用方负责
// 3. 键不存在时Get返回空字符串而非错误(调用方按"冷启动"处理)
type Store interface {
	// Get 读取键值,键不存在时返回""
	Get(ctx context.Context, key string) (string, error)

	// Set 写入键值(覆盖语义)
	Set(ctx context.Context, key, value string) error

	// Delete 删除键(键不存在时为空操作)
	Delete(ctx context.Context, key string) error
}
