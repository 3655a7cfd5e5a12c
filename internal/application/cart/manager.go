// Package cart 购物车应用服务
//
// 购物车是本服务唯一的内存状态容器:内存状态是单一数据源,
// 每次变更后尽力持久化到本地存储,持久化失败不影响内存状态。
package cart

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/catalog"
	"github.com/xiebiao/storefront/internal/domain/storage"
	"github.com/xiebiao/storefront/pkg/metrics"
)

// Manager 购物车管理器
// 设计说明:
// 1. 内存中的state是单一数据源,互斥锁保证并发安全
// 2. 变更后同步持久化,失败只记日志(下次变更会再次尝试覆盖写)
// 3. 加购物车时从远端查商品快照,不信任客户端传递的价格
type Manager struct {
	mu          sync.Mutex
	state       *cart.State
	store       storage.Store
	catalogRepo catalog.Repository
	log         *zap.Logger
}

// NewManager 创建购物车管理器
func NewManager(store storage.Store, catalogRepo catalog.Repository, log *zap.Logger) *Manager {
	return &Manager{
		state:       cart.NewState(),
		store:       store,
		catalogRepo: catalogRepo,
		log:         log,
	}
}

// Restore 从本地存储恢复购物车
// 启动时调用一次。键不存在(冷启动)或JSON损坏时使用空购物车
func (m *Manager) Restore(ctx context.Context) error {
	raw, err := m.store.Get(ctx, storage.KeyCart)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if raw == "" {
		m.state = cart.NewState()
		return nil
	}

	var items []cart.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		// 存储中的JSON损坏,按空购物车处理(不让脏数据卡死启动)
		m.log.Warn("购物车持久化数据损坏,已重置", zap.Error(err))
		m.state = cart.NewState()
		return nil
	}

	// 存储中只有条目数组,派生字段恢复后重新计算
	state := &cart.State{Items: items}
	state.Normalize()
	m.state = state

	m.log.Info("购物车已恢复",
		zap.Int("items", len(state.Items)),
		zap.Int("item_count", state.ItemCount))
	return nil
}

// State 当前购物车快照
func (m *Manager) State() *cart.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// GetItem 查找购物车中指定商品的条目(只读)
func (m *Manager) GetItem(productID int) (cart.Item, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.ItemFor(productID)
}

// AddItem 加入商品
// 商品快照从远端查询(价格以远端当前售价为准)
func (m *Manager) AddItem(ctx context.Context, productID, quantity int) (*cart.State, error) {
	if productID <= 0 {
		return nil, catalog.ErrInvalidProductID
	}

	product, err := m.catalogRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.AddItem(product, quantity)
	m.persist(ctx)
	m.countOperation("add")
	return m.snapshot(), nil
}

// UpdateQuantity 更新商品数量(数量<=0等价于移除)
func (m *Manager) UpdateQuantity(ctx context.Context, productID, quantity int) (*cart.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.UpdateQuantity(productID, quantity)
	m.persist(ctx)
	m.countOperation("update")
	return m.snapshot(), nil
}

// RemoveItem 移除商品
func (m *Manager) RemoveItem(ctx context.Context, productID int) (*cart.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.RemoveItem(productID)
	m.persist(ctx)
	m.countOperation("remove")
	return m.snapshot(), nil
}

// Clear 清空购物车
func (m *Manager) Clear(ctx context.Context) (*cart.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Clear()
	m.persist(ctx)
	m.countOperation("clear")
	return m.snapshot(), nil
}

// persist 持久化当前条目列表(调用方必须持有锁)
// 只写条目数组,Total/ItemCount是派生值不落盘。失败只记日志和指标,内存状态不回滚
func (m *Manager) persist(ctx context.Context) {
	data, err := json.Marshal(m.state.Items)
	if err != nil {
		m.log.Error("购物车序列化失败", zap.Error(err))
		return
	}
	if err := m.store.Set(ctx, storage.KeyCart, string(data)); err != nil {
		m.log.Warn("购物车持久化失败,内存状态不受影响", zap.Error(err))
		if metrics.CartPersistFailuresTotal != nil {
			metrics.IncCounter(metrics.CartPersistFailuresTotal)
		}
	}
}

// snapshot 复制当前状态(调用方必须持有锁)
// 返回副本,防止调用方绕过锁修改内部状态
func (m *Manager) snapshot() *cart.State {
	items := make([]cart.Item, len(m.state.Items))
	copy(items, m.state.Items)
	return &cart.State{
		Items:     items,
		Total:     m.state.Total,
		ItemCount: m.state.ItemCount,
	}
}

func (m *Manager) countOperation(op string) {
	if metrics.CartOperationsTotal != nil {
		metrics.IncCounterVec(metrics.CartOperationsTotal, map[string]string{"operation": op})
	}
}
