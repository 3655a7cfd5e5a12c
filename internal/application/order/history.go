// Package order 订单应用服务
//
// 本地订单摘要列表的生命周期:
// 1. 下单成功后Record前插一条摘要
// 2. List读取列表用于展示(离线可用)
// 3. Reconcile与远端对账:删除的订单移除,漂移的订单刷新
package order

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/domain/storage"
)

// EventPublisher 领域事件发布接口(pkg/mq.Publisher满足此接口)
// 事件发布是尽力而为的,失败不影响主流程
type EventPublisher interface {
	Publish(routingKey string, message interface{}) error
}

// History 本地订单摘要管理器
// 设计说明:
// 1. 存储是单一数据源,每次操作读改写整个列表(列表规模小)
// 2. 互斥锁串行化本进程内的读改写,避免并发写互相覆盖
// 3. 静默对账与用户下单之间仍是后写覆盖(与历史行为一致,见Reconcile)
type History struct {
	mu        sync.Mutex
	store     storage.Store
	repo      order.Repository
	publisher EventPublisher // 可为nil(事件发布关闭)
	log       *zap.Logger
}

// NewHistory 创建订单摘要管理器
func NewHistory(store storage.Store, repo order.Repository, publisher EventPublisher, log *zap.Logger) *History {
	return &History{
		store:     store,
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// List 读取本地订单摘要列表(新订单在前)
// 键不存在或JSON损坏时返回空列表
func (h *History) List(ctx context.Context) ([]order.Summary, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.load(ctx)
}

// Record 前插一条订单摘要(下单成功后调用)
func (h *History) Record(ctx context.Context, o *order.Order) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	summaries, err := h.load(ctx)
	if err != nil {
		return err
	}

	// 新订单放在最前(列表按下单时间倒序)
	summaries = append([]order.Summary{order.NewSummary(o)}, summaries...)
	return h.save(ctx, summaries)
}

// Remove 移除单条摘要(订单详情查询遇到远端404时调用)
// 订单不在列表中时是空操作,不报错
func (h *History) Remove(ctx context.Context, orderID int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	summaries, err := h.load(ctx)
	if err != nil {
		return err
	}

	kept := summaries[:0]
	var removed *order.Summary
	for idx := range summaries {
		if summaries[idx].ID == orderID {
			removed = &summaries[idx]
			continue
		}
		kept = append(kept, summaries[idx])
	}
	if removed == nil {
		return nil
	}

	if err := h.save(ctx, kept); err != nil {
		return err
	}
	h.log.Info("订单已在远端删除,移除本地摘要", zap.Int("order_id", orderID))
	h.publish("order.removed", orderEvent{OrderID: orderID, OrderNumber: removed.OrderNumber})
	return nil
}

// SyncFromOrder 用远端订单刷新单条摘要(详情查询成功后调用)
// 摘要不存在或无漂移时是空操作
func (h *History) SyncFromOrder(ctx context.Context, o *order.Order) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	summaries, err := h.load(ctx)
	if err != nil {
		return err
	}

	for idx := range summaries {
		if summaries[idx].ID != o.ID {
			continue
		}
		if summaries[idx].Matches(o) {
			return nil
		}
		summaries[idx].ApplyRemote(o)
		if err := h.save(ctx, summaries); err != nil {
			return err
		}
		h.log.Info("订单摘要已刷新",
			zap.Int("order_id", o.ID),
			zap.String("status", o.Status),
			zap.String("total", o.Total))
		h.publish("order.updated", orderEvent{
			OrderID:     o.ID,
			OrderNumber: summaries[idx].OrderNumber,
			Status:      o.Status,
			Total:       o.Total,
		})
		return nil
	}
	return nil
}

// load 从存储读取摘要列表(调用方必须持有锁)
func (h *History) load(ctx context.Context) ([]order.Summary, error) {
	raw, err := h.store.Get(ctx, storage.KeyUserOrders)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return []order.Summary{}, nil
	}

	var summaries []order.Summary
	if err := json.Unmarshal([]byte(raw), &summaries); err != nil {
		// 脏数据按空列表处理,下次写入会覆盖
		h.log.Warn("订单摘要持久化数据损坏,按空列表处理", zap.Error(err))
		return []order.Summary{}, nil
	}
	return summaries, nil
}

// save 写回摘要列表(调用方必须持有锁)
func (h *History) save(ctx context.Context, summaries []order.Summary) error {
	data, err := json.Marshal(summaries)
	if err != nil {
		return err
	}
	return h.store.Set(ctx, storage.KeyUserOrders, string(data))
}

// publish 发布领域事件(尽力而为)
func (h *History) publish(routingKey string, message interface{}) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Publish(routingKey, message); err != nil {
		h.log.Warn("事件发布失败", zap.String("routing_key", routingKey), zap.Error(err))
		countPublish(routingKey, "failure")
		return
	}
	countPublish(routingKey, "success")
}
