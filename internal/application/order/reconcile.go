package order

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/pkg/metrics"
	"github.com/xiebiao/storefront/pkg/tracing"
)

// Mode 对账模式
type Mode string

const (
	// ModeQuiet 静默对账(启动后台执行,失败只记日志)
	ModeQuiet Mode = "quiet"

	// ModeInteractive 交互对账(用户触发,结果返回给调用方)
	ModeInteractive Mode = "interactive"
)

// Report 对账结果
type Report struct {
	Checked int `json:"checked"` // 检查的订单数
	Removed int `json:"removed"` // 远端已删除,从本地移除
	Updated int `json:"updated"` // 状态/金额漂移,已刷新
	Kept    int `json:"kept"`    // 远端查询失败,保守保留
}

// orderEvent 对账产生的领域事件
type orderEvent struct {
	OrderID     int    `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status,omitempty"`
	Total       string `json:"total,omitempty"`
}

// Reconcile 与远端对账本地订单摘要
//
// 对每条摘要逐一查询远端(串行,避免压垮远端接口):
// - 远端404: 订单已删除,从本地列表移除
// - 状态或金额漂移: 原位刷新摘要
// - 其他错误(网络/5xx/熔断): 保守保留该条目,下次对账再试
//
// 只有列表长度变化或有条目刷新时才写回存储,无变化不产生写
func (h *History) Reconcile(ctx context.Context, mode Mode) (*Report, error) {
	ctx, span := tracing.StartSpan(ctx, "order", "history.reconcile")
	defer span.End()
	span.SetAttributes(attribute.String("reconcile.mode", string(mode)))

	start := time.Now()

	h.mu.Lock()
	defer h.mu.Unlock()

	summaries, err := h.load(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{Checked: len(summaries)}
	kept := make([]order.Summary, 0, len(summaries))

	for idx := range summaries {
		s := summaries[idx]

		remote, err := h.repo.FindByID(ctx, s.ID)
		if err != nil {
			if errors.Is(err, order.ErrOrderNotFound) {
				// 远端已删除,本地移除
				report.Removed++
				h.log.Info("订单已在远端删除,移除本地摘要",
					zap.Int("order_id", s.ID),
					zap.String("order_number", s.OrderNumber))
				h.publish("order.removed", orderEvent{OrderID: s.ID, OrderNumber: s.OrderNumber})
				continue
			}

			// 远端暂时不可达,保守保留
			report.Kept++
			kept = append(kept, s)
			h.log.Warn("对账查询远端失败,保留本地摘要",
				zap.Int("order_id", s.ID),
				zap.Error(err))
			continue
		}

		if !s.Matches(remote) {
			s.ApplyRemote(remote)
			report.Updated++
			h.log.Info("订单摘要已刷新",
				zap.Int("order_id", s.ID),
				zap.String("status", s.Status),
				zap.String("total", s.Total))
			h.publish("order.updated", orderEvent{
				OrderID:     s.ID,
				OrderNumber: s.OrderNumber,
				Status:      s.Status,
				Total:       s.Total,
			})
		}
		kept = append(kept, s)
	}

	// 无变化时不写存储
	if len(kept) != len(summaries) || report.Updated > 0 {
		if err := h.save(ctx, kept); err != nil {
			return nil, err
		}
	}

	span.SetAttributes(
		attribute.Int("reconcile.checked", report.Checked),
		attribute.Int("reconcile.removed", report.Removed),
		attribute.Int("reconcile.updated", report.Updated),
		attribute.Int("reconcile.kept", report.Kept),
	)

	h.observeReconcile(mode, report, time.Since(start))
	return report, nil
}

func (h *History) observeReconcile(mode Mode, report *Report, elapsed time.Duration) {
	h.log.Info("订单对账完成",
		zap.String("mode", string(mode)),
		zap.Int("checked", report.Checked),
		zap.Int("removed", report.Removed),
		zap.Int("updated", report.Updated),
		zap.Int("kept", report.Kept),
		zap.Duration("elapsed", elapsed))

	if metrics.ReconcileRunsTotal == nil {
		return
	}
	metrics.IncCounterVec(metrics.ReconcileRunsTotal, map[string]string{"mode": string(mode)})
	metrics.ReconcileOrdersRemovedTotal.Add(float64(report.Removed))
	metrics.ReconcileOrdersUpdatedTotal.Add(float64(report.Updated))
	metrics.ObserveHistogram(metrics.ReconcileDuration, elapsed.Seconds())
}

func countPublish(routingKey, result string) {
	if metrics.MessagesPublishedTotal != nil {
		metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
			"routing_key": routingKey,
			"result":      result,
		})
	}
}
