// Package middleware HTTP中间件
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/storefront/pkg/metrics"
)

// RequestIDKey Context中请求ID的键
const RequestIDKey = "request_id"

// Logger 请求日志中间件
// 每个请求生成唯一的请求ID(通过X-Request-ID响应头返回),
// 请求结束后记录方法、路径、状态码、耗时,并上报请求指标
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()

		if metrics.HTTPRequestsInProgress != nil {
			metrics.HTTPRequestsInProgress.Inc()
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		// 路由模板作为指标标签(如/api/v1/products/:id),避免标签基数爆炸
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		if metrics.HTTPRequestsInProgress != nil {
			metrics.HTTPRequestsInProgress.Dec()
		}
		if metrics.HTTPRequestsTotal != nil {
			metrics.IncCounterVec(metrics.HTTPRequestsTotal, map[string]string{
				"method": c.Request.Method,
				"path":   path,
				"status": statusLabel(status),
			})
		}
		if metrics.HTTPRequestDuration != nil {
			metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
				"method": c.Request.Method,
				"path":   path,
			}, latency.Seconds())
		}

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			log.Error("请求处理完成", fields...)
		case status >= 400:
			log.Warn("请求处理完成", fields...)
		default:
			log.Info("请求处理完成", fields...)
		}

		// 慢请求单独告警
		if latency > 3*time.Second {
			log.Warn("慢请求",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Duration("latency", latency),
			)
		}
	}
}

// GetRequestID 从Context获取请求ID
func GetRequestID(c *gin.Context) string {
	if id, ok := c.Get(RequestIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
