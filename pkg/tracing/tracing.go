// Package tracing 提供基于OpenTelemetry的分布式追踪
//
// 核心概念：
//   - Trace（追踪）：一个完整的请求链路（如一次下单从HTTP入口到远端商城接口返回）
//   - Span（跨度）：一个操作单元（如调用商城接口创建订单），包含名称、起止时间、状态
//   - SpanContext：跨服务传递的元数据（TraceID标识链路，SpanID标识操作）
//
// 使用示例：
//
//	// 1. 初始化全局Tracer Provider
//	shutdown, err := tracing.InitTracer("storefront", "localhost:4317")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer shutdown(context.Background())
//
//	// 2. 在业务代码中创建Span
//	func PlaceOrder(ctx context.Context, req *PlaceOrderRequest) error {
//	    ctx, span := tracing.StartSpan(ctx, "storefront", "PlaceOrder")
//	    defer span.End()
//
//	    // 调用远端商城接口（通过ctx传递TraceID/SpanID）
//	    if err := commerceClient.CreateOrder(ctx, req); err != nil {
//	        span.RecordError(err)
//	        span.SetStatus(codes.Error, err.Error())
//	        return err
//	    }
//	    return nil
//	}
//
// Span命名用操作名（PlaceOrder）而非动态值（PlaceOrder-123），
// 动态值用span.SetAttributes记录
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// InitTracer 初始化全局Tracer Provider
//
// 参数：
//   - serviceName: 服务名称（在Jaeger UI中显示）
//   - endpoint: Collector的OTLP gRPC端点（如 localhost:4317）
//
// 返回：
//   - shutdown: 关闭函数（程序退出时调用，刷新未发送的Span）
//
// 设计要点：
//  1. 使用OTLP协议而非Jaeger原生协议（厂商中立，未来可切换后端）
//  2. 采样策略：AlwaysSample（100%采样），生产环境建议TraceIDRatioBased
//  3. BatchSpanProcessor批量发送Span，程序退出时shutdown()强制刷新
func InitTracer(serviceName, endpoint string) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 1. 创建OTLP gRPC Exporter
	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(), // 禁用TLS（生产环境应启用）
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// 2. 创建Resource（资源属性）
	// service.name是必需属性，用于在Jaeger UI中标识服务
	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	// 3. 创建Tracer Provider
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	// 4. 设置全局TracerProvider
	// 业务代码通过otel.Tracer()直接获取，无需传递Provider
	otel.SetTracerProvider(tp)

	// 5. 设置全局上下文传播器
	// W3C Trace Context（traceparent头）+ Baggage（自定义键值对）
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	// 6. 返回关闭函数
	shutdown := func(ctx context.Context) error {
		// 5秒超时，防止shutdown阻塞过久
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// StartSpan 创建一个新的Span（便捷函数）
//
// 如果ctx包含父Span，新Span自动成为子Span；否则成为根Span。
// 必须使用返回的ctx调用下游函数，否则无法构建调用树。
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	return tracer.Start(ctx, spanName)
}

// ExtractTraceID 从Context提取TraceID（用于关联日志）
//
// 在日志中记录TraceID，便于从日志快速定位到Jaeger追踪
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
func ExtractSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().SpanID().String()
}
