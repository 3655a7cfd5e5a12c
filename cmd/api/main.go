package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	appcart "github.com/xiebiao/storefront/internal/application/cart"
	appcatalog "github.com/xiebiao/storefront/internal/application/catalog"
	appcheckout "github.com/xiebiao/storefront/internal/application/checkout"
	apporder "github.com/xiebiao/storefront/internal/application/order"
	"github.com/xiebiao/storefront/internal/domain/storage"
	"github.com/xiebiao/storefront/internal/infrastructure/commerce"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/storefront/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/storefront/internal/interface/http/handler"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
	"github.com/xiebiao/storefront/pkg/logger"
	"github.com/xiebiao/storefront/pkg/metrics"
	"github.com/xiebiao/storefront/pkg/mq"
	"github.com/xiebiao/storefront/pkg/response"
	"github.com/xiebiao/storefront/pkg/tracing"
)

// @title        Storefront API
// @version      1.0
// @description  商城前端后端服务:商品目录代理、购物车、货到付款下单与本地订单列表
// @BasePath     /
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	log, err := logger.New(logger.Config{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		stdlog.Fatalf("初始化日志失败: %v", err)
	}
	defer log.Sync()
	response.SetLogger(log)

	// 3. 初始化指标
	metrics.InitMetrics()

	// 4. 初始化追踪(可选)
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer("storefront", cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatal("初始化追踪失败", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				log.Warn("关闭追踪失败", zap.Error(err))
			}
		}()
	}

	// 5. 初始化本地存储(按配置选择驱动)
	var store storage.Store
	switch cfg.Storage.Driver {
	case "redis":
		client, err := redis.NewClient(cfg)
		if err != nil {
			log.Fatal("初始化Redis失败", zap.Error(err))
		}
		store = redis.NewKVStore(client)
	case "mysql":
		db, err := mysql.NewDB(cfg)
		if err != nil {
			log.Fatal("初始化MySQL失败", zap.Error(err))
		}
		store = mysql.NewKVStore(db)
	}

	// 6. 初始化远端商城客户端(带熔断)
	commerceClient := commerce.NewClient(cfg.Commerce, log)

	// 7. 初始化事件发布器(可选)
	var publisher apporder.EventPublisher
	if cfg.Events.Enabled {
		p, err := mq.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, "topic")
		if err != nil {
			// 事件是旁路能力,连不上消息队列只降级不退出
			log.Warn("初始化事件发布器失败,事件发布已禁用", zap.Error(err))
		} else {
			publisher = p
			defer p.Close()
		}
	}

	// 8. 依赖注入(手动组装)
	// Repository ← UseCase ← Handler
	cartMgr := appcart.NewManager(store, commerceClient, log)
	history := apporder.NewHistory(store, commerceClient, publisher, log)

	listCategoriesUC := appcatalog.NewListCategoriesUseCase(commerceClient, log)
	listProductsUC := appcatalog.NewListProductsUseCase(commerceClient, log)
	getProductUC := appcatalog.NewGetProductUseCase(commerceClient, log)
	getOrderUC := apporder.NewGetOrderUseCase(commerceClient, commerceClient, history, log)
	placeOrderUC := appcheckout.NewPlaceOrderUseCase(cartMgr, commerceClient, history, publisher, log)

	catalogHandler := handler.NewCatalogHandler(listCategoriesUC, listProductsUC, getProductUC)
	cartHandler := handler.NewCartHandler(cartMgr)
	orderHandler := handler.NewOrderHandler(history, getOrderUC)
	checkoutHandler := handler.NewCheckoutHandler(placeOrderUC)

	// 9. 恢复购物车(存储中的持久化状态)
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	if err := cartMgr.Restore(startupCtx); err != nil {
		log.Warn("恢复购物车失败,从空购物车开始", zap.Error(err))
	}
	cancelStartup()

	// 10. 启动后静默对账(可选,延迟执行避免拖慢启动)
	if cfg.Reconcile.Enabled {
		time.AfterFunc(cfg.Reconcile.LaunchDelay, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if _, err := history.Reconcile(ctx, apporder.ModeQuiet); err != nil {
				log.Warn("静默对账失败", zap.Error(err))
			}
		})
	}

	// 11. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS())

	registerRoutes(r, catalogHandler, cartHandler, orderHandler, checkoutHandler)

	// 12. 启动HTTP服务(优雅停机)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("服务启动",
			zap.Int("port", cfg.Server.Port),
			zap.String("mode", cfg.Server.Mode),
			zap.String("storage", cfg.Storage.Driver),
			zap.String("commerce", cfg.Commerce.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("启动服务失败", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("收到退出信号,开始优雅停机")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("优雅停机失败", zap.Error(err))
	}
	log.Info("服务已退出")
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	checkoutHandler *handler.CheckoutHandler,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档(访问/swagger/index.html)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 商品目录(远端商城数据的只读代理)
		v1.GET("/categories", catalogHandler.ListCategories)
		products := v1.Group("/products")
		{
			products.GET("", catalogHandler.ListProducts)
			products.GET("/:id", catalogHandler.GetProduct)
		}

		// 购物车
		cart := v1.Group("/cart")
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:id", cartHandler.UpdateItem)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
		}

		// 结算
		v1.POST("/checkout", checkoutHandler.Checkout)

		// 订单
		orders := v1.Group("/orders")
		{
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("/reconcile", orderHandler.Reconcile)
		}
	}
}
