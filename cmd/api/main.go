package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	appitem "github.com/checkproof/inventory/internal/application/item"
	appstock "github.com/checkproof/inventory/internal/application/stock"
	appvariant "github.com/checkproof/inventory/internal/application/variant"
	"github.com/checkproof/inventory/internal/domain/item"
	"github.com/checkproof/inventory/internal/domain/variant"
	"github.com/checkproof/inventory/internal/infrastructure/config"
	inframq "github.com/checkproof/inventory/internal/infrastructure/mq"
	"github.com/checkproof/inventory/internal/infrastructure/persistence/mysql"
	"github.com/checkproof/inventory/internal/infrastructure/persistence/redis"
	"github.com/checkproof/inventory/internal/interface/http/handler"
	"github.com/checkproof/inventory/internal/interface/http/middleware"
	"github.com/checkproof/inventory/internal/scheduler"
	"github.com/checkproof/inventory/pkg/jwt"
	"github.com/checkproof/inventory/pkg/logger"
	"github.com/checkproof/inventory/pkg/metrics"
	"github.com/checkproof/inventory/pkg/mq"
	"github.com/checkproof/inventory/pkg/response"
	"github.com/checkproof/inventory/pkg/retry"
	"github.com/checkproof/inventory/pkg/tracing"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go提供等价的Wire配置，运行wire gen可生成）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	appLogger, err := logger.Init(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	zap.L().Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("database", fmt.Sprintf("%s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()))

	// 3. 初始化指标
	metrics.InitMetrics()

	// 4. 初始化链路追踪(可选)
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer("inventory", cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatalf("初始化链路追踪失败: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				zap.L().Warn("链路追踪关闭失败", zap.Error(err))
			}
		}()
	}

	// 5. 初始化存储
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 6. 初始化消息队列(可选)
	var eventPublisher appstock.EventPublisher
	if cfg.MQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化消息队列失败: %v", err)
		}
		defer publisher.Close()
		eventPublisher = inframq.NewStockEventPublisher(publisher)
	}

	// 7. 依赖注入（手动组装）
	// 依赖链:Repository ← Service ← UseCase ← Handler

	// 基础设施层
	itemRepo := mysql.NewItemRepository(db)
	variantRepo := mysql.NewVariantRepository(db)
	stockRepo := mysql.NewStockRepository(db)
	movementRepo := mysql.NewMovementRepository(db)
	txManager := mysql.NewTxManager(db)
	stockCache := redis.NewStockCache(redisClient, cfg.Redis.SnapshotTTL)
	jwtManager := jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpire)

	// 领域层
	itemService := item.NewService(itemRepo)
	variantService := variant.NewService(variantRepo)

	// 应用层
	createItemUseCase := appitem.NewCreateItemUseCase(itemService)
	getItemUseCase := appitem.NewGetItemUseCase(itemService)
	listItemsUseCase := appitem.NewListItemsUseCase(itemService)
	updateItemUseCase := appitem.NewUpdateItemUseCase(itemService)
	deleteItemUseCase := appitem.NewDeleteItemUseCase(itemRepo, variantRepo, stockRepo, txManager)

	createVariantUseCase := appvariant.NewCreateVariantUseCase(itemRepo, variantService, stockRepo, txManager)
	getVariantUseCase := appvariant.NewGetVariantUseCase(variantService)
	listVariantsUseCase := appvariant.NewListVariantsUseCase(itemRepo, variantService)
	updateVariantUseCase := appvariant.NewUpdateVariantUseCase(variantService)
	deleteVariantUseCase := appvariant.NewDeleteVariantUseCase(variantRepo, stockRepo, txManager)

	retryPolicy := retry.Policy{
		MaxAttempts: cfg.Stock.MaxRetries,
		BaseDelay:   cfg.Stock.RetryBaseDelay,
		MaxDelay:    cfg.Stock.RetryMaxDelay,
	}
	applyTransitionUseCase := appstock.NewApplyTransitionUseCase(
		variantRepo, stockRepo, movementRepo, txManager,
		stockCache, eventPublisher, retryPolicy,
		cfg.Stock.LowStockThreshold, logger.Named(appLogger, "stock"),
	)
	getStockUseCase := appstock.NewGetStockUseCase(variantRepo, stockRepo, stockCache, logger.Named(appLogger, "stock"))
	listMovementsUseCase := appstock.NewListMovementsUseCase(variantRepo, movementRepo)

	// 接口层
	itemHandler := handler.NewItemHandler(
		createItemUseCase, getItemUseCase, listItemsUseCase, updateItemUseCase, deleteItemUseCase)
	variantHandler := handler.NewVariantHandler(
		createVariantUseCase, getVariantUseCase, listVariantsUseCase, updateVariantUseCase, deleteVariantUseCase)
	stockHandler := handler.NewStockHandler(applyTransitionUseCase, getStockUseCase, listMovementsUseCase)
	authHandler := handler.NewAuthHandler(jwtManager, cfg.Auth.APIKeyHash)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	// 8. 初始化Gin引擎并注册路由
	r := newRouter(cfg, itemHandler, variantHandler, stockHandler, authHandler, authMiddleware)

	// 9. 启动定时任务(可选)
	if cfg.Scheduler.Enabled {
		sched := scheduler.New(stockRepo, eventPublisher, cfg.Stock.LowStockThreshold, logger.Named(appLogger, "scheduler"))
		if err := sched.Start(cfg.Scheduler.LowStockCron); err != nil {
			log.Fatalf("启动定时任务失败: %v", err)
		}
		defer sched.Stop()
	}

	// 10. 启动HTTP服务(支持优雅关闭)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zap.L().Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	// 等待退出信号
	<-ctx.Done()
	zap.L().Info("收到退出信号，开始优雅关闭")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("优雅关闭失败", zap.Error(err))
	}
	zap.L().Info("服务已退出")
}

// newRouter 初始化Gin引擎并注册所有路由
func newRouter(
	cfg *config.Config,
	itemHandler *handler.ItemHandler,
	variantHandler *handler.VariantHandler,
	stockHandler *handler.StockHandler,
	authHandler *handler.AuthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.Logger(zap.L().Named("http")))
	r.Use(middleware.Metrics())
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing("inventory"))
	}

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档(访问 /swagger/index.html)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	// 查询接口公开,所有变更接口需要Token
	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/token", authHandler.Token)

		// 商品模块
		items := v1.Group("/items")
		{
			items.GET("", itemHandler.ListItems)
			items.GET("/:id", itemHandler.GetItem)
			items.GET("/:id/variants", variantHandler.ListVariants)

			items.POST("", authMiddleware.RequireAuth(), itemHandler.CreateItem)
			items.PUT("/:id", authMiddleware.RequireAuth(), itemHandler.UpdateItem)
			items.DELETE("/:id", authMiddleware.RequireAuth(), itemHandler.DeleteItem)
			items.POST("/:id/variants", authMiddleware.RequireAuth(), variantHandler.CreateVariant)
		}

		// 规格模块
		variants := v1.Group("/variants")
		{
			variants.GET("/:id", variantHandler.GetVariant)
			variants.GET("/:id/stock", stockHandler.GetStock)
			variants.GET("/:id/stock/movements", stockHandler.ListMovements)

			auth := variants.Group("", authMiddleware.RequireAuth())
			{
				auth.PUT("/:id", variantHandler.UpdateVariant)
				auth.DELETE("/:id", variantHandler.DeleteVariant)

				// 六种库存流转,操作类型由路由决定
				auth.PUT("/:id/stock", stockHandler.SetStock)
				auth.POST("/:id/stock/increase", stockHandler.IncreaseStock)
				auth.POST("/:id/stock/decrease", stockHandler.DecreaseStock)
				auth.POST("/:id/stock/reserve", stockHandler.ReserveStock)
				auth.POST("/:id/stock/commit", stockHandler.CommitStock)
				auth.POST("/:id/stock/release", stockHandler.ReleaseStock)
			}
		}
	}

	return r
}
