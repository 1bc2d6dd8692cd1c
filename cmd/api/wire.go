//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 运行 wire gen ./cmd/api 生成wire_gen.go(main.go中的手动组装与此等价)
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appitem "github.com/checkproof/inventory/internal/application/item"
	appstock "github.com/checkproof/inventory/internal/application/stock"
	appvariant "github.com/checkproof/inventory/internal/application/variant"
	"github.com/checkproof/inventory/internal/domain/item"
	"github.com/checkproof/inventory/internal/domain/stock"
	"github.com/checkproof/inventory/internal/domain/variant"
	"github.com/checkproof/inventory/internal/infrastructure/config"
	inframq "github.com/checkproof/inventory/internal/infrastructure/mq"
	"github.com/checkproof/inventory/internal/infrastructure/persistence/mysql"
	"github.com/checkproof/inventory/internal/infrastructure/persistence/redis"
	"github.com/checkproof/inventory/internal/interface/http/handler"
	"github.com/checkproof/inventory/internal/interface/http/middleware"
	"github.com/checkproof/inventory/pkg/jwt"
	"github.com/checkproof/inventory/pkg/logger"
	"github.com/checkproof/inventory/pkg/mq"
	"github.com/checkproof/inventory/pkg/retry"
)

// infrastructureSet 基础设施层Provider
var infrastructureSet = wire.NewSet(
	config.Load,
	provideLogger,
	mysql.NewDB,
	redis.NewClient,
	mysql.NewTxManager,
	wire.Bind(new(appstock.TxManager), new(*mysql.TxManager)),
	provideStockCache,
	provideEventPublisher,
	provideJWTManager,
)

// repositorySet 仓储Provider
var repositorySet = wire.NewSet(
	mysql.NewItemRepository,
	mysql.NewVariantRepository,
	mysql.NewStockRepository,
	mysql.NewMovementRepository,
)

// domainSet 领域服务Provider
var domainSet = wire.NewSet(
	item.NewService,
	variant.NewService,
)

// applicationSet 应用层Provider
var applicationSet = wire.NewSet(
	appitem.NewCreateItemUseCase,
	appitem.NewGetItemUseCase,
	appitem.NewListItemsUseCase,
	appitem.NewUpdateItemUseCase,
	appitem.NewDeleteItemUseCase,
	appvariant.NewCreateVariantUseCase,
	appvariant.NewGetVariantUseCase,
	appvariant.NewListVariantsUseCase,
	appvariant.NewUpdateVariantUseCase,
	appvariant.NewDeleteVariantUseCase,
	provideApplyTransitionUseCase,
	provideGetStockUseCase,
	appstock.NewListMovementsUseCase,
)

// handlerSet 接口层Provider
var handlerSet = wire.NewSet(
	handler.NewItemHandler,
	handler.NewVariantHandler,
	handler.NewStockHandler,
	provideAuthHandler,
	middleware.NewAuthMiddleware,
)

// provideLogger 初始化日志器
func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.Init(cfg.Log.Level, cfg.Log.Format)
}

// provideJWTManager 从配置构造JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpire)
}

// provideAuthHandler 鉴权Handler需要配置中的APIKey哈希
func provideAuthHandler(jwtManager *jwt.Manager, cfg *config.Config) *handler.AuthHandler {
	return handler.NewAuthHandler(jwtManager, cfg.Auth.APIKeyHash)
}

// provideStockCache 库存快照缓存
func provideStockCache(client *goredis.Client, cfg *config.Config) appstock.SnapshotCache {
	return redis.NewStockCache(client, cfg.Redis.SnapshotTTL)
}

// provideEventPublisher 领域事件发布器(未启用MQ时返回nil,写路径降级为只记日志)
func provideEventPublisher(cfg *config.Config) (appstock.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		return nil, err
	}
	return inframq.NewStockEventPublisher(publisher), nil
}

// provideApplyTransitionUseCase 库存流转用例(重试策略与低库存阈值来自配置)
func provideApplyTransitionUseCase(
	variantRepo variant.Repository,
	stockRepo stock.Repository,
	movementRepo stock.MovementRepository,
	txManager appstock.TxManager,
	cache appstock.SnapshotCache,
	publisher appstock.EventPublisher,
	cfg *config.Config,
	l *zap.Logger,
) *appstock.ApplyTransitionUseCase {
	policy := retry.Policy{
		MaxAttempts: cfg.Stock.MaxRetries,
		BaseDelay:   cfg.Stock.RetryBaseDelay,
		MaxDelay:    cfg.Stock.RetryMaxDelay,
	}
	return appstock.NewApplyTransitionUseCase(
		variantRepo, stockRepo, movementRepo, txManager,
		cache, publisher, policy, cfg.Stock.LowStockThreshold, l.Named("stock"))
}

// provideGetStockUseCase 库存查询用例
func provideGetStockUseCase(
	variantRepo variant.Repository,
	stockRepo stock.Repository,
	cache appstock.SnapshotCache,
	l *zap.Logger,
) *appstock.GetStockUseCase {
	return appstock.NewGetStockUseCase(variantRepo, stockRepo, cache, l.Named("stock"))
}

// InitializeApp 组装完整应用
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		newRouter,
	)
	return nil, nil
}
