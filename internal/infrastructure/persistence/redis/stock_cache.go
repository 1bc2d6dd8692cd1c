package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appstock "github.com/checkproof/inventory/internal/application/stock"
	apperrors "github.com/checkproof/inventory/pkg/errors"
)

// StockCache 库存快照缓存
// 设计说明：
// 1. 旁路缓存(Cache-Aside)：查询回填，写路径主动失效
// 2. 短TTL兜底：即使失效消息丢失，脏快照最多存活一个TTL
// 3. 快照只服务读请求，库存流转永远以数据库为准
// 4. Key设计：stock:{variant_id}
type StockCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStockCache 创建库存快照缓存
func NewStockCache(client *redis.Client, ttl time.Duration) *StockCache {
	return &StockCache{client: client, ttl: ttl}
}

// key 生成缓存Key
func (c *StockCache) key(variantID uint) string {
	return fmt.Sprintf("stock:%d", variantID)
}

// Get 读取库存快照,未命中返回(nil, nil)
func (c *StockCache) Get(ctx context.Context, variantID uint) (*appstock.StockView, error) {
	data, err := c.client.Get(ctx, c.key(variantID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "读取库存快照失败")
	}

	var view appstock.StockView
	if err := json.Unmarshal(data, &view); err != nil {
		// 快照损坏按未命中处理,回源覆盖
		return nil, nil
	}
	return &view, nil
}

// Set 写入库存快照(带TTL)
func (c *StockCache) Set(ctx context.Context, view *appstock.StockView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return apperrors.Wrap(err, "序列化库存快照失败")
	}

	if err := c.client.Set(ctx, c.key(view.VariantID), data, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入库存快照失败")
	}
	return nil
}

// Invalidate 删除库存快照(库存流转成功后调用)
func (c *StockCache) Invalidate(ctx context.Context, variantID uint) error {
	if err := c.client.Del(ctx, c.key(variantID)).Err(); err != nil {
		return apperrors.Wrap(err, "删除库存快照失败")
	}
	return nil
}
