// internal/service/coupon/infrastructure/trigger_cache.go
package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kabudence/coupon-microservice/internal/pkg/logger"
	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

const triggerCacheTTL = 5 * time.Minute

// CachedTriggerMappingRepository 用 Redis 给触发映射的读路径加一层 read-through 缓存。
// 资格解析按 trigger_product_id 查询，是整个服务最热的读；
// 写操作失效对应的缓存键，缓存故障时退化为直查数据库。
type CachedTriggerMappingRepository struct {
	inner domain.TriggerMappingRepository
	rdb   redis.UniversalClient
}

func NewCachedTriggerMappingRepository(inner domain.TriggerMappingRepository, rdb redis.UniversalClient) *CachedTriggerMappingRepository {
	return &CachedTriggerMappingRepository{inner: inner, rdb: rdb}
}

func triggerCacheKey(triggerProductID int64) string {
	return fmt.Sprintf("coupon:trigger_mappings:%d", triggerProductID)
}

// ListCouponsByTrigger 先查缓存，未命中时回源并写回
func (r *CachedTriggerMappingRepository) ListCouponsByTrigger(ctx context.Context, triggerProductID int64) ([]*domain.TriggerMapping, error) {
	key := triggerCacheKey(triggerProductID)

	if data, err := r.rdb.Get(ctx, key).Bytes(); err == nil {
		var mappings []*domain.TriggerMapping
		if err := json.Unmarshal(data, &mappings); err == nil {
			return mappings, nil
		}
		// 缓存内容损坏，删掉后回源
		r.rdb.Del(ctx, key)
	} else if err != redis.Nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("trigger mapping cache read failed, falling back to db")
	}

	mappings, err := r.inner.ListCouponsByTrigger(ctx, triggerProductID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(mappings); err == nil {
		if err := r.rdb.Set(ctx, key, data, triggerCacheTTL).Err(); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("trigger mapping cache write failed")
		}
	}
	return mappings, nil
}

func (r *CachedTriggerMappingRepository) invalidate(ctx context.Context, triggerProductIDs ...int64) {
	if len(triggerProductIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(triggerProductIDs))
	for _, id := range triggerProductIDs {
		keys = append(keys, triggerCacheKey(id))
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("trigger mapping cache invalidation failed")
	}
}

func (r *CachedTriggerMappingRepository) Add(ctx context.Context, m *domain.TriggerMapping) error {
	if err := r.inner.Add(ctx, m); err != nil {
		return err
	}
	r.invalidate(ctx, m.TriggerProductID)
	return nil
}

func (r *CachedTriggerMappingRepository) BulkAdd(ctx context.Context, ms []*domain.TriggerMapping) (int, error) {
	inserted, err := r.inner.BulkAdd(ctx, ms)
	if err != nil {
		return inserted, err
	}
	ids := make([]int64, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.TriggerProductID)
	}
	r.invalidate(ctx, ids...)
	return inserted, nil
}

func (r *CachedTriggerMappingRepository) FindByID(ctx context.Context, id int64) (*domain.TriggerMapping, error) {
	return r.inner.FindByID(ctx, id)
}

func (r *CachedTriggerMappingRepository) ListTriggersByCoupon(ctx context.Context, couponID int64) ([]*domain.TriggerMapping, error) {
	return r.inner.ListTriggersByCoupon(ctx, couponID)
}

func (r *CachedTriggerMappingRepository) Remove(ctx context.Context, id int64) error {
	// 先取出行才能知道要失效哪个触发键
	mapping, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.inner.Remove(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, mapping.TriggerProductID)
	return nil
}

func (r *CachedTriggerMappingRepository) RemoveAllForCoupon(ctx context.Context, couponID int64) (int, error) {
	mappings, err := r.inner.ListTriggersByCoupon(ctx, couponID)
	if err != nil {
		return 0, err
	}
	removed, err := r.inner.RemoveAllForCoupon(ctx, couponID)
	if err != nil {
		return removed, err
	}
	ids := make([]int64, 0, len(mappings))
	for _, m := range mappings {
		ids = append(ids, m.TriggerProductID)
	}
	r.invalidate(ctx, ids...)
	return removed, nil
}
