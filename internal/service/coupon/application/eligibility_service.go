// internal/service/coupon/application/eligibility_service.go
package application

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kabudence/coupon-microservice/internal/pkg/logger"
	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// EligibilityService 实现资格解析用例：把一个购物车翻译成它解锁的优惠券集合
type EligibilityService struct {
	mappingRepo domain.TriggerMappingRepository
	tracer      trace.Tracer
}

// NewEligibilityService 创建资格解析服务实例
func NewEligibilityService(mappingRepo domain.TriggerMappingRepository, tracer trace.Tracer) *EligibilityService {
	return &EligibilityService{mappingRepo: mappingRepo, tracer: tracer}
}

// Resolve 对整个购物车做资格解析。
// 任意一个条目校验失败则整个调用失败，不返回部分结果；无副作用。
func (s *EligibilityService) Resolve(ctx context.Context, req *ResolveEligibilityRequest) ([]*ResolvedEligibilityResponse, error) {
	ctx, span := s.tracer.Start(ctx, "service.ResolveEligibility")
	defer span.End()

	span.SetAttributes(attribute.Int("cart.item_count", len(req.Items)))

	if len(req.Items) == 0 {
		err := errors.Wrap(domain.ErrInvalidArgument, "items must be non-empty")
		span.RecordError(err)
		return nil, err
	}

	// 1. 先整体校验，保证失败时没有做过任何查询之外的工作
	items := make([]*domain.PurchasedItem, 0, len(req.Items))
	for _, it := range req.Items {
		item, err := domain.NewPurchasedItem(it.ProductType, it.ProductID, it.Quantity, it.Amount)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		items = append(items, item)
	}

	// 2. 按触发商品 id 拉取映射，同一 id 只查一次
	mappingsByTrigger := make(map[int64][]*domain.TriggerMapping, len(items))
	for _, item := range items {
		if _, ok := mappingsByTrigger[item.ProductID]; ok {
			continue
		}
		mappings, err := s.mappingRepo.ListCouponsByTrigger(ctx, item.ProductID)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		mappingsByTrigger[item.ProductID] = mappings
	}

	// 3. 纯函数过滤 + 去重
	resolved := domain.ResolveEligibilities(items, mappingsByTrigger)

	span.SetAttributes(attribute.Int("eligibility.resolved_count", len(resolved)))
	logger.Ctx(ctx).Info().
		Int("items", len(items)).
		Int("resolved", len(resolved)).
		Msg("eligibility resolved")

	out := make([]*ResolvedEligibilityResponse, 0, len(resolved))
	for _, r := range resolved {
		out = append(out, &ResolvedEligibilityResponse{
			ProductType: string(r.ProductType),
			ProductID:   r.ProductID,
			CouponID:    r.CouponID,
			MinQuantity: r.MinQuantity,
			MinAmount:   r.MinAmount,
		})
	}
	return out, nil
}
