// internal/service/coupon/application/trigger_service.go
package application

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kabudence/coupon-microservice/internal/pkg/logger"
	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// TriggerMappingService 管理“买 X 解锁券 Y”的映射规则
type TriggerMappingService struct {
	repo   domain.TriggerMappingRepository
	tracer trace.Tracer
}

func NewTriggerMappingService(repo domain.TriggerMappingRepository, tracer trace.Tracer) *TriggerMappingService {
	return &TriggerMappingService{repo: repo, tracer: tracer}
}

// Add 新建一条映射，(trigger_product_id, coupon_id) 重复时返回冲突
func (s *TriggerMappingService) Add(ctx context.Context, req *TriggerMappingRequest) (*TriggerMappingResponse, error) {
	ctx, span := s.tracer.Start(ctx, "service.AddTriggerMapping")
	defer span.End()

	mapping, err := s.newMapping(req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.repo.Add(ctx, mapping); err != nil {
		span.RecordError(err)
		return nil, err
	}
	logger.Ctx(ctx).Info().
		Int64("trigger_product_id", mapping.TriggerProductID).
		Int64("coupon_id", mapping.CouponID).
		Msg("trigger mapping created")
	return toTriggerMappingResponse(mapping), nil
}

// BulkAdd 最大努力批量插入：重复的映射被跳过而不是让整批失败
func (s *TriggerMappingService) BulkAdd(ctx context.Context, reqs []*TriggerMappingRequest) (*BulkAddResponse, error) {
	ctx, span := s.tracer.Start(ctx, "service.BulkAddTriggerMappings")
	defer span.End()
	span.SetAttributes(attribute.Int("mappings.requested", len(reqs)))

	if len(reqs) == 0 {
		return nil, errors.Wrap(domain.ErrInvalidArgument, "mappings must be non-empty")
	}
	mappings := make([]*domain.TriggerMapping, 0, len(reqs))
	for _, req := range reqs {
		m, err := s.newMapping(req)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		mappings = append(mappings, m)
	}

	inserted, err := s.repo.BulkAdd(ctx, mappings)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	logger.Ctx(ctx).Info().
		Int("requested", len(reqs)).
		Int("inserted", inserted).
		Msg("trigger mappings bulk added")
	return &BulkAddResponse{
		Requested: len(reqs),
		Inserted:  inserted,
		Skipped:   len(reqs) - inserted,
	}, nil
}

func (s *TriggerMappingService) Get(ctx context.Context, id int64) (*TriggerMappingResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTriggerMappingResponse(m), nil
}

func (s *TriggerMappingService) ListByCoupon(ctx context.Context, couponID int64) ([]*TriggerMappingResponse, error) {
	ms, err := s.repo.ListTriggersByCoupon(ctx, couponID)
	if err != nil {
		return nil, err
	}
	return toTriggerMappingResponses(ms), nil
}

func (s *TriggerMappingService) ListByTrigger(ctx context.Context, triggerProductID int64) ([]*TriggerMappingResponse, error) {
	ms, err := s.repo.ListCouponsByTrigger(ctx, triggerProductID)
	if err != nil {
		return nil, err
	}
	return toTriggerMappingResponses(ms), nil
}

func (s *TriggerMappingService) Remove(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "service.RemoveTriggerMapping")
	defer span.End()
	return s.repo.Remove(ctx, id)
}

func (s *TriggerMappingService) RemoveAllForCoupon(ctx context.Context, couponID int64) (int, error) {
	ctx, span := s.tracer.Start(ctx, "service.RemoveAllTriggerMappings")
	defer span.End()
	removed, err := s.repo.RemoveAllForCoupon(ctx, couponID)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	logger.Ctx(ctx).Info().Int64("coupon_id", couponID).Int("removed", removed).Msg("trigger mappings removed for coupon")
	return removed, nil
}

func (s *TriggerMappingService) newMapping(req *TriggerMappingRequest) (*domain.TriggerMapping, error) {
	productType := domain.ProductTypeProduct
	if req.ProductType != "" {
		pt, err := domain.ParseProductType(req.ProductType)
		if err != nil {
			return nil, err
		}
		productType = pt
	}
	minQuantity := req.MinQuantity
	if minQuantity == 0 {
		minQuantity = 1
	}
	return domain.NewTriggerMapping(req.TriggerProductID, req.CouponID, productType, minQuantity, req.MinAmount)
}

func toTriggerMappingResponses(ms []*domain.TriggerMapping) []*TriggerMappingResponse {
	out := make([]*TriggerMappingResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, toTriggerMappingResponse(m))
	}
	return out
}
