// internal/service/coupon/application/segment_service.go
package application

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// SegmentService 管理客群及每张券对客群的专属价格
type SegmentService struct {
	segments domain.SegmentRepository
	prices   domain.SegmentPriceRepository
	tracer   trace.Tracer

	// maxPricesPerCoupon 限制一张券最多可配置多少个客群价，0 表示不限
	maxPricesPerCoupon int64
}

func NewSegmentService(segments domain.SegmentRepository, prices domain.SegmentPriceRepository, maxPricesPerCoupon int64, tracer trace.Tracer) *SegmentService {
	return &SegmentService{
		segments:           segments,
		prices:             prices,
		maxPricesPerCoupon: maxPricesPerCoupon,
		tracer:             tracer,
	}
}

type SegmentRequest struct {
	PublicName         string  `json:"public_name"`
	Gender             string  `json:"gender"`
	MinAge             *int    `json:"min_age,omitempty"`
	MaxAge             *int    `json:"max_age,omitempty"`
	IsStudent          *bool   `json:"is_student,omitempty"`
	DistrictID         *int64  `json:"district_id,omitempty"`
	SocioeconomicLevel *string `json:"socioeconomic_level,omitempty"`
}

func (s *SegmentService) buildSegment(req *SegmentRequest) (*domain.Segment, error) {
	gender, err := domain.ParseSegmentGender(req.Gender)
	if err != nil {
		return nil, err
	}
	segment, err := domain.NewSegment(req.PublicName, gender)
	if err != nil {
		return nil, err
	}
	if req.MinAge != nil || req.MaxAge != nil {
		if req.MinAge == nil || req.MaxAge == nil {
			return nil, errors.Wrap(domain.ErrInvalidArgument, "min_age and max_age must be provided together")
		}
		if err := segment.SetAgeRange(*req.MinAge, *req.MaxAge); err != nil {
			return nil, err
		}
	}
	segment.IsStudent = req.IsStudent
	segment.DistrictID = req.DistrictID
	segment.SocioeconomicLevel = req.SocioeconomicLevel
	return segment, nil
}

func (s *SegmentService) CreateSegment(ctx context.Context, req *SegmentRequest) (*domain.Segment, error) {
	segment, err := s.buildSegment(req)
	if err != nil {
		return nil, err
	}
	if err := s.segments.Create(ctx, segment); err != nil {
		return nil, err
	}
	return segment, nil
}

func (s *SegmentService) GetSegment(ctx context.Context, id int64) (*domain.Segment, error) {
	return s.segments.FindByID(ctx, id)
}

func (s *SegmentService) ListSegments(ctx context.Context) ([]*domain.Segment, error) {
	return s.segments.FindAll(ctx)
}

func (s *SegmentService) UpdateSegment(ctx context.Context, id int64, req *SegmentRequest) (*domain.Segment, error) {
	segment, err := s.buildSegment(req)
	if err != nil {
		return nil, err
	}
	segment.ID = id
	if err := s.segments.Update(ctx, segment); err != nil {
		return nil, err
	}
	return segment, nil
}

func (s *SegmentService) DeleteSegment(ctx context.Context, id int64) error {
	return s.segments.Delete(ctx, id)
}

func (s *SegmentService) buildPrice(req *SegmentPriceRequest) (*domain.SegmentPriceOverride, error) {
	priority := req.Priority
	if priority == 0 {
		priority = 1
	}
	return domain.NewSegmentPriceOverride(req.CouponID, req.SegmentID, req.DiscountTypeID, req.Value, priority)
}

// CreatePrice 新建一条客群价，受每券上限约束，重复组合返回冲突
func (s *SegmentService) CreatePrice(ctx context.Context, req *SegmentPriceRequest) (*domain.SegmentPriceOverride, error) {
	ctx, span := s.tracer.Start(ctx, "service.CreateSegmentPrice")
	defer span.End()

	price, err := s.buildPrice(req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if s.maxPricesPerCoupon > 0 {
		count, err := s.prices.CountForCoupon(ctx, price.CouponID)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if count >= s.maxPricesPerCoupon {
			err := errors.Wrapf(domain.ErrForbidden, "coupon %d already has %d segment prices", price.CouponID, count)
			span.RecordError(err)
			return nil, err
		}
	}
	if err := s.prices.Create(ctx, price); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return price, nil
}

// UpsertPrice 按 (coupon_id, segment_id) 插入或覆盖一条客群价
func (s *SegmentService) UpsertPrice(ctx context.Context, req *SegmentPriceRequest) (*domain.SegmentPriceOverride, error) {
	price, err := s.buildPrice(req)
	if err != nil {
		return nil, err
	}
	if err := s.prices.Upsert(ctx, price); err != nil {
		return nil, err
	}
	return price, nil
}

func (s *SegmentService) UpdatePrice(ctx context.Context, req *SegmentPriceRequest) (*domain.SegmentPriceOverride, error) {
	price, err := s.buildPrice(req)
	if err != nil {
		return nil, err
	}
	if err := s.prices.Update(ctx, price); err != nil {
		return nil, err
	}
	return price, nil
}

func (s *SegmentService) GetPrice(ctx context.Context, couponID, segmentID int64) (*domain.SegmentPriceOverride, error) {
	return s.prices.Get(ctx, couponID, segmentID)
}

// ListPricesByCoupon 按优先级升序返回（1 = 最高），下游定价取第一个命中的客群
func (s *SegmentService) ListPricesByCoupon(ctx context.Context, couponID int64) ([]*domain.SegmentPriceOverride, error) {
	return s.prices.ListByCoupon(ctx, couponID)
}

func (s *SegmentService) ListPricesBySegment(ctx context.Context, segmentID int64) ([]*domain.SegmentPriceOverride, error) {
	return s.prices.ListBySegment(ctx, segmentID)
}

func (s *SegmentService) DeletePrice(ctx context.Context, couponID, segmentID int64) error {
	return s.prices.Delete(ctx, couponID, segmentID)
}

func (s *SegmentService) DeleteAllPricesForCoupon(ctx context.Context, couponID int64) (int, error) {
	return s.prices.DeleteAllForCoupon(ctx, couponID)
}
