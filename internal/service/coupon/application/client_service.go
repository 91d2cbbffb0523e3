// internal/service/coupon/application/client_service.go
package application

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kabudence/coupon-microservice/internal/pkg/logger"
	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// ClientCouponService 管理发放到客户手中的券实例
type ClientCouponService struct {
	repo   domain.ClientCouponRepository
	tracer trace.Tracer
}

func NewClientCouponService(repo domain.ClientCouponRepository, tracer trace.Tracer) *ClientCouponService {
	return &ClientCouponService{repo: repo, tracer: tracer}
}

// Issue 给客户发放一张券，code 缺省时自动生成 uuid
func (s *ClientCouponService) Issue(ctx context.Context, req *ClientCouponRequest) (*domain.ClientCoupon, error) {
	ctx, span := s.tracer.Start(ctx, "service.IssueClientCoupon")
	defer span.End()

	cc, err := domain.NewClientCoupon(req.CouponID, req.ClientID, req.Code)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	cc.ValidFrom = req.ValidFrom
	cc.ValidTo = req.ValidTo
	cc.SourceTriggerID = req.SourceTriggerID
	cc.SourceOrderID = req.SourceOrderID

	if err := s.repo.Create(ctx, cc); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("coupon.id", cc.CouponID),
		attribute.Int64("client.id", cc.ClientID),
	)
	logger.Ctx(ctx).Info().
		Int64("client_coupon_id", cc.ID).
		Int64("client_id", cc.ClientID).
		Str("code", cc.Code).
		Msg("client coupon issued")
	return cc, nil
}

func (s *ClientCouponService) Get(ctx context.Context, id int64) (*domain.ClientCoupon, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ClientCouponService) GetByCode(ctx context.Context, code string) (*domain.ClientCoupon, error) {
	return s.repo.FindByCode(ctx, code)
}

func (s *ClientCouponService) ListByClient(ctx context.Context, clientID int64) ([]*domain.ClientCoupon, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *ClientCouponService) ListActiveForClient(ctx context.Context, clientID int64) ([]*domain.ClientCoupon, error) {
	return s.repo.ListActiveForClient(ctx, clientID, time.Now())
}

// IsActiveNow 查询一张券当前是否可用
func (s *ClientCouponService) IsActiveNow(ctx context.Context, id int64) (bool, error) {
	cc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return cc.IsActiveNow(time.Now()), nil
}

// MarkUsed 核销一张客户券，只有 ACTIVE 状态可核销
func (s *ClientCouponService) MarkUsed(ctx context.Context, id int64) (*domain.ClientCoupon, error) {
	ctx, span := s.tracer.Start(ctx, "service.MarkClientCouponUsed")
	defer span.End()

	cc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := cc.MarkUsed(time.Now()); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.repo.Update(ctx, cc); err != nil {
		span.RecordError(err)
		return nil, err
	}
	logger.Ctx(ctx).Info().Int64("client_coupon_id", cc.ID).Msg("client coupon used")
	return cc, nil
}

func (s *ClientCouponService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
