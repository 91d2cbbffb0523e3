// internal/service/coupon/application/alliance_service.go
package application

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kabudence/coupon-microservice/internal/pkg/logger"
	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// AllianceService 管理商家联盟的生命周期
type AllianceService struct {
	repo   domain.AllianceRepository
	tracer trace.Tracer
}

func NewAllianceService(repo domain.AllianceRepository, tracer trace.Tracer) *AllianceService {
	return &AllianceService{repo: repo, tracer: tracer}
}

// Request 发起一个联盟请求。
// 两商家之间已有 PENDING 或 ACCEPTED 的联盟时拒绝重复发起。
func (s *AllianceService) Request(ctx context.Context, req *AllianceRequest) (*domain.Alliance, error) {
	ctx, span := s.tracer.Start(ctx, "service.RequestAlliance")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("alliance.requester", req.RequesterBusinessID),
		attribute.Int64("alliance.receiver", req.ReceiverBusinessID),
	)

	alliance, err := domain.NewAlliance(req.RequesterBusinessID, req.ReceiverBusinessID, req.Reason)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	existing, err := s.repo.FindOpenPair(ctx, req.RequesterBusinessID, req.ReceiverBusinessID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		span.RecordError(err)
		return nil, err
	}
	if existing != nil {
		err := errors.Wrapf(domain.ErrDuplicate, "alliance between %d and %d already %s",
			req.RequesterBusinessID, req.ReceiverBusinessID, existing.Status)
		span.RecordError(err)
		return nil, err
	}

	alliance.RequestedAt = time.Now()
	if err := s.repo.Create(ctx, alliance); err != nil {
		span.RecordError(err)
		return nil, err
	}
	logger.Ctx(ctx).Info().Int64("alliance_id", alliance.ID).Msg("alliance requested")
	return alliance, nil
}

func (s *AllianceService) Get(ctx context.Context, id int64) (*domain.Alliance, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AllianceService) ListByBusiness(ctx context.Context, businessID int64) ([]*domain.Alliance, error) {
	return s.repo.ListByBusiness(ctx, businessID)
}

func (s *AllianceService) ListByStatus(ctx context.Context, status string) ([]*domain.Alliance, error) {
	switch domain.AllianceStatus(status) {
	case domain.AlliancePending, domain.AllianceAccepted, domain.AllianceRejected,
		domain.AllianceCanceled, domain.AllianceSuspended:
	default:
		return nil, errors.Wrapf(domain.ErrInvalidArgument, "invalid alliance status: %s", status)
	}
	return s.repo.ListByStatus(ctx, domain.AllianceStatus(status))
}

// transition 统一处理带角色校验的状态转换
func (s *AllianceService) transition(ctx context.Context, spanName string, id int64, apply func(*domain.Alliance) error) (*domain.Alliance, error) {
	ctx, span := s.tracer.Start(ctx, spanName)
	defer span.End()

	alliance, err := s.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := apply(alliance); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.repo.Update(ctx, alliance); err != nil {
		span.RecordError(err)
		return nil, err
	}
	logger.Ctx(ctx).Info().
		Int64("alliance_id", alliance.ID).
		Str("status", string(alliance.Status)).
		Msg("alliance transitioned")
	return alliance, nil
}

func (s *AllianceService) Accept(ctx context.Context, id, actorBusinessID int64) (*domain.Alliance, error) {
	return s.transition(ctx, "service.AcceptAlliance", id, func(a *domain.Alliance) error {
		return a.Accept(actorBusinessID, time.Now())
	})
}

func (s *AllianceService) Reject(ctx context.Context, id, actorBusinessID int64) (*domain.Alliance, error) {
	return s.transition(ctx, "service.RejectAlliance", id, func(a *domain.Alliance) error {
		return a.Reject(actorBusinessID, time.Now())
	})
}

func (s *AllianceService) Cancel(ctx context.Context, id, actorBusinessID int64) (*domain.Alliance, error) {
	return s.transition(ctx, "service.CancelAlliance", id, func(a *domain.Alliance) error {
		return a.Cancel(actorBusinessID, time.Now())
	})
}

func (s *AllianceService) Suspend(ctx context.Context, id, actorBusinessID int64) (*domain.Alliance, error) {
	return s.transition(ctx, "service.SuspendAlliance", id, func(a *domain.Alliance) error {
		return a.Suspend(actorBusinessID, time.Now())
	})
}

func (s *AllianceService) Reactivate(ctx context.Context, id, actorBusinessID int64) (*domain.Alliance, error) {
	return s.transition(ctx, "service.ReactivateAlliance", id, func(a *domain.Alliance) error {
		return a.Reactivate(actorBusinessID, time.Now())
	})
}

func (s *AllianceService) UpdateReason(ctx context.Context, id, actorBusinessID int64, reason string) (*domain.Alliance, error) {
	return s.transition(ctx, "service.UpdateAllianceReason", id, func(a *domain.Alliance) error {
		return a.UpdateReason(actorBusinessID, reason)
	})
}
