// internal/service/payment/application/checkout_service.go
package application

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/Kabudence/coupon-microservice/internal/pkg/logger"
	"github.com/Kabudence/coupon-microservice/internal/service/payment/domain"
)

// CheckoutSessionService 管理托管收银台会话
type CheckoutSessionService struct {
	repo   domain.CheckoutSessionRepository
	tracer trace.Tracer
}

func NewCheckoutSessionService(repo domain.CheckoutSessionRepository, tracer trace.Tracer) *CheckoutSessionService {
	return &CheckoutSessionService{repo: repo, tracer: tracer}
}

func (s *CheckoutSessionService) Create(ctx context.Context, req *CheckoutSessionRequest) (*domain.CheckoutSession, error) {
	ctx, span := s.tracer.Start(ctx, "service.CreateCheckoutSession")
	defer span.End()

	session, err := domain.NewCheckoutSession(req.OrderID, req.ProviderSessionID, req.InitURL, req.SandboxURL, req.ExpiresAt)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CreateOrReplaceForOrder 先作废该订单的全部会话再插入新会话
func (s *CheckoutSessionService) CreateOrReplaceForOrder(ctx context.Context, req *CheckoutSessionRequest) (*domain.CheckoutSession, error) {
	ctx, span := s.tracer.Start(ctx, "service.ReplaceCheckoutSession")
	defer span.End()

	expired, err := s.repo.ExpireAllForOrder(ctx, req.OrderID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if expired > 0 {
		logger.Ctx(ctx).Info().
			Int64("order_id", req.OrderID).
			Int("expired", expired).
			Msg("previous checkout sessions expired")
	}
	return s.Create(ctx, req)
}

func (s *CheckoutSessionService) Get(ctx context.Context, id int64) (*domain.CheckoutSession, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CheckoutSessionService) GetByProviderSessionID(ctx context.Context, providerSessionID string) (*domain.CheckoutSession, error) {
	return s.repo.FindByProviderSessionID(ctx, providerSessionID)
}

func (s *CheckoutSessionService) ListByOrder(ctx context.Context, orderID int64, onlyActive bool) ([]*domain.CheckoutSession, error) {
	return s.repo.ListByOrder(ctx, orderID, onlyActive)
}

func (s *CheckoutSessionService) ExpireAllForOrder(ctx context.Context, orderID int64) (int, error) {
	return s.repo.ExpireAllForOrder(ctx, orderID, time.Now().UTC())
}

func (s *CheckoutSessionService) UpdateURLsByProviderSessionID(ctx context.Context, providerSessionID string, req *SessionURLsRequest) (*domain.CheckoutSession, error) {
	session, err := s.repo.FindByProviderSessionID(ctx, providerSessionID)
	if err != nil {
		return nil, err
	}
	if req.InitURL != "" {
		session.InitURL = req.InitURL
	}
	if req.SandboxURL != "" {
		session.SandboxURL = req.SandboxURL
	}
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CheckoutSessionService) ExpireByProviderSessionID(ctx context.Context, providerSessionID string) (*domain.CheckoutSession, error) {
	session, err := s.repo.FindByProviderSessionID(ctx, providerSessionID)
	if err != nil {
		return nil, err
	}
	session.Expire(time.Now().UTC())
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CheckoutSessionService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
