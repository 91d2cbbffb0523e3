// internal/service/payment/application/order_service.go
package application

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kabudence/coupon-microservice/internal/pkg/logger"
	"github.com/Kabudence/coupon-microservice/internal/service/payment/domain"
)

// OrderService 管理支付账目记录及其状态流转
type OrderService struct {
	repo   domain.OrderRepository
	tracer trace.Tracer
}

func NewOrderService(repo domain.OrderRepository, tracer trace.Tracer) *OrderService {
	return &OrderService{repo: repo, tracer: tracer}
}

func (s *OrderService) Create(ctx context.Context, req *OrderRequest) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "service.CreateOrder")
	defer span.End()

	order, err := domain.NewOrder(req.BuyerPartyID, req.SellerPartyID, req.Amount, req.Currency, req.Flow, req.Provider, req.Env)
	if err != nil {
		return nil, err
	}
	order.IdempotencyKey = req.IdempotencyKey
	order.Metadata = req.Metadata
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("order.id", order.ID))
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *OrderService) GetByProviderPayment(ctx context.Context, provider, env, providerPaymentID string) (*domain.Order, error) {
	environment, err := domain.ParseEnvironment(env)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByProviderPayment(ctx, provider, environment, providerPaymentID)
}

func (s *OrderService) GetByIdempotencyKey(ctx context.Context, provider, env, key string) (*domain.Order, error) {
	environment, err := domain.ParseEnvironment(env)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByIdempotencyKey(ctx, provider, environment, key)
}

func (s *OrderService) ListByBuyer(ctx context.Context, buyerPartyID int64) ([]*domain.Order, error) {
	return s.repo.ListByBuyer(ctx, buyerPartyID)
}

func (s *OrderService) ListBySeller(ctx context.Context, sellerPartyID int64) ([]*domain.Order, error) {
	return s.repo.ListBySeller(ctx, sellerPartyID)
}

func (s *OrderService) ListByStatus(ctx context.Context, status string) ([]*domain.Order, error) {
	parsed, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByStatus(ctx, parsed)
}

// SetCheckoutContext 挂渠道上下文并把订单推进到 PROCESSING
func (s *OrderService) SetCheckoutContext(ctx context.Context, id int64, req *CheckoutContextRequest) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "service.SetCheckoutContext")
	defer span.End()

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.SetCheckoutContext(req.ProviderAccountID, req.ProviderPaymentID, req.IdempotencyKey); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) MarkPaid(ctx context.Context, id int64, req *MarkPaidRequest) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "service.MarkOrderPaid")
	defer span.End()

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.MarkPaid(req.PaymentType, req.MethodBrand, req.MethodLastFour, time.Now().UTC())
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info().Int64("order_id", order.ID).Msg("✅ order paid")
	return order, nil
}

func (s *OrderService) MarkFailed(ctx context.Context, id int64, req *MarkFailedRequest) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "service.MarkOrderFailed")
	defer span.End()

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.MarkFailed(req.ErrorCode, req.ErrorMessage)
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Warn().
		Int64("order_id", order.ID).
		Str("error_code", req.ErrorCode).
		Msg("⚠️ order failed")
	return order, nil
}

// Cancel 取消订单；已支付订单原样返回，不报错也不改状态
func (s *OrderService) Cancel(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "service.CancelOrder")
	defer span.End()

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderPaid {
		return order, nil
	}
	order.Cancel()
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
