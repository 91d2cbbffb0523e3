// internal/service/payment/application/source_service.go
package application

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kabudence/coupon-microservice/internal/service/payment/domain"
)

// PaymentSourceService 管理付款方保存的支付手段
type PaymentSourceService struct {
	repo   domain.PaymentSourceRepository
	tracer trace.Tracer
}

func NewPaymentSourceService(repo domain.PaymentSourceRepository, tracer trace.Tracer) *PaymentSourceService {
	return &PaymentSourceService{repo: repo, tracer: tracer}
}

func (s *PaymentSourceService) Create(ctx context.Context, req *PaymentSourceRequest) (*domain.PaymentSource, error) {
	ctx, span := s.tracer.Start(ctx, "service.CreatePaymentSource")
	defer span.End()

	source, err := domain.NewPaymentSource(req.ProviderCustomerPK, req.SourceType)
	if err != nil {
		return nil, err
	}
	if source.SourceType == domain.SourceCard {
		if err := source.SetCardDetails(req.ProviderSourceID, req.Brand, req.LastFour, req.ExpMonth, req.ExpYear); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(ctx, source); err != nil {
		return nil, err
	}
	return source, nil
}

func (s *PaymentSourceService) Get(ctx context.Context, id int64) (*domain.PaymentSource, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PaymentSourceService) ListByCustomer(ctx context.Context, customerPK int64) ([]*domain.PaymentSource, error) {
	return s.repo.ListByCustomer(ctx, customerPK)
}

func (s *PaymentSourceService) ListActiveCards(ctx context.Context, customerPK int64) ([]*domain.PaymentSource, error) {
	return s.repo.ListActiveCards(ctx, customerPK)
}

func (s *PaymentSourceService) GetWallet(ctx context.Context, customerPK int64) (*domain.PaymentSource, error) {
	return s.repo.FindWallet(ctx, customerPK)
}

// UpsertCard 按渠道 token 找已有卡并更新卡面信息，找不到时新建
func (s *PaymentSourceService) UpsertCard(ctx context.Context, req *PaymentSourceRequest) (*domain.PaymentSource, error) {
	ctx, span := s.tracer.Start(ctx, "service.UpsertCard")
	defer span.End()

	existing, err := s.repo.FindCardByProviderSourceID(ctx, req.ProviderCustomerPK, req.ProviderSourceID)
	if err == nil {
		if err := existing.SetCardDetails(req.ProviderSourceID, req.Brand, req.LastFour, req.ExpMonth, req.ExpYear); err != nil {
			return nil, err
		}
		existing.Status = domain.SourceActive
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	req.SourceType = string(domain.SourceCard)
	return s.Create(ctx, req)
}

// UpsertWallet 每个 customer 至多一个 wallet，存在即复用
func (s *PaymentSourceService) UpsertWallet(ctx context.Context, customerPK int64) (*domain.PaymentSource, error) {
	ctx, span := s.tracer.Start(ctx, "service.UpsertWallet")
	defer span.End()

	existing, err := s.repo.FindWallet(ctx, customerPK)
	if err == nil {
		if existing.Status != domain.SourceActive {
			existing.Status = domain.SourceActive
			if err := s.repo.Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.Create(ctx, &PaymentSourceRequest{
		ProviderCustomerPK: customerPK,
		SourceType:         string(domain.SourceWallet),
	})
}

// SoftDelete 停用来源而不删除行，保留历史订单的可追溯性
func (s *PaymentSourceService) SoftDelete(ctx context.Context, id int64) (*domain.PaymentSource, error) {
	source, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	source.Disable()
	if err := s.repo.Update(ctx, source); err != nil {
		return nil, err
	}
	return source, nil
}

func (s *PaymentSourceService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
