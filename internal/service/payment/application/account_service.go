// internal/service/payment/application/account_service.go
package application

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kabudence/coupon-microservice/internal/service/payment/domain"
)

// ProviderAccountService 管理商家侧的渠道收款账号
type ProviderAccountService struct {
	repo   domain.ProviderAccountRepository
	tracer trace.Tracer
}

func NewProviderAccountService(repo domain.ProviderAccountRepository, tracer trace.Tracer) *ProviderAccountService {
	return &ProviderAccountService{repo: repo, tracer: tracer}
}

func (s *ProviderAccountService) buildAccount(req *ProviderAccountRequest) (*domain.ProviderAccount, error) {
	account, err := domain.NewProviderAccount(req.PartyID, req.Provider, req.Env, req.ProviderAccountID)
	if err != nil {
		return nil, err
	}
	account.PublicKey = req.PublicKey
	account.SecretJSONEnc = req.SecretJSONEnc
	return account, nil
}

func (s *ProviderAccountService) Create(ctx context.Context, req *ProviderAccountRequest) (*domain.ProviderAccount, error) {
	ctx, span := s.tracer.Start(ctx, "service.CreateProviderAccount")
	defer span.End()

	account, err := s.buildAccount(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *ProviderAccountService) Get(ctx context.Context, id int64) (*domain.ProviderAccount, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProviderAccountService) GetByUnique(ctx context.Context, provider, env, providerAccountID string) (*domain.ProviderAccount, error) {
	environment, err := domain.ParseEnvironment(env)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByUnique(ctx, provider, environment, providerAccountID)
}

func (s *ProviderAccountService) ListByParty(ctx context.Context, partyID int64) ([]*domain.ProviderAccount, error) {
	return s.repo.ListByParty(ctx, partyID)
}

func (s *ProviderAccountService) ListByPartyEnv(ctx context.Context, partyID int64, env string) ([]*domain.ProviderAccount, error) {
	environment, err := domain.ParseEnvironment(env)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByPartyEnv(ctx, partyID, environment)
}

func (s *ProviderAccountService) FindActiveForParty(ctx context.Context, partyID int64, provider, env string) (*domain.ProviderAccount, error) {
	environment, err := domain.ParseEnvironment(env)
	if err != nil {
		return nil, err
	}
	return s.repo.FindActiveForParty(ctx, partyID, provider, environment)
}

func (s *ProviderAccountService) CountByProviderEnv(ctx context.Context, provider, env string) (int64, error) {
	environment, err := domain.ParseEnvironment(env)
	if err != nil {
		return 0, err
	}
	return s.repo.CountByProviderEnv(ctx, provider, environment)
}

// UpsertByUnique 按 (provider, env, provider_account_id) 取已有账号，不存在时创建
func (s *ProviderAccountService) UpsertByUnique(ctx context.Context, req *ProviderAccountRequest) (*domain.ProviderAccount, error) {
	ctx, span := s.tracer.Start(ctx, "service.UpsertProviderAccount")
	defer span.End()

	existing, err := s.GetByUnique(ctx, req.Provider, req.Env, req.ProviderAccountID)
	if err == nil {
		changed := false
		if req.PublicKey != "" && req.PublicKey != existing.PublicKey {
			existing.PublicKey = req.PublicKey
			changed = true
		}
		if req.SecretJSONEnc != "" && req.SecretJSONEnc != existing.SecretJSONEnc {
			existing.SecretJSONEnc = req.SecretJSONEnc
			changed = true
		}
		if changed {
			if err := s.repo.Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.Create(ctx, req)
}

func (s *ProviderAccountService) setStatus(ctx context.Context, id int64, apply func(*domain.ProviderAccount)) (*domain.ProviderAccount, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(account)
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *ProviderAccountService) Enable(ctx context.Context, id int64) (*domain.ProviderAccount, error) {
	return s.setStatus(ctx, id, func(a *domain.ProviderAccount) { a.Enable() })
}

func (s *ProviderAccountService) Disable(ctx context.Context, id int64) (*domain.ProviderAccount, error) {
	return s.setStatus(ctx, id, func(a *domain.ProviderAccount) { a.Disable() })
}

func (s *ProviderAccountService) RotateSecrets(ctx context.Context, id int64, req *RotateSecretsRequest) (*domain.ProviderAccount, error) {
	ctx, span := s.tracer.Start(ctx, "service.RotateProviderSecrets")
	defer span.End()

	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := account.RotateSecrets(req.PublicKey, req.SecretJSONEnc); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *ProviderAccountService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ProviderCustomerService 管理付款方在渠道侧的镜像
type ProviderCustomerService struct {
	repo   domain.ProviderCustomerRepository
	tracer trace.Tracer
}

func NewProviderCustomerService(repo domain.ProviderCustomerRepository, tracer trace.Tracer) *ProviderCustomerService {
	return &ProviderCustomerService{repo: repo, tracer: tracer}
}

func (s *ProviderCustomerService) Create(ctx context.Context, req *ProviderCustomerRequest) (*domain.ProviderCustomer, error) {
	ctx, span := s.tracer.Start(ctx, "service.CreateProviderCustomer")
	defer span.End()

	customer, err := domain.NewProviderCustomer(req.PartyID, req.Provider, req.Env, req.ProviderCustomerID, req.Email)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *ProviderCustomerService) Get(ctx context.Context, id int64) (*domain.ProviderCustomer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProviderCustomerService) GetByPartyProviderEnv(ctx context.Context, partyID int64, provider, env string) (*domain.ProviderCustomer, error) {
	environment, err := domain.ParseEnvironment(env)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByPartyProviderEnv(ctx, partyID, provider, environment)
}

func (s *ProviderCustomerService) GetByProviderExternalID(ctx context.Context, provider, env, providerCustomerID string) (*domain.ProviderCustomer, error) {
	environment, err := domain.ParseEnvironment(env)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByProviderExternalID(ctx, provider, environment, providerCustomerID)
}

func (s *ProviderCustomerService) ListByParty(ctx context.Context, partyID int64) ([]*domain.ProviderCustomer, error) {
	return s.repo.ListByParty(ctx, partyID)
}

// UpsertByParty 按 (party_id, provider, env) 取已有行，不存在时创建
func (s *ProviderCustomerService) UpsertByParty(ctx context.Context, req *ProviderCustomerRequest) (*domain.ProviderCustomer, error) {
	ctx, span := s.tracer.Start(ctx, "service.UpsertProviderCustomer")
	defer span.End()

	existing, err := s.GetByPartyProviderEnv(ctx, req.PartyID, req.Provider, req.Env)
	if err == nil {
		changed := false
		if req.ProviderCustomerID != "" && req.ProviderCustomerID != existing.ProviderCustomerID {
			existing.ProviderCustomerID = req.ProviderCustomerID
			changed = true
		}
		if req.Email != "" && req.Email != existing.Email {
			existing.Email = req.Email
			changed = true
		}
		if changed {
			if err := s.repo.Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.Create(ctx, req)
}

func (s *ProviderCustomerService) SetStatus(ctx context.Context, id int64, status string) (*domain.ProviderCustomer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := customer.SetStatus(status); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *ProviderCustomerService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
