// internal/service/payment/infrastructure/provider_repository.go
package infrastructure

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Kabudence/coupon-microservice/internal/service/payment/domain"
)

type GormProviderAccountRepository struct {
	db *gorm.DB
}

func NewGormProviderAccountRepository(db *gorm.DB) *GormProviderAccountRepository {
	return &GormProviderAccountRepository{db: db}
}

func (r *GormProviderAccountRepository) Create(ctx context.Context, account *domain.ProviderAccount) error {
	model := FromDomainProviderAccount(account)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateGormError(err, "provider account")
	}
	account.ID = model.ID
	return nil
}

func (r *GormProviderAccountRepository) FindByID(ctx context.Context, id int64) (*domain.ProviderAccount, error) {
	var model ProviderAccountModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translateGormError(err, "provider account")
	}
	return ToDomainProviderAccount(&model), nil
}

func (r *GormProviderAccountRepository) FindByUnique(ctx context.Context, provider string, env domain.Environment, providerAccountID string) (*domain.ProviderAccount, error) {
	var model ProviderAccountModel
	err := r.db.WithContext(ctx).
		Where("provider = ? AND env = ? AND provider_account_id = ?", provider, env, providerAccountID).
		First(&model).Error
	if err != nil {
		return nil, translateGormError(err, "provider account")
	}
	return ToDomainProviderAccount(&model), nil
}

func (r *GormProviderAccountRepository) ListByParty(ctx context.Context, partyID int64) ([]*domain.ProviderAccount, error) {
	return r.list(ctx, r.db.Where("party_id = ?", partyID))
}

func (r *GormProviderAccountRepository) ListByPartyEnv(ctx context.Context, partyID int64, env domain.Environment) ([]*domain.ProviderAccount, error) {
	return r.list(ctx, r.db.Where("party_id = ? AND env = ?", partyID, env))
}

func (r *GormProviderAccountRepository) list(ctx context.Context, query *gorm.DB) ([]*domain.ProviderAccount, error) {
	var models []ProviderAccountModel
	if err := query.WithContext(ctx).Order("id asc").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.ProviderAccount, 0, len(models))
	for i := range models {
		out = append(out, ToDomainProviderAccount(&models[i]))
	}
	return out, nil
}

func (r *GormProviderAccountRepository) FindActiveForParty(ctx context.Context, partyID int64, provider string, env domain.Environment) (*domain.ProviderAccount, error) {
	var model ProviderAccountModel
	err := r.db.WithContext(ctx).
		Where("party_id = ? AND provider = ? AND env = ? AND status = ?", partyID, provider, env, domain.AccountActive).
		Order("id asc").
		First(&model).Error
	if err != nil {
		return nil, translateGormError(err, "active provider account")
	}
	return ToDomainProviderAccount(&model), nil
}

func (r *GormProviderAccountRepository) CountByProviderEnv(ctx context.Context, provider string, env domain.Environment) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ProviderAccountModel{}).
		Where("provider = ? AND env = ?", provider, env).
		Count(&count).Error
	return count, err
}

func (r *GormProviderAccountRepository) Update(ctx context.Context, account *domain.ProviderAccount) error {
	model := FromDomainProviderAccount(account)
	result := r.db.WithContext(ctx).Model(&ProviderAccountModel{}).Where("id = ?", account.ID).
		Select("party_id", "provider", "env", "provider_account_id", "public_key", "secret_json_enc", "status").
		Updates(model)
	if result.Error != nil {
		return translateGormError(result.Error, "provider account")
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "provider account")
	}
	return nil
}

func (r *GormProviderAccountRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&ProviderAccountModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "provider account")
	}
	return nil
}

type GormProviderCustomerRepository struct {
	db *gorm.DB
}

func NewGormProviderCustomerRepository(db *gorm.DB) *GormProviderCustomerRepository {
	return &GormProviderCustomerRepository{db: db}
}

func (r *GormProviderCustomerRepository) Create(ctx context.Context, customer *domain.ProviderCustomer) error {
	model := FromDomainProviderCustomer(customer)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateGormError(err, "provider customer")
	}
	customer.ID = model.ID
	return nil
}

func (r *GormProviderCustomerRepository) FindByID(ctx context.Context, id int64) (*domain.ProviderCustomer, error) {
	var model ProviderCustomerModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translateGormError(err, "provider customer")
	}
	return ToDomainProviderCustomer(&model), nil
}

func (r *GormProviderCustomerRepository) FindByPartyProviderEnv(ctx context.Context, partyID int64, provider string, env domain.Environment) (*domain.ProviderCustomer, error) {
	var model ProviderCustomerModel
	err := r.db.WithContext(ctx).
		Where("party_id = ? AND provider = ? AND env = ?", partyID, provider, env).
		First(&model).Error
	if err != nil {
		return nil, translateGormError(err, "provider customer")
	}
	return ToDomainProviderCustomer(&model), nil
}

func (r *GormProviderCustomerRepository) FindByProviderExternalID(ctx context.Context, provider string, env domain.Environment, providerCustomerID string) (*domain.ProviderCustomer, error) {
	var model ProviderCustomerModel
	err := r.db.WithContext(ctx).
		Where("provider = ? AND env = ? AND provider_customer_id = ?", provider, env, providerCustomerID).
		First(&model).Error
	if err != nil {
		return nil, translateGormError(err, "provider customer")
	}
	return ToDomainProviderCustomer(&model), nil
}

func (r *GormProviderCustomerRepository) ListByParty(ctx context.Context, partyID int64) ([]*domain.ProviderCustomer, error) {
	var models []ProviderCustomerModel
	err := r.db.WithContext(ctx).Where("party_id = ?", partyID).Order("id asc").Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.ProviderCustomer, 0, len(models))
	for i := range models {
		out = append(out, ToDomainProviderCustomer(&models[i]))
	}
	return out, nil
}

func (r *GormProviderCustomerRepository) Update(ctx context.Context, customer *domain.ProviderCustomer) error {
	model := FromDomainProviderCustomer(customer)
	result := r.db.WithContext(ctx).Model(&ProviderCustomerModel{}).Where("id = ?", customer.ID).
		Select("party_id", "provider", "env", "provider_customer_id", "email", "status").
		Updates(model)
	if result.Error != nil {
		return translateGormError(result.Error, "provider customer")
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "provider customer")
	}
	return nil
}

func (r *GormProviderCustomerRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&ProviderCustomerModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "provider customer")
	}
	return nil
}
