// internal/service/payment/infrastructure/source_repository.go
package infrastructure

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Kabudence/coupon-microservice/internal/service/payment/domain"
)

type GormPaymentSourceRepository struct {
	db *gorm.DB
}

func NewGormPaymentSourceRepository(db *gorm.DB) *GormPaymentSourceRepository {
	return &GormPaymentSourceRepository{db: db}
}

func (r *GormPaymentSourceRepository) Create(ctx context.Context, source *domain.PaymentSource) error {
	model := FromDomainPaymentSource(source)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateGormError(err, "payment source")
	}
	source.ID = model.ID
	return nil
}

func (r *GormPaymentSourceRepository) FindByID(ctx context.Context, id int64) (*domain.PaymentSource, error) {
	var model PaymentSourceModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translateGormError(err, "payment source")
	}
	return ToDomainPaymentSource(&model), nil
}

func (r *GormPaymentSourceRepository) ListByCustomer(ctx context.Context, customerPK int64) ([]*domain.PaymentSource, error) {
	return r.list(ctx, r.db.Where("provider_customer_pk = ?", customerPK))
}

func (r *GormPaymentSourceRepository) ListActiveCards(ctx context.Context, customerPK int64) ([]*domain.PaymentSource, error) {
	return r.list(ctx, r.db.Where(
		"provider_customer_pk = ? AND source_type = ? AND status = ?",
		customerPK, domain.SourceCard, domain.SourceActive))
}

func (r *GormPaymentSourceRepository) list(ctx context.Context, query *gorm.DB) ([]*domain.PaymentSource, error) {
	var models []PaymentSourceModel
	if err := query.WithContext(ctx).Order("id asc").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.PaymentSource, 0, len(models))
	for i := range models {
		out = append(out, ToDomainPaymentSource(&models[i]))
	}
	return out, nil
}

func (r *GormPaymentSourceRepository) FindWallet(ctx context.Context, customerPK int64) (*domain.PaymentSource, error) {
	var model PaymentSourceModel
	err := r.db.WithContext(ctx).
		Where("provider_customer_pk = ? AND source_type = ?", customerPK, domain.SourceWallet).
		First(&model).Error
	if err != nil {
		return nil, translateGormError(err, "wallet source")
	}
	return ToDomainPaymentSource(&model), nil
}

func (r *GormPaymentSourceRepository) FindCardByProviderSourceID(ctx context.Context, customerPK int64, providerSourceID string) (*domain.PaymentSource, error) {
	var model PaymentSourceModel
	err := r.db.WithContext(ctx).
		Where("provider_customer_pk = ? AND source_type = ? AND provider_source_id = ?",
			customerPK, domain.SourceCard, providerSourceID).
		First(&model).Error
	if err != nil {
		return nil, translateGormError(err, "card source")
	}
	return ToDomainPaymentSource(&model), nil
}

func (r *GormPaymentSourceRepository) Update(ctx context.Context, source *domain.PaymentSource) error {
	model := FromDomainPaymentSource(source)
	result := r.db.WithContext(ctx).Model(&PaymentSourceModel{}).Where("id = ?", source.ID).
		Select("source_type", "provider_source_id", "brand", "last_four", "exp_month", "exp_year", "status").
		Updates(model)
	if result.Error != nil {
		return translateGormError(result.Error, "payment source")
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "payment source")
	}
	return nil
}

func (r *GormPaymentSourceRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&PaymentSourceModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "payment source")
	}
	return nil
}
