// internal/service/payment/infrastructure/checkout_repository.go
package infrastructure

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Kabudence/coupon-microservice/internal/service/payment/domain"
)

type GormCheckoutSessionRepository struct {
	db *gorm.DB
}

func NewGormCheckoutSessionRepository(db *gorm.DB) *GormCheckoutSessionRepository {
	return &GormCheckoutSessionRepository{db: db}
}

func (r *GormCheckoutSessionRepository) Create(ctx context.Context, session *domain.CheckoutSession) error {
	model := FromDomainCheckoutSession(session)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateGormError(err, "checkout session")
	}
	session.ID = model.ID
	return nil
}

func (r *GormCheckoutSessionRepository) FindByID(ctx context.Context, id int64) (*domain.CheckoutSession, error) {
	var model CheckoutSessionModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translateGormError(err, "checkout session")
	}
	return ToDomainCheckoutSession(&model), nil
}

func (r *GormCheckoutSessionRepository) FindByProviderSessionID(ctx context.Context, providerSessionID string) (*domain.CheckoutSession, error) {
	var model CheckoutSessionModel
	err := r.db.WithContext(ctx).
		Where("provider_session_id = ?", providerSessionID).
		First(&model).Error
	if err != nil {
		return nil, translateGormError(err, "checkout session")
	}
	return ToDomainCheckoutSession(&model), nil
}

func (r *GormCheckoutSessionRepository) ListByOrder(ctx context.Context, orderID int64, onlyActive bool) ([]*domain.CheckoutSession, error) {
	query := r.db.WithContext(ctx).Where("order_id = ?", orderID)
	if onlyActive {
		now := time.Now().UTC()
		query = query.Where("expired_at IS NULL AND (expires_at IS NULL OR expires_at > ?)", now)
	}
	var models []CheckoutSessionModel
	if err := query.Order("id desc").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.CheckoutSession, 0, len(models))
	for i := range models {
		out = append(out, ToDomainCheckoutSession(&models[i]))
	}
	return out, nil
}

func (r *GormCheckoutSessionRepository) ExpireAllForOrder(ctx context.Context, orderID int64, at time.Time) (int, error) {
	result := r.db.WithContext(ctx).Model(&CheckoutSessionModel{}).
		Where("order_id = ? AND expired_at IS NULL", orderID).
		Update("expired_at", at)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func (r *GormCheckoutSessionRepository) Update(ctx context.Context, session *domain.CheckoutSession) error {
	model := FromDomainCheckoutSession(session)
	result := r.db.WithContext(ctx).Model(&CheckoutSessionModel{}).Where("id = ?", session.ID).
		Select("init_url", "sandbox_url", "expires_at", "expired_at").
		Updates(model)
	if result.Error != nil {
		return translateGormError(result.Error, "checkout session")
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "checkout session")
	}
	return nil
}

func (r *GormCheckoutSessionRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&CheckoutSessionModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "checkout session")
	}
	return nil
}
