// internal/service/payment/infrastructure/order_repository.go
package infrastructure

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Kabudence/coupon-microservice/internal/service/payment/domain"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	model, err := FromDomainOrder(order)
	if err != nil {
		return errors.Wrap(err, "marshal order metadata")
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateGormError(err, "order")
	}
	order.ID = model.ID
	return nil
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	var model OrderModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translateGormError(err, "order")
	}
	return ToDomainOrder(&model), nil
}

func (r *GormOrderRepository) FindByProviderPayment(ctx context.Context, provider string, env domain.Environment, providerPaymentID string) (*domain.Order, error) {
	var model OrderModel
	err := r.db.WithContext(ctx).
		Where("provider = ? AND env = ? AND provider_payment_id = ?", provider, env, providerPaymentID).
		First(&model).Error
	if err != nil {
		return nil, translateGormError(err, "order")
	}
	return ToDomainOrder(&model), nil
}

func (r *GormOrderRepository) FindByIdempotencyKey(ctx context.Context, provider string, env domain.Environment, key string) (*domain.Order, error) {
	var model OrderModel
	err := r.db.WithContext(ctx).
		Where("provider = ? AND env = ? AND idempotency_key = ?", provider, env, key).
		First(&model).Error
	if err != nil {
		return nil, translateGormError(err, "order")
	}
	return ToDomainOrder(&model), nil
}

func (r *GormOrderRepository) ListByBuyer(ctx context.Context, buyerPartyID int64) ([]*domain.Order, error) {
	return r.list(ctx, r.db.Where("buyer_party_id = ?", buyerPartyID))
}

func (r *GormOrderRepository) ListBySeller(ctx context.Context, sellerPartyID int64) ([]*domain.Order, error) {
	return r.list(ctx, r.db.Where("seller_party_id = ?", sellerPartyID))
}

func (r *GormOrderRepository) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	return r.list(ctx, r.db.Where("status = ?", status))
}

func (r *GormOrderRepository) list(ctx context.Context, query *gorm.DB) ([]*domain.Order, error) {
	var models []OrderModel
	if err := query.WithContext(ctx).Order("id desc").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Order, 0, len(models))
	for i := range models {
		out = append(out, ToDomainOrder(&models[i]))
	}
	return out, nil
}

func (r *GormOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	model, err := FromDomainOrder(order)
	if err != nil {
		return errors.Wrap(err, "marshal order metadata")
	}
	result := r.db.WithContext(ctx).Model(&OrderModel{}).Where("id = ?", order.ID).
		Select("status", "provider_account_id", "provider_payment_id", "idempotency_key",
			"payment_type", "method_brand", "method_last_four", "metadata", "paid_at").
		Updates(model)
	if result.Error != nil {
		return translateGormError(result.Error, "order")
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "order")
	}
	return nil
}
