// internal/service/payment/infrastructure/webhook_repository.go
package infrastructure

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Kabudence/coupon-microservice/internal/service/payment/domain"
)

type GormWebhookEventRepository struct {
	db *gorm.DB
}

func NewGormWebhookEventRepository(db *gorm.DB) *GormWebhookEventRepository {
	return &GormWebhookEventRepository{db: db}
}

// EnsureReceived 用 INSERT ... ON CONFLICT DO NOTHING 加回读实现原子的
// insert-or-fetch，两个并发的同键投递不会产生两行。
func (r *GormWebhookEventRepository) EnsureReceived(ctx context.Context, event *domain.WebhookEvent) (*domain.WebhookEvent, bool, error) {
	model, err := FromDomainWebhookEvent(event)
	if err != nil {
		return nil, false, errors.Wrap(err, "marshal webhook headers")
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model)
	if result.Error != nil {
		return nil, false, translateGormError(result.Error, "webhook event")
	}
	inserted := result.RowsAffected > 0
	if inserted {
		event.ID = model.ID
		return event, true, nil
	}
	existing, err := r.FindByDelivery(ctx, event.Provider, event.Env, event.DeliveryKey)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *GormWebhookEventRepository) Create(ctx context.Context, event *domain.WebhookEvent) error {
	model, err := FromDomainWebhookEvent(event)
	if err != nil {
		return errors.Wrap(err, "marshal webhook headers")
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateGormError(err, "webhook event")
	}
	event.ID = model.ID
	return nil
}

func (r *GormWebhookEventRepository) FindByID(ctx context.Context, id int64) (*domain.WebhookEvent, error) {
	var model WebhookEventModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translateGormError(err, "webhook event")
	}
	return ToDomainWebhookEvent(&model), nil
}

func (r *GormWebhookEventRepository) FindByDelivery(ctx context.Context, provider string, env domain.Environment, deliveryKey string) (*domain.WebhookEvent, error) {
	var model WebhookEventModel
	err := r.db.WithContext(ctx).
		Where("provider = ? AND env = ? AND delivery_key = ?", provider, env, deliveryKey).
		First(&model).Error
	if err != nil {
		return nil, translateGormError(err, "webhook event")
	}
	return ToDomainWebhookEvent(&model), nil
}

func (r *GormWebhookEventRepository) ListByResource(ctx context.Context, provider string, env domain.Environment, resourceID string) ([]*domain.WebhookEvent, error) {
	var models []WebhookEventModel
	err := r.db.WithContext(ctx).
		Where("provider = ? AND env = ? AND resource_id = ?", provider, env, resourceID).
		Order("received_at asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainWebhookEvents(models), nil
}

// clampUnprocessedLimit 把越界的分页大小折回默认批量
func clampUnprocessedLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 100
	}
	return limit
}

// ListUnprocessed 返回未处理的回调，按接收时间从旧到新，供 worker 排空
func (r *GormWebhookEventRepository) ListUnprocessed(ctx context.Context, provider string, env domain.Environment, limit, offset int) ([]*domain.WebhookEvent, error) {
	limit = clampUnprocessedLimit(limit)
	query := r.db.WithContext(ctx).Where("processed_at IS NULL")
	if provider != "" {
		query = query.Where("provider = ?", provider)
	}
	if env != "" {
		query = query.Where("env = ?", env)
	}
	var models []WebhookEventModel
	err := query.Order("received_at asc").Limit(limit).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainWebhookEvents(models), nil
}

func (r *GormWebhookEventRepository) CountUnprocessed(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&WebhookEventModel{}).
		Where("processed_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *GormWebhookEventRepository) SetHTTPStatus(ctx context.Context, id int64, code int) error {
	result := r.db.WithContext(ctx).Model(&WebhookEventModel{}).
		Where("id = ?", id).
		Update("http_status_sent", code)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "webhook event")
	}
	return nil
}

// SetSignatureValid 重复写入相同结论时 MySQL 不计入受影响行数，
// 所以先确认行存在再更新，而不是看 RowsAffected。
func (r *GormWebhookEventRepository) SetSignatureValid(ctx context.Context, id int64, valid bool) error {
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&WebhookEventModel{}).
		Where("id = ?", id).
		Update("signature_valid", valid).Error
}

// MarkProcessed 只对 processed_at 为空的行生效，重复标记不覆盖首个时间戳
func (r *GormWebhookEventRepository) MarkProcessed(ctx context.Context, id int64, at time.Time) (*domain.WebhookEvent, error) {
	result := r.db.WithContext(ctx).Model(&WebhookEventModel{}).
		Where("id = ? AND processed_at IS NULL", id).
		Update("processed_at", at)
	if result.Error != nil {
		return nil, result.Error
	}
	return r.FindByID(ctx, id)
}

func (r *GormWebhookEventRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&WebhookEventModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "webhook event")
	}
	return nil
}

func toDomainWebhookEvents(models []WebhookEventModel) []*domain.WebhookEvent {
	out := make([]*domain.WebhookEvent, 0, len(models))
	for i := range models {
		out = append(out, ToDomainWebhookEvent(&models[i]))
	}
	return out
}
