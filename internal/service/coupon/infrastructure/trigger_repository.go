// internal/service/coupon/infrastructure/trigger_repository.go
package infrastructure

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// GormTriggerMappingRepository 是 TriggerMappingRepository 的 GORM 实现
type GormTriggerMappingRepository struct {
	db *gorm.DB
}

func NewGormTriggerMappingRepository(db *gorm.DB) *GormTriggerMappingRepository {
	return &GormTriggerMappingRepository{db: db}
}

func (r *GormTriggerMappingRepository) Add(ctx context.Context, m *domain.TriggerMapping) error {
	model := FromDomainTriggerMapping(m)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateGormError(err, "trigger mapping")
	}
	m.ID = model.ID
	return nil
}

// BulkAdd 最大努力批量插入：一个事务内逐条插入，
// (trigger_product_id, coupon_id) 冲突的行跳过而不中断整批。
func (r *GormTriggerMappingRepository) BulkAdd(ctx context.Context, ms []*domain.TriggerMapping) (int, error) {
	inserted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range ms {
			model := FromDomainTriggerMapping(m)
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(model)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				m.ID = model.ID
				inserted++
			}
		}
		return nil
	})
	return inserted, err
}

func (r *GormTriggerMappingRepository) FindByID(ctx context.Context, id int64) (*domain.TriggerMapping, error) {
	var model TriggerMappingModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translateGormError(err, "trigger mapping")
	}
	return ToDomainTriggerMapping(&model), nil
}

func (r *GormTriggerMappingRepository) ListTriggersByCoupon(ctx context.Context, couponID int64) ([]*domain.TriggerMapping, error) {
	var models []TriggerMappingModel
	if err := r.db.WithContext(ctx).Where("coupon_id = ?", couponID).Order("id asc").Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainTriggerMappings(models), nil
}

func (r *GormTriggerMappingRepository) ListCouponsByTrigger(ctx context.Context, triggerProductID int64) ([]*domain.TriggerMapping, error) {
	var models []TriggerMappingModel
	if err := r.db.WithContext(ctx).Where("trigger_product_id = ?", triggerProductID).Order("id asc").Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainTriggerMappings(models), nil
}

func (r *GormTriggerMappingRepository) Remove(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&TriggerMappingModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "trigger mapping")
	}
	return nil
}

func (r *GormTriggerMappingRepository) RemoveAllForCoupon(ctx context.Context, couponID int64) (int, error) {
	res := r.db.WithContext(ctx).Where("coupon_id = ?", couponID).Delete(&TriggerMappingModel{})
	return int(res.RowsAffected), res.Error
}

func toDomainTriggerMappings(models []TriggerMappingModel) []*domain.TriggerMapping {
	out := make([]*domain.TriggerMapping, 0, len(models))
	for i := range models {
		out = append(out, ToDomainTriggerMapping(&models[i]))
	}
	return out
}
