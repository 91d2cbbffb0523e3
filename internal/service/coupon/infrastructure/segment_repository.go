// internal/service/coupon/infrastructure/segment_repository.go
package infrastructure

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// GormSegmentRepository 是 SegmentRepository 的 GORM 实现
type GormSegmentRepository struct {
	db *gorm.DB
}

func NewGormSegmentRepository(db *gorm.DB) *GormSegmentRepository {
	return &GormSegmentRepository{db: db}
}

func (r *GormSegmentRepository) Create(ctx context.Context, s *domain.Segment) error {
	model := FromDomainSegment(s)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateGormError(err, "segment")
	}
	s.ID = model.ID
	return nil
}

func (r *GormSegmentRepository) FindByID(ctx context.Context, id int64) (*domain.Segment, error) {
	var model SegmentModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translateGormError(err, "segment")
	}
	return ToDomainSegment(&model), nil
}

func (r *GormSegmentRepository) FindAll(ctx context.Context) ([]*domain.Segment, error) {
	var models []SegmentModel
	if err := r.db.WithContext(ctx).Order("id asc").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Segment, 0, len(models))
	for i := range models {
		out = append(out, ToDomainSegment(&models[i]))
	}
	return out, nil
}

func (r *GormSegmentRepository) Update(ctx context.Context, s *domain.Segment) error {
	model := FromDomainSegment(s)
	res := r.db.WithContext(ctx).Model(&SegmentModel{}).Where("id = ?", s.ID).
		Select("*").Omit("id").Updates(model)
	if res.Error != nil {
		return translateGormError(res.Error, "segment")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "segment")
	}
	return nil
}

func (r *GormSegmentRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&SegmentModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "segment")
	}
	return nil
}

// GormSegmentPriceRepository 是 SegmentPriceRepository 的 GORM 实现
type GormSegmentPriceRepository struct {
	db *gorm.DB
}

func NewGormSegmentPriceRepository(db *gorm.DB) *GormSegmentPriceRepository {
	return &GormSegmentPriceRepository{db: db}
}

func (r *GormSegmentPriceRepository) Get(ctx context.Context, couponID, segmentID int64) (*domain.SegmentPriceOverride, error) {
	var model SegmentPriceModel
	err := r.db.WithContext(ctx).
		Where("coupon_id = ? AND segment_id = ?", couponID, segmentID).
		First(&model).Error
	if err != nil {
		return nil, translateGormError(err, "segment price")
	}
	return ToDomainSegmentPrice(&model), nil
}

// ListByCoupon 按 priority 升序返回，1 为最高优先级
func (r *GormSegmentPriceRepository) ListByCoupon(ctx context.Context, couponID int64) ([]*domain.SegmentPriceOverride, error) {
	var models []SegmentPriceModel
	err := r.db.WithContext(ctx).
		Where("coupon_id = ?", couponID).
		Order("priority asc").Order("segment_id asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainSegmentPrices(models), nil
}

func (r *GormSegmentPriceRepository) ListBySegment(ctx context.Context, segmentID int64) ([]*domain.SegmentPriceOverride, error) {
	var models []SegmentPriceModel
	err := r.db.WithContext(ctx).
		Where("segment_id = ?", segmentID).
		Order("coupon_id asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainSegmentPrices(models), nil
}

func (r *GormSegmentPriceRepository) Create(ctx context.Context, o *domain.SegmentPriceOverride) error {
	if err := r.db.WithContext(ctx).Create(FromDomainSegmentPrice(o)).Error; err != nil {
		return translateGormError(err, "segment price")
	}
	return nil
}

// Upsert 按复合主键 (coupon_id, segment_id) 插入或覆盖
func (r *GormSegmentPriceRepository) Upsert(ctx context.Context, o *domain.SegmentPriceOverride) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "coupon_id"}, {Name: "segment_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"discount_type_id", "value", "priority"}),
	}).Create(FromDomainSegmentPrice(o)).Error
}

func (r *GormSegmentPriceRepository) Update(ctx context.Context, o *domain.SegmentPriceOverride) error {
	res := r.db.WithContext(ctx).Model(&SegmentPriceModel{}).
		Where("coupon_id = ? AND segment_id = ?", o.CouponID, o.SegmentID).
		Updates(map[string]interface{}{
			"discount_type_id": o.DiscountTypeID,
			"value":            o.Value,
			"priority":         o.Priority,
		})
	if res.Error != nil {
		return translateGormError(res.Error, "segment price")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "segment price")
	}
	return nil
}

func (r *GormSegmentPriceRepository) Delete(ctx context.Context, couponID, segmentID int64) error {
	res := r.db.WithContext(ctx).
		Where("coupon_id = ? AND segment_id = ?", couponID, segmentID).
		Delete(&SegmentPriceModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "segment price")
	}
	return nil
}

func (r *GormSegmentPriceRepository) DeleteAllForCoupon(ctx context.Context, couponID int64) (int, error) {
	res := r.db.WithContext(ctx).Where("coupon_id = ?", couponID).Delete(&SegmentPriceModel{})
	return int(res.RowsAffected), res.Error
}

func (r *GormSegmentPriceRepository) CountForCoupon(ctx context.Context, couponID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&SegmentPriceModel{}).
		Where("coupon_id = ?", couponID).Count(&count).Error
	return count, err
}

func toDomainSegmentPrices(models []SegmentPriceModel) []*domain.SegmentPriceOverride {
	out := make([]*domain.SegmentPriceOverride, 0, len(models))
	for i := range models {
		out = append(out, ToDomainSegmentPrice(&models[i]))
	}
	return out
}
