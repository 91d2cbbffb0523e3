// internal/service/coupon/infrastructure/coupon_repository.go
package infrastructure

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// GormCouponRepository 是 CouponRepository 的 GORM 实现
type GormCouponRepository struct {
	db *gorm.DB
}

func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

func (r *GormCouponRepository) Create(ctx context.Context, c *domain.Coupon) error {
	model := FromDomainCoupon(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateGormError(err, "coupon")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	return nil
}

func (r *GormCouponRepository) FindByID(ctx context.Context, id int64) (*domain.Coupon, error) {
	var model CouponModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translateGormError(err, "coupon")
	}
	return ToDomainCoupon(&model), nil
}

func (r *GormCouponRepository) FindByName(ctx context.Context, name string) (*domain.Coupon, error) {
	var model CouponModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		return nil, translateGormError(err, "coupon")
	}
	return ToDomainCoupon(&model), nil
}

func (r *GormCouponRepository) FindByBusiness(ctx context.Context, businessID int64) ([]*domain.Coupon, error) {
	var models []CouponModel
	if err := r.db.WithContext(ctx).Where("business_id = ?", businessID).Order("id asc").Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainCoupons(models), nil
}

// FindActiveInWindow 返回在给定时间点处于有效窗口内的 ACTIVE 优惠券
func (r *GormCouponRepository) FindActiveInWindow(ctx context.Context, at time.Time) ([]*domain.Coupon, error) {
	var models []CouponModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND start_date <= ? AND end_date >= ?", string(domain.CouponStatusActive), at, at).
		Order("id asc").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainCoupons(models), nil
}

func (r *GormCouponRepository) Update(ctx context.Context, c *domain.Coupon) error {
	model := FromDomainCoupon(c)
	res := r.db.WithContext(ctx).Model(&CouponModel{}).Where("id = ?", c.ID).
		Select("*").Omit("id", "created_at").Updates(model)
	if res.Error != nil {
		return translateGormError(res.Error, "coupon")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "coupon")
	}
	return nil
}

func (r *GormCouponRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&CouponModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "coupon")
	}
	return nil
}

func toDomainCoupons(models []CouponModel) []*domain.Coupon {
	out := make([]*domain.Coupon, 0, len(models))
	for i := range models {
		out = append(out, ToDomainCoupon(&models[i]))
	}
	return out
}

// GormCouponProductRepository 是 CouponProductRepository 的 GORM 实现
type GormCouponProductRepository struct {
	db *gorm.DB
}

func NewGormCouponProductRepository(db *gorm.DB) *GormCouponProductRepository {
	return &GormCouponProductRepository{db: db}
}

func (r *GormCouponProductRepository) Add(ctx context.Context, cp *domain.CouponProduct) error {
	model := FromDomainCouponProduct(cp)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateGormError(err, "coupon product")
	}
	cp.ID = model.ID
	return nil
}

// BulkAdd 在一个事务内逐条插入，重复键通过 ON CONFLICT DO NOTHING 跳过。
// 返回实际插入的条数。
func (r *GormCouponProductRepository) BulkAdd(ctx context.Context, cps []*domain.CouponProduct) (int, error) {
	inserted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, cp := range cps {
			model := FromDomainCouponProduct(cp)
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(model)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				cp.ID = model.ID
				inserted++
			}
		}
		return nil
	})
	return inserted, err
}

func (r *GormCouponProductRepository) FindByID(ctx context.Context, id int64) (*domain.CouponProduct, error) {
	var model CouponProductModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translateGormError(err, "coupon product")
	}
	return ToDomainCouponProduct(&model), nil
}

func (r *GormCouponProductRepository) ListProductsByCoupon(ctx context.Context, couponID int64) ([]*domain.CouponProduct, error) {
	var models []CouponProductModel
	if err := r.db.WithContext(ctx).Where("coupon_id = ?", couponID).Order("id asc").Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainCouponProducts(models), nil
}

func (r *GormCouponProductRepository) ListCouponsByProduct(ctx context.Context, productID int64) ([]*domain.CouponProduct, error) {
	var models []CouponProductModel
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("id asc").Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainCouponProducts(models), nil
}

func (r *GormCouponProductRepository) Update(ctx context.Context, cp *domain.CouponProduct) error {
	res := r.db.WithContext(ctx).Model(&CouponProductModel{}).Where("id = ?", cp.ID).
		Updates(map[string]interface{}{
			"code":         cp.Code,
			"product_type": string(cp.ProductType),
			"stock":        cp.Stock,
			"status":       string(cp.Status),
		})
	if res.Error != nil {
		return translateGormError(res.Error, "coupon product")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "coupon product")
	}
	return nil
}

func (r *GormCouponProductRepository) Remove(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&CouponProductModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "coupon product")
	}
	return nil
}

func (r *GormCouponProductRepository) RemoveByCombo(ctx context.Context, couponID, productID int64) error {
	res := r.db.WithContext(ctx).
		Where("coupon_id = ? AND product_id = ?", couponID, productID).
		Delete(&CouponProductModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "coupon product")
	}
	return nil
}

func (r *GormCouponProductRepository) RemoveAllForCoupon(ctx context.Context, couponID int64) (int, error) {
	res := r.db.WithContext(ctx).Where("coupon_id = ?", couponID).Delete(&CouponProductModel{})
	return int(res.RowsAffected), res.Error
}

func toDomainCouponProducts(models []CouponProductModel) []*domain.CouponProduct {
	out := make([]*domain.CouponProduct, 0, len(models))
	for i := range models {
		out = append(out, ToDomainCouponProduct(&models[i]))
	}
	return out
}
