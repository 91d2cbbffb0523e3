// internal/service/coupon/infrastructure/client_repository.go
package infrastructure

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// GormClientCouponRepository 是 ClientCouponRepository 的 GORM 实现
type GormClientCouponRepository struct {
	db *gorm.DB
}

func NewGormClientCouponRepository(db *gorm.DB) *GormClientCouponRepository {
	return &GormClientCouponRepository{db: db}
}

func (r *GormClientCouponRepository) Create(ctx context.Context, c *domain.ClientCoupon) error {
	model := FromDomainClientCoupon(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateGormError(err, "client coupon")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	return nil
}

func (r *GormClientCouponRepository) FindByID(ctx context.Context, id int64) (*domain.ClientCoupon, error) {
	var model ClientCouponModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translateGormError(err, "client coupon")
	}
	return ToDomainClientCoupon(&model), nil
}

func (r *GormClientCouponRepository) FindByCode(ctx context.Context, code string) (*domain.ClientCoupon, error) {
	var model ClientCouponModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error; err != nil {
		return nil, translateGormError(err, "client coupon")
	}
	return ToDomainClientCoupon(&model), nil
}

func (r *GormClientCouponRepository) ListByClient(ctx context.Context, clientID int64) ([]*domain.ClientCoupon, error) {
	var models []ClientCouponModel
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("id asc").Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainClientCoupons(models), nil
}

// ListActiveForClient 返回某客户当前可用的券：
// 状态 ACTIVE 且给定时间落在有效窗口内（窗口侧为 NULL 表示不受限）
func (r *GormClientCouponRepository) ListActiveForClient(ctx context.Context, clientID int64, now time.Time) ([]*domain.ClientCoupon, error) {
	var models []ClientCouponModel
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND status = ?", clientID, string(domain.ClientCouponActive)).
		Where("(valid_from IS NULL OR valid_from <= ?)", now).
		Where("(valid_to IS NULL OR valid_to >= ?)", now).
		Order("id asc").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainClientCoupons(models), nil
}

func (r *GormClientCouponRepository) Update(ctx context.Context, c *domain.ClientCoupon) error {
	res := r.db.WithContext(ctx).Model(&ClientCouponModel{}).Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"status":     string(c.Status),
			"valid_from": c.ValidFrom,
			"valid_to":   c.ValidTo,
			"used_at":    c.UsedAt,
		})
	if res.Error != nil {
		return translateGormError(res.Error, "client coupon")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "client coupon")
	}
	return nil
}

func (r *GormClientCouponRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&ClientCouponModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "client coupon")
	}
	return nil
}

func toDomainClientCoupons(models []ClientCouponModel) []*domain.ClientCoupon {
	out := make([]*domain.ClientCoupon, 0, len(models))
	for i := range models {
		out = append(out, ToDomainClientCoupon(&models[i]))
	}
	return out
}
