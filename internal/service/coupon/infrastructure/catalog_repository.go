// internal/service/coupon/infrastructure/catalog_repository.go
package infrastructure

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// translateGormError 把 GORM 的错误映射到领域哨兵错误
func translateGormError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Wrap(domain.ErrNotFound, what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Wrap(domain.ErrDuplicate, what)
	default:
		return err
	}
}

// GormDiscountTypeRepository 是 DiscountTypeRepository 的 GORM 实现
type GormDiscountTypeRepository struct {
	db *gorm.DB
}

func NewGormDiscountTypeRepository(db *gorm.DB) *GormDiscountTypeRepository {
	return &GormDiscountTypeRepository{db: db}
}

func (r *GormDiscountTypeRepository) Create(ctx context.Context, dt *domain.DiscountType) error {
	model := FromDomainDiscountType(dt)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateGormError(err, "discount type")
	}
	dt.ID = model.ID
	return nil
}

func (r *GormDiscountTypeRepository) FindByID(ctx context.Context, id int64) (*domain.DiscountType, error) {
	var model DiscountTypeModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translateGormError(err, "discount type")
	}
	return ToDomainDiscountType(&model), nil
}

func (r *GormDiscountTypeRepository) FindAll(ctx context.Context) ([]*domain.DiscountType, error) {
	var models []DiscountTypeModel
	if err := r.db.WithContext(ctx).Order("id asc").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.DiscountType, 0, len(models))
	for i := range models {
		out = append(out, ToDomainDiscountType(&models[i]))
	}
	return out, nil
}

func (r *GormDiscountTypeRepository) Update(ctx context.Context, dt *domain.DiscountType) error {
	res := r.db.WithContext(ctx).Model(&DiscountTypeModel{}).Where("id = ?", dt.ID).
		Update("name", dt.Name)
	if res.Error != nil {
		return translateGormError(res.Error, "discount type")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "discount type")
	}
	return nil
}

func (r *GormDiscountTypeRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&DiscountTypeModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "discount type")
	}
	return nil
}

// GormCouponTypeRepository 是 CouponTypeRepository 的 GORM 实现
type GormCouponTypeRepository struct {
	db *gorm.DB
}

func NewGormCouponTypeRepository(db *gorm.DB) *GormCouponTypeRepository {
	return &GormCouponTypeRepository{db: db}
}

func (r *GormCouponTypeRepository) Create(ctx context.Context, ct *domain.CouponType) error {
	model := FromDomainCouponType(ct)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateGormError(err, "coupon type")
	}
	ct.ID = model.ID
	return nil
}

func (r *GormCouponTypeRepository) FindByID(ctx context.Context, id int64) (*domain.CouponType, error) {
	var model CouponTypeModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translateGormError(err, "coupon type")
	}
	return ToDomainCouponType(&model), nil
}

func (r *GormCouponTypeRepository) FindAll(ctx context.Context) ([]*domain.CouponType, error) {
	var models []CouponTypeModel
	if err := r.db.WithContext(ctx).Order("id asc").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.CouponType, 0, len(models))
	for i := range models {
		out = append(out, ToDomainCouponType(&models[i]))
	}
	return out, nil
}

func (r *GormCouponTypeRepository) Update(ctx context.Context, ct *domain.CouponType) error {
	res := r.db.WithContext(ctx).Model(&CouponTypeModel{}).Where("id = ?", ct.ID).
		Updates(map[string]interface{}{"name": ct.Name, "description": ct.Description})
	if res.Error != nil {
		return translateGormError(res.Error, "coupon type")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "coupon type")
	}
	return nil
}

func (r *GormCouponTypeRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&CouponTypeModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "coupon type")
	}
	return nil
}

// GormCategoryRepository 是 CategoryRepository 的 GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	model := FromDomainCategory(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateGormError(err, "category")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	return nil
}

func (r *GormCategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	var model CategoryModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translateGormError(err, "category")
	}
	return ToDomainCategory(&model), nil
}

func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]*domain.Category, error) {
	var models []CategoryModel
	if err := r.db.WithContext(ctx).Order("id asc").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Category, 0, len(models))
	for i := range models {
		out = append(out, ToDomainCategory(&models[i]))
	}
	return out, nil
}

func (r *GormCategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	res := r.db.WithContext(ctx).Model(&CategoryModel{}).Where("id = ?", c.ID).
		Updates(map[string]interface{}{"name": c.Name, "description": c.Description})
	if res.Error != nil {
		return translateGormError(res.Error, "category")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "category")
	}
	return nil
}

func (r *GormCategoryRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&CategoryModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "category")
	}
	return nil
}

// GormEventRepository 是 EventRepository 的 GORM 实现
type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Create(ctx context.Context, e *domain.Event) error {
	model := FromDomainEvent(e)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateGormError(err, "event")
	}
	e.ID = model.ID
	e.CreatedAt = model.CreatedAt
	return nil
}

func (r *GormEventRepository) FindByID(ctx context.Context, id int64) (*domain.Event, error) {
	var model EventModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translateGormError(err, "event")
	}
	return ToDomainEvent(&model), nil
}

func (r *GormEventRepository) FindByName(ctx context.Context, name string) (*domain.Event, error) {
	var model EventModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		return nil, translateGormError(err, "event")
	}
	return ToDomainEvent(&model), nil
}

func (r *GormEventRepository) FindAll(ctx context.Context) ([]*domain.Event, error) {
	var models []EventModel
	if err := r.db.WithContext(ctx).Order("id asc").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Event, 0, len(models))
	for i := range models {
		out = append(out, ToDomainEvent(&models[i]))
	}
	return out, nil
}

func (r *GormEventRepository) Update(ctx context.Context, e *domain.Event) error {
	res := r.db.WithContext(ctx).Model(&EventModel{}).Where("id = ?", e.ID).
		Updates(map[string]interface{}{"name": e.Name, "description": e.Description})
	if res.Error != nil {
		return translateGormError(res.Error, "event")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "event")
	}
	return nil
}

func (r *GormEventRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&EventModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "event")
	}
	return nil
}
