// internal/service/coupon/application/catalog_service.go
package application

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// CatalogService 聚合折扣类型、券类型、分类和活动这四个目录的用例。
// 纯 CRUD，校验都在领域构造函数里。
type CatalogService struct {
	discountTypes domain.DiscountTypeRepository
	couponTypes   domain.CouponTypeRepository
	categories    domain.CategoryRepository
	events        domain.EventRepository
	tracer        trace.Tracer
}

func NewCatalogService(
	discountTypes domain.DiscountTypeRepository,
	couponTypes domain.CouponTypeRepository,
	categories domain.CategoryRepository,
	events domain.EventRepository,
	tracer trace.Tracer,
) *CatalogService {
	return &CatalogService{
		discountTypes: discountTypes,
		couponTypes:   couponTypes,
		categories:    categories,
		events:        events,
		tracer:        tracer,
	}
}

func (s *CatalogService) CreateDiscountType(ctx context.Context, name string) (*domain.DiscountType, error) {
	dt, err := domain.NewDiscountType(name)
	if err != nil {
		return nil, err
	}
	if err := s.discountTypes.Create(ctx, dt); err != nil {
		return nil, err
	}
	return dt, nil
}

func (s *CatalogService) GetDiscountType(ctx context.Context, id int64) (*domain.DiscountType, error) {
	return s.discountTypes.FindByID(ctx, id)
}

func (s *CatalogService) ListDiscountTypes(ctx context.Context) ([]*domain.DiscountType, error) {
	return s.discountTypes.FindAll(ctx)
}

func (s *CatalogService) UpdateDiscountType(ctx context.Context, id int64, name string) (*domain.DiscountType, error) {
	dt, err := domain.NewDiscountType(name)
	if err != nil {
		return nil, err
	}
	dt.ID = id
	if err := s.discountTypes.Update(ctx, dt); err != nil {
		return nil, err
	}
	return dt, nil
}

func (s *CatalogService) DeleteDiscountType(ctx context.Context, id int64) error {
	return s.discountTypes.Delete(ctx, id)
}

func (s *CatalogService) CreateCouponType(ctx context.Context, name, description string) (*domain.CouponType, error) {
	ct, err := domain.NewCouponType(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.couponTypes.Create(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

func (s *CatalogService) GetCouponType(ctx context.Context, id int64) (*domain.CouponType, error) {
	return s.couponTypes.FindByID(ctx, id)
}

func (s *CatalogService) ListCouponTypes(ctx context.Context) ([]*domain.CouponType, error) {
	return s.couponTypes.FindAll(ctx)
}

func (s *CatalogService) UpdateCouponType(ctx context.Context, id int64, name, description string) (*domain.CouponType, error) {
	ct, err := domain.NewCouponType(name, description)
	if err != nil {
		return nil, err
	}
	ct.ID = id
	if err := s.couponTypes.Update(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

func (s *CatalogService) DeleteCouponType(ctx context.Context, id int64) error {
	return s.couponTypes.Delete(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	c, err := domain.NewCategory(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.FindAll(ctx)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, name, description string) (*domain.Category, error) {
	c, err := domain.NewCategory(name, description)
	if err != nil {
		return nil, err
	}
	c.ID = id
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}

func (s *CatalogService) CreateEvent(ctx context.Context, name, description string) (*domain.Event, error) {
	e, err := domain.NewEvent(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *CatalogService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	return s.events.FindByID(ctx, id)
}

func (s *CatalogService) GetEventByName(ctx context.Context, name string) (*domain.Event, error) {
	return s.events.FindByName(ctx, name)
}

func (s *CatalogService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return s.events.FindAll(ctx)
}

func (s *CatalogService) UpdateEvent(ctx context.Context, id int64, name, description string) (*domain.Event, error) {
	e, err := domain.NewEvent(name, description)
	if err != nil {
		return nil, err
	}
	e.ID = id
	if err := s.events.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *CatalogService) DeleteEvent(ctx context.Context, id int64) error {
	return s.events.Delete(ctx, id)
}
