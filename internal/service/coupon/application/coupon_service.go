// internal/service/coupon/application/coupon_service.go
package application

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kabudence/coupon-microservice/internal/pkg/logger"
	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// CouponService 管理优惠券模板及其可作用的商品列表
type CouponService struct {
	coupons  domain.CouponRepository
	products domain.CouponProductRepository
	tracer   trace.Tracer
}

func NewCouponService(coupons domain.CouponRepository, products domain.CouponProductRepository, tracer trace.Tracer) *CouponService {
	return &CouponService{coupons: coupons, products: products, tracer: tracer}
}

// Create 创建优惠券模板
func (s *CouponService) Create(ctx context.Context, req *CouponRequest) (*domain.Coupon, error) {
	ctx, span := s.tracer.Start(ctx, "service.CreateCoupon")
	defer span.End()

	coupon, err := s.buildCoupon(req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.coupons.Create(ctx, coupon); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int64("coupon.id", coupon.ID))
	logger.Ctx(ctx).Info().Int64("coupon_id", coupon.ID).Int64("business_id", coupon.BusinessID).Msg("coupon created")
	return coupon, nil
}

func (s *CouponService) Get(ctx context.Context, id int64) (*domain.Coupon, error) {
	return s.coupons.FindByID(ctx, id)
}

func (s *CouponService) GetByCode(ctx context.Context, name string) (*domain.Coupon, error) {
	return s.coupons.FindByName(ctx, name)
}

func (s *CouponService) ListByBusiness(ctx context.Context, businessID int64) ([]*domain.Coupon, error) {
	return s.coupons.FindByBusiness(ctx, businessID)
}

func (s *CouponService) ListActiveNow(ctx context.Context) ([]*domain.Coupon, error) {
	return s.coupons.FindActiveInWindow(ctx, time.Now())
}

// Update 整体替换一张券的可编辑字段
func (s *CouponService) Update(ctx context.Context, id int64, req *CouponRequest) (*domain.Coupon, error) {
	ctx, span := s.tracer.Start(ctx, "service.UpdateCoupon")
	defer span.End()

	coupon, err := s.buildCoupon(req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	coupon.ID = id
	if err := s.coupons.Update(ctx, coupon); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return coupon, nil
}

func (s *CouponService) Delete(ctx context.Context, id int64) error {
	return s.coupons.Delete(ctx, id)
}

func (s *CouponService) buildCoupon(req *CouponRequest) (*domain.Coupon, error) {
	coupon, err := domain.NewCoupon(req.BusinessID, req.DiscountTypeID, req.Name, req.Value, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if req.MaxDiscount != nil {
		if err := coupon.SetMaxDiscount(*req.MaxDiscount); err != nil {
			return nil, err
		}
	}
	status, err := domain.ParseCouponStatus(req.Status)
	if err != nil {
		return nil, err
	}
	coupon.Status = status
	coupon.CouponTypeID = req.CouponTypeID
	coupon.CategoryID = req.CategoryID
	coupon.EventID = req.EventID
	coupon.ShowInCouponHolder = req.ShowInCouponHolder
	coupon.Description = req.Description
	coupon.MaxUses = req.MaxUses
	coupon.EventName = req.EventName
	coupon.IsSharedAlliances = req.IsSharedAlliances
	return coupon, nil
}

// AddProduct 给券挂载一个可作用的商品
func (s *CouponService) AddProduct(ctx context.Context, couponID, productID int64, code, productType string, stock *int) (*domain.CouponProduct, error) {
	pt := domain.ProductTypeProduct
	if productType != "" {
		parsed, err := domain.ParseProductType(productType)
		if err != nil {
			return nil, err
		}
		pt = parsed
	}
	cp, err := domain.NewCouponProduct(couponID, productID, code, pt, stock)
	if err != nil {
		return nil, err
	}
	if err := s.products.Add(ctx, cp); err != nil {
		return nil, err
	}
	return cp, nil
}

// BulkAddProducts 批量挂载商品，重复组合跳过
func (s *CouponService) BulkAddProducts(ctx context.Context, cps []*domain.CouponProduct) (*BulkAddResponse, error) {
	inserted, err := s.products.BulkAdd(ctx, cps)
	if err != nil {
		return nil, err
	}
	return &BulkAddResponse{Requested: len(cps), Inserted: inserted, Skipped: len(cps) - inserted}, nil
}

func (s *CouponService) GetProduct(ctx context.Context, id int64) (*domain.CouponProduct, error) {
	return s.products.FindByID(ctx, id)
}

func (s *CouponService) ListProductsByCoupon(ctx context.Context, couponID int64) ([]*domain.CouponProduct, error) {
	return s.products.ListProductsByCoupon(ctx, couponID)
}

func (s *CouponService) ListCouponsByProduct(ctx context.Context, productID int64) ([]*domain.CouponProduct, error) {
	return s.products.ListCouponsByProduct(ctx, productID)
}

// ConsumeProductStock 核销时扣减一个库存。
// 无库存跟踪（stock 为 NULL）时不做任何事。
func (s *CouponService) ConsumeProductStock(ctx context.Context, id int64) (*domain.CouponProduct, error) {
	ctx, span := s.tracer.Start(ctx, "service.ConsumeProductStock")
	defer span.End()

	cp, err := s.products.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := cp.ConsumeOne(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.products.Update(ctx, cp); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return cp, nil
}

func (s *CouponService) RemoveProduct(ctx context.Context, id int64) error {
	return s.products.Remove(ctx, id)
}

func (s *CouponService) RemoveProductByCombo(ctx context.Context, couponID, productID int64) error {
	return s.products.RemoveByCombo(ctx, couponID, productID)
}

func (s *CouponService) RemoveAllProductsForCoupon(ctx context.Context, couponID int64) (int, error) {
	return s.products.RemoveAllForCoupon(ctx, couponID)
}
