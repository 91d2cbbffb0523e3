// internal/service/coupon/domain/coupon_product.go
package domain

import (
	"strings"

	"github.com/pkg/errors"
)

// CouponProductStatus 定义券-商品挂载关系的状态
type CouponProductStatus string

const (
	CouponProductActive   CouponProductStatus = "ACTIVE"
	CouponProductInactive CouponProductStatus = "INACTIVE"
)

// CouponProduct 表示一张优惠券可作用的具体商品/服务。
// Stock 为 nil 表示不做库存跟踪，核销时不扣减。
type CouponProduct struct {
	ID          int64
	CouponID    int64
	ProductID   int64
	Code        string
	ProductType ProductType
	Stock       *int
	Status      CouponProductStatus
}

// NewCouponProduct 创建一条券-商品挂载关系
func NewCouponProduct(couponID, productID int64, code string, productType ProductType, stock *int) (*CouponProduct, error) {
	switch {
	case couponID <= 0:
		return nil, errors.Wrap(ErrInvalidArgument, "coupon_id must be positive")
	case productID <= 0:
		return nil, errors.Wrap(ErrInvalidArgument, "product_id must be positive")
	case stock != nil && *stock < 0:
		return nil, errors.Wrap(ErrInvalidArgument, "stock must be non-negative")
	}
	if productType == "" {
		productType = ProductTypeProduct
	}
	return &CouponProduct{
		CouponID:    couponID,
		ProductID:   productID,
		Code:        strings.TrimSpace(code),
		ProductType: productType,
		Stock:       stock,
		Status:      CouponProductActive,
	}, nil
}

// ConsumeOne 扣减一个库存。无库存跟踪时为 no-op，库存为 0 时报错。
func (p *CouponProduct) ConsumeOne() error {
	if p.Stock == nil {
		return nil
	}
	if *p.Stock <= 0 {
		return errors.Wrapf(ErrForbidden, "coupon product %d has no stock left", p.ID)
	}
	*p.Stock--
	return nil
}
