// internal/service/coupon/domain/coupon.go
package domain

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// CouponStatus 定义优惠券模板的状态
type CouponStatus string

const (
	CouponStatusActive   CouponStatus = "ACTIVE"
	CouponStatusInactive CouponStatus = "INACTIVE"
)

// ParseCouponStatus 归一化并校验状态字符串
func ParseCouponStatus(s string) (CouponStatus, error) {
	switch CouponStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case CouponStatusActive:
		return CouponStatusActive, nil
	case CouponStatusInactive:
		return CouponStatusInactive, nil
	case "":
		return CouponStatusActive, nil
	default:
		return "", errors.Wrapf(ErrInvalidArgument, "invalid coupon status: %s", s)
	}
}

// Coupon 是商家发布的优惠券模板。
// 所有校验集中在构造函数，保证仓储层拿到的总是合法实体。
type Coupon struct {
	ID                 int64
	BusinessID         int64
	CouponTypeID       *int64
	CategoryID         *int64
	EventID            *int64
	ShowInCouponHolder bool
	Name               string
	Description        string
	DiscountTypeID     int64
	Value              decimal.Decimal
	MaxDiscount        *decimal.Decimal
	StartDate          time.Time
	EndDate            time.Time
	MaxUses            *int
	EventName          string
	IsSharedAlliances  bool
	Status             CouponStatus
	CreatedAt          time.Time
}

// NewCoupon 创建优惠券模板并做字段校验
func NewCoupon(businessID, discountTypeID int64, name string, value decimal.Decimal, start, end time.Time) (*Coupon, error) {
	name = strings.TrimSpace(name)
	switch {
	case businessID <= 0:
		return nil, errors.Wrap(ErrInvalidArgument, "business_id must be positive")
	case discountTypeID <= 0:
		return nil, errors.Wrap(ErrInvalidArgument, "discount_type_id must be positive")
	case name == "":
		return nil, errors.Wrap(ErrInvalidArgument, "coupon name is required")
	case value.IsNegative():
		return nil, errors.Wrap(ErrInvalidArgument, "value must be non-negative")
	case !start.Before(end):
		return nil, errors.Wrap(ErrInvalidArgument, "start_date must be before end_date")
	}
	return &Coupon{
		BusinessID:     businessID,
		DiscountTypeID: discountTypeID,
		Name:           name,
		Value:          value,
		StartDate:      start,
		EndDate:        end,
		Status:         CouponStatusActive,
	}, nil
}

// SetMaxDiscount 设置折扣上限，必须非负
func (c *Coupon) SetMaxDiscount(max decimal.Decimal) error {
	if max.IsNegative() {
		return errors.Wrap(ErrInvalidArgument, "max_discount must be non-negative")
	}
	c.MaxDiscount = &max
	return nil
}

// IsActiveAt 检查优惠券模板在给定时间是否处于有效窗口内
func (c *Coupon) IsActiveAt(now time.Time) bool {
	return c.Status == CouponStatusActive && !now.Before(c.StartDate) && !now.After(c.EndDate)
}
