// internal/service/coupon/domain/catalog.go
package domain

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DiscountType 是折扣类型目录项，例如 PORCENTAJE（百分比）/ MONTO（固定金额）
type DiscountType struct {
	ID   int64
	Name string
}

// NewDiscountType 创建一个折扣类型，名称不能为空
func NewDiscountType(name string) (*DiscountType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "discount type name is required")
	}
	return &DiscountType{Name: name}, nil
}

// CouponType 是优惠券类型目录项
type CouponType struct {
	ID          int64
	Name        string
	Description string
}

// NewCouponType 创建一个优惠券类型，名称不能为空且唯一（唯一性由存储层保证）
func NewCouponType(name, description string) (*CouponType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "coupon type name is required")
	}
	return &CouponType{Name: name, Description: strings.TrimSpace(description)}, nil
}

// Category 是商品/服务分类
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

// NewCategory 创建一个分类
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "category name is required")
	}
	return &Category{Name: name, Description: strings.TrimSpace(description)}, nil
}

// Event 是营销活动（例如节日促销），优惠券可以挂靠在活动下
type Event struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

// NewEvent 创建一个营销活动
func NewEvent(name, description string) (*Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "event name is required")
	}
	return &Event{Name: name, Description: strings.TrimSpace(description)}, nil
}
