// internal/service/coupon/domain/trigger_mapping.go
package domain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// TriggerMapping 表示“购买了触发商品 X 即可解锁优惠券 Y”的规则。
// 复合标识为 (TriggerProductID, CouponID)，由存储层的唯一索引保证。
// MinAmount 为 nil 表示没有金额门槛，与零值语义不同。
type TriggerMapping struct {
	ID               int64
	TriggerProductID int64
	CouponID         int64
	ProductType      ProductType
	MinQuantity      int
	MinAmount        *decimal.Decimal
}

// NewTriggerMapping 创建一条触发映射并校验门槛字段
func NewTriggerMapping(triggerProductID, couponID int64, productType ProductType, minQuantity int, minAmount *decimal.Decimal) (*TriggerMapping, error) {
	switch {
	case triggerProductID <= 0:
		return nil, errors.Wrap(ErrInvalidArgument, "trigger_product_id must be positive")
	case couponID <= 0:
		return nil, errors.Wrap(ErrInvalidArgument, "coupon_id must be positive")
	case minQuantity < 1:
		return nil, errors.Wrap(ErrInvalidArgument, "min_quantity must be >= 1")
	case minAmount != nil && minAmount.IsNegative():
		return nil, errors.Wrap(ErrInvalidArgument, "min_amount must be non-negative")
	}
	if productType == "" {
		productType = ProductTypeProduct
	}
	return &TriggerMapping{
		TriggerProductID: triggerProductID,
		CouponID:         couponID,
		ProductType:      productType,
		MinQuantity:      minQuantity,
		MinAmount:        minAmount,
	}, nil
}

// Matches 判断一个购物车条目是否满足本映射的全部门槛：
// 类型相同、数量达到 MinQuantity、金额达到 MinAmount（若设置）。
// 条目金额缺失时，设置了金额门槛的映射一律不匹配。
func (m *TriggerMapping) Matches(item *PurchasedItem) bool {
	if m.ProductType != item.ProductType {
		return false
	}
	if item.Quantity < m.MinQuantity {
		return false
	}
	if m.MinAmount != nil {
		if item.Amount == nil {
			return false
		}
		if item.Amount.LessThan(*m.MinAmount) {
			return false
		}
	}
	return true
}
