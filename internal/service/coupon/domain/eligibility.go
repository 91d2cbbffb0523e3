// internal/service/coupon/domain/eligibility.go
package domain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// PurchasedItem 是资格解析的输入条目，不落库。
// Amount 为 nil 表示调用方未提供金额。
type PurchasedItem struct {
	ProductType ProductType
	ProductID   int64
	Quantity    int
	Amount      *decimal.Decimal
}

// NewPurchasedItem 构造并校验一个购物车条目。
// 数量小于 1（或缺省的 0）回退为 1，金额若提供必须非负。
func NewPurchasedItem(productType string, productID int64, quantity int, amount *decimal.Decimal) (*PurchasedItem, error) {
	pt, err := ParseProductType(productType)
	if err != nil {
		return nil, err
	}
	if productID <= 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "product_id must be positive")
	}
	if quantity < 1 {
		quantity = 1
	}
	if amount != nil && amount.IsNegative() {
		return nil, errors.Wrap(ErrInvalidArgument, "amount must be non-negative")
	}
	return &PurchasedItem{
		ProductType: pt,
		ProductID:   productID,
		Quantity:    quantity,
		Amount:      amount,
	}, nil
}

// ResolvedEligibility 是资格解析的输出行，不落库
type ResolvedEligibility struct {
	ProductType ProductType
	ProductID   int64
	CouponID    int64
	MinQuantity int
	MinAmount   *decimal.Decimal
}

// eligibilityKey 用于在一次解析内去重
type eligibilityKey struct {
	ProductID   int64
	CouponID    int64
	ProductType ProductType
}

// ResolveEligibilities 对一组条目应用映射规则，返回解锁的优惠券集合。
// 同一 (product_id, coupon_id, product_type) 组合只输出一次，输出顺序不保证。
// 纯函数，无副作用。
func ResolveEligibilities(items []*PurchasedItem, mappingsByTrigger map[int64][]*TriggerMapping) []*ResolvedEligibility {
	seen := make(map[eligibilityKey]struct{})
	var results []*ResolvedEligibility

	for _, item := range items {
		for _, mapping := range mappingsByTrigger[item.ProductID] {
			if !mapping.Matches(item) {
				continue
			}
			key := eligibilityKey{
				ProductID:   item.ProductID,
				CouponID:    mapping.CouponID,
				ProductType: item.ProductType,
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			results = append(results, &ResolvedEligibility{
				ProductType: item.ProductType,
				ProductID:   item.ProductID,
				CouponID:    mapping.CouponID,
				MinQuantity: mapping.MinQuantity,
				MinAmount:   mapping.MinAmount,
			})
		}
	}
	return results
}
