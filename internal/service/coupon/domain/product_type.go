// internal/service/coupon/domain/product_type.go
package domain

import (
	"strings"

	"github.com/pkg/errors"
)

// ProductType 区分商品和服务，触发映射与购物车条目都携带此类型
type ProductType string

const (
	ProductTypeProduct ProductType = "PRODUCT"
	ProductTypeService ProductType = "SERVICE"
)

// ParseProductType 大小写不敏感地归一化类型字符串，未知值视为校验失败
func ParseProductType(s string) (ProductType, error) {
	switch ProductType(strings.ToUpper(strings.TrimSpace(s))) {
	case ProductTypeProduct:
		return ProductTypeProduct, nil
	case ProductTypeService:
		return ProductTypeService, nil
	default:
		return "", errors.Wrapf(ErrInvalidArgument, "invalid product_type: %q", s)
	}
}

// ParseProductTypeOrDefault 与 ParseProductType 类似，但空值回退到 PRODUCT。
// 历史数据里映射行的类型可能为空，读路径用这个变体。
func ParseProductTypeOrDefault(s string) ProductType {
	pt, err := ParseProductType(s)
	if err != nil {
		return ProductTypeProduct
	}
	return pt
}
