// internal/service/coupon/domain/segment.go
package domain

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// SegmentGender 定义客群的性别维度，ANY 表示不限
type SegmentGender string

const (
	GenderAny    SegmentGender = "ANY"
	GenderMale   SegmentGender = "M"
	GenderFemale SegmentGender = "F"
	GenderOther  SegmentGender = "X"
)

// ParseSegmentGender 归一化并校验性别字符串，空值回退为 ANY
func ParseSegmentGender(s string) (SegmentGender, error) {
	switch SegmentGender(strings.ToUpper(strings.TrimSpace(s))) {
	case GenderAny, "":
		return GenderAny, nil
	case GenderMale:
		return GenderMale, nil
	case GenderFemale:
		return GenderFemale, nil
	case GenderOther:
		return GenderOther, nil
	default:
		return "", errors.Wrapf(ErrInvalidArgument, "invalid gender: %q", s)
	}
}

// Segment 是一个客群定义，用于差异化定价
type Segment struct {
	ID                 int64
	PublicName         string
	Gender             SegmentGender
	MinAge             *int
	MaxAge             *int
	IsStudent          *bool
	DistrictID         *int64
	SocioeconomicLevel *string
}

// NewSegment 创建客群并校验年龄区间
func NewSegment(publicName string, gender SegmentGender) (*Segment, error) {
	publicName = strings.TrimSpace(publicName)
	if publicName == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "public_name is required")
	}
	if gender == "" {
		gender = GenderAny
	}
	return &Segment{PublicName: publicName, Gender: gender}, nil
}

// SetAgeRange 设置年龄区间，0 <= min <= max
func (s *Segment) SetAgeRange(minAge, maxAge int) error {
	if minAge < 0 || maxAge < minAge {
		return errors.Wrap(ErrInvalidArgument, "age range must satisfy 0 <= min_age <= max_age")
	}
	s.MinAge = &minAge
	s.MaxAge = &maxAge
	return nil
}

// SegmentPriceOverride 是某张券对某个客群的专属折扣。
// 复合主键 (CouponID, SegmentID)；Priority 为 1 时优先级最高，
// 用于一个客户同时命中多个客群时的决胜。
type SegmentPriceOverride struct {
	CouponID       int64
	SegmentID      int64
	DiscountTypeID int64
	Value          decimal.Decimal
	Priority       int
}

// NewSegmentPriceOverride 创建客群价格覆盖并校验字段
func NewSegmentPriceOverride(couponID, segmentID, discountTypeID int64, value decimal.Decimal, priority int) (*SegmentPriceOverride, error) {
	switch {
	case couponID <= 0:
		return nil, errors.Wrap(ErrInvalidArgument, "coupon_id must be positive")
	case segmentID <= 0:
		return nil, errors.Wrap(ErrInvalidArgument, "segment_id must be positive")
	case discountTypeID <= 0:
		return nil, errors.Wrap(ErrInvalidArgument, "discount_type_id must be positive")
	case value.IsNegative():
		return nil, errors.Wrap(ErrInvalidArgument, "value must be non-negative")
	case priority < 1:
		return nil, errors.Wrap(ErrInvalidArgument, "priority must be >= 1")
	}
	return &SegmentPriceOverride{
		CouponID:       couponID,
		SegmentID:      segmentID,
		DiscountTypeID: discountTypeID,
		Value:          value,
		Priority:       priority,
	}, nil
}
