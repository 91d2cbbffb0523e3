// internal/service/coupon/domain/client_coupon.go
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ClientCouponStatus 定义发放到客户手中的券的生命周期状态
type ClientCouponStatus string

const (
	ClientCouponActive   ClientCouponStatus = "ACTIVE"
	ClientCouponUsed     ClientCouponStatus = "USED"
	ClientCouponInactive ClientCouponStatus = "INACTIVE"
	ClientCouponExpired  ClientCouponStatus = "EXPIRED"
)

// ClientCoupon 是发放给具体客户的一张券实例。
// ValidFrom / ValidTo 为 nil 时表示窗口的该侧不受限。
type ClientCoupon struct {
	ID              int64
	CouponID        int64
	ClientID        int64
	Code            string
	Status          ClientCouponStatus
	ValidFrom       *time.Time
	ValidTo         *time.Time
	UsedAt          *time.Time
	SourceTriggerID *int64
	SourceOrderID   *string
	CreatedAt       time.Time
}

// NewClientCoupon 创建一张客户券，code 缺省时自动生成
func NewClientCoupon(couponID, clientID int64, code string) (*ClientCoupon, error) {
	if couponID <= 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "coupon_id must be positive")
	}
	if clientID <= 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "client_id must be positive")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		code = uuid.NewString()
	}
	return &ClientCoupon{
		CouponID: couponID,
		ClientID: clientID,
		Code:     code,
		Status:   ClientCouponActive,
	}, nil
}

// IsActiveNow 检查该券当前是否可用：状态为 ACTIVE 且处于有效窗口内
func (c *ClientCoupon) IsActiveNow(now time.Time) bool {
	if c.Status != ClientCouponActive {
		return false
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return false
	}
	if c.ValidTo != nil && now.After(*c.ValidTo) {
		return false
	}
	return true
}

// MarkUsed 核销该券，只有 ACTIVE 状态可核销
func (c *ClientCoupon) MarkUsed(now time.Time) error {
	if c.Status != ClientCouponActive {
		return errors.Wrapf(ErrForbidden, "client coupon %d is %s, cannot be used", c.ID, c.Status)
	}
	c.Status = ClientCouponUsed
	c.UsedAt = &now
	return nil
}
