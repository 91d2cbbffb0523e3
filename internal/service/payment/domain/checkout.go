// internal/service/payment/domain/checkout.go
package domain

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// CheckoutSession 记录托管收银台的一次会话，provider_session_id 全局唯一。
// 同一订单重建会话时旧会话先整体过期再插入新会话。
type CheckoutSession struct {
	ID                int64      `json:"id"`
	OrderID           int64      `json:"order_id"`
	ProviderSessionID string     `json:"provider_session_id"`
	InitURL           string     `json:"init_url,omitempty"`
	SandboxURL        string     `json:"sandbox_url,omitempty"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	ExpiredAt         *time.Time `json:"expired_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func NewCheckoutSession(orderID int64, providerSessionID, initURL, sandboxURL string, expiresAt *time.Time) (*CheckoutSession, error) {
	if orderID <= 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "order_id must be positive")
	}
	providerSessionID = strings.TrimSpace(providerSessionID)
	if providerSessionID == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "provider_session_id is required")
	}
	return &CheckoutSession{
		OrderID:           orderID,
		ProviderSessionID: providerSessionID,
		InitURL:           strings.TrimSpace(initURL),
		SandboxURL:        strings.TrimSpace(sandboxURL),
		ExpiresAt:         expiresAt,
	}, nil
}

// IsActive 会话未被显式作废且未过自然过期时间
func (s *CheckoutSession) IsActive(now time.Time) bool {
	if s.ExpiredAt != nil {
		return false
	}
	if s.ExpiresAt != nil && now.After(*s.ExpiresAt) {
		return false
	}
	return true
}

func (s *CheckoutSession) Expire(now time.Time) {
	if s.ExpiredAt == nil {
		s.ExpiredAt = &now
	}
}
