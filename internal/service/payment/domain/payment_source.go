// internal/service/payment/domain/payment_source.go
package domain

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

type SourceType string

const (
	SourceCard         SourceType = "card"
	SourceWallet       SourceType = "wallet"
	SourceAccountMoney SourceType = "account_money"
)

func ParseSourceType(raw string) (SourceType, error) {
	switch SourceType(strings.ToLower(strings.TrimSpace(raw))) {
	case SourceCard:
		return SourceCard, nil
	case SourceWallet:
		return SourceWallet, nil
	case SourceAccountMoney:
		return SourceAccountMoney, nil
	default:
		return "", errors.Wrapf(ErrInvalidArgument, "unknown source_type %q", raw)
	}
}

type SourceStatus string

const (
	SourceActive   SourceStatus = "active"
	SourceDisabled SourceStatus = "disabled"
)

// PaymentSource 是付款方在渠道侧保存的支付手段，挂在 ProviderCustomer 下。
// 卡类来源要求渠道侧 token、末四位和有效期齐全。
type PaymentSource struct {
	ID                 int64        `json:"id"`
	ProviderCustomerPK int64        `json:"provider_customer_pk"`
	SourceType         SourceType   `json:"source_type"`
	ProviderSourceID   string       `json:"provider_source_id,omitempty"`
	Brand              string       `json:"brand,omitempty"`
	LastFour           string       `json:"last_four,omitempty"`
	ExpMonth           int          `json:"exp_month,omitempty"`
	ExpYear            int          `json:"exp_year,omitempty"`
	Status             SourceStatus `json:"status"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

func NewPaymentSource(customerPK int64, sourceType string) (*PaymentSource, error) {
	if customerPK <= 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "provider_customer_pk must be positive")
	}
	st, err := ParseSourceType(sourceType)
	if err != nil {
		return nil, err
	}
	return &PaymentSource{
		ProviderCustomerPK: customerPK,
		SourceType:         st,
		Status:             SourceActive,
	}, nil
}

// SetCardDetails 补全卡类来源的渠道 token 和卡面信息
func (s *PaymentSource) SetCardDetails(providerSourceID, brand, lastFour string, expMonth, expYear int) error {
	if s.SourceType != SourceCard {
		return errors.Wrap(ErrInvalidArgument, "card details only apply to card sources")
	}
	providerSourceID = strings.TrimSpace(providerSourceID)
	if providerSourceID == "" {
		return errors.Wrap(ErrInvalidArgument, "provider_source_id is required for cards")
	}
	lastFour = strings.TrimSpace(lastFour)
	if len(lastFour) != 4 {
		return errors.Wrap(ErrInvalidArgument, "last_four must be exactly 4 characters")
	}
	if expMonth < 1 || expMonth > 12 {
		return errors.Wrap(ErrInvalidArgument, "exp_month must be between 1 and 12")
	}
	if expYear < 2000 {
		return errors.Wrap(ErrInvalidArgument, "exp_year must be a full four-digit year")
	}
	s.ProviderSourceID = providerSourceID
	s.Brand = strings.ToLower(strings.TrimSpace(brand))
	s.LastFour = lastFour
	s.ExpMonth = expMonth
	s.ExpYear = expYear
	return nil
}

func (s *PaymentSource) Disable() { s.Status = SourceDisabled }
