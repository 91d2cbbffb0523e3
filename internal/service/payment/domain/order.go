// internal/service/payment/domain/order.go
package domain

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderPaid       OrderStatus = "paid"
	OrderFailed     OrderStatus = "failed"
	OrderCanceled   OrderStatus = "canceled"
)

func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case OrderPending:
		return OrderPending, nil
	case OrderProcessing:
		return OrderProcessing, nil
	case OrderPaid:
		return OrderPaid, nil
	case OrderFailed:
		return OrderFailed, nil
	case OrderCanceled:
		return OrderCanceled, nil
	default:
		return "", errors.Wrapf(ErrInvalidArgument, "unknown order status %q", raw)
	}
}

type OrderFlow string

const (
	FlowAPI    OrderFlow = "api"
	FlowHosted OrderFlow = "hosted"
)

func ParseOrderFlow(raw string) (OrderFlow, error) {
	switch OrderFlow(strings.ToLower(strings.TrimSpace(raw))) {
	case FlowAPI:
		return FlowAPI, nil
	case FlowHosted:
		return FlowHosted, nil
	default:
		return "", errors.Wrapf(ErrInvalidArgument, "unknown order flow %q", raw)
	}
}

// Order 是一笔买卖双方之间的支付账目记录。
// provider_payment_id 和 idempotency_key 在 (provider, env) 内分别唯一。
type Order struct {
	ID                int64           `json:"id"`
	BuyerPartyID      int64           `json:"buyer_party_id"`
	SellerPartyID     int64           `json:"seller_party_id"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	Status            OrderStatus     `json:"status"`
	Flow              OrderFlow       `json:"flow"`
	Provider          string          `json:"provider"`
	Env               Environment     `json:"env"`
	ProviderAccountID *int64          `json:"provider_account_id,omitempty"`
	ProviderPaymentID string          `json:"provider_payment_id,omitempty"`
	IdempotencyKey    string          `json:"idempotency_key,omitempty"`
	PaymentType       string          `json:"payment_type,omitempty"`
	MethodBrand       string          `json:"method_brand,omitempty"`
	MethodLastFour    string          `json:"method_last_four,omitempty"`
	Metadata          map[string]any  `json:"metadata,omitempty"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func NewOrder(buyerPartyID, sellerPartyID int64, amount decimal.Decimal, currency, flow, provider, env string) (*Order, error) {
	if buyerPartyID <= 0 || sellerPartyID <= 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "buyer_party_id and seller_party_id must be positive")
	}
	if !amount.IsPositive() {
		return nil, errors.Wrap(ErrInvalidArgument, "amount must be positive")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "PEN"
	}
	if len(currency) != 3 {
		return nil, errors.Wrap(ErrInvalidArgument, "currency must be a 3-letter code")
	}
	orderFlow, err := ParseOrderFlow(flow)
	if err != nil {
		return nil, err
	}
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "provider is required")
	}
	environment, err := ParseEnvironment(env)
	if err != nil {
		return nil, err
	}
	return &Order{
		BuyerPartyID:  buyerPartyID,
		SellerPartyID: sellerPartyID,
		Amount:        amount,
		Currency:      currency,
		Status:        OrderPending,
		Flow:          orderFlow,
		Provider:      provider,
		Env:           environment,
	}, nil
}

// SetCheckoutContext 在发起渠道支付时挂上渠道上下文，
// 只允许 PENDING 订单进入 PROCESSING。
func (o *Order) SetCheckoutContext(providerAccountID int64, providerPaymentID, idempotencyKey string) error {
	if o.Status != OrderPending {
		return errors.Wrapf(ErrForbidden, "cannot attach checkout context to a %s order", o.Status)
	}
	if providerAccountID > 0 {
		o.ProviderAccountID = &providerAccountID
	}
	o.ProviderPaymentID = strings.TrimSpace(providerPaymentID)
	o.IdempotencyKey = strings.TrimSpace(idempotencyKey)
	o.Status = OrderProcessing
	return nil
}

// MarkPaid 记录成功收款，重复标记保持首个 paid_at 不变
func (o *Order) MarkPaid(paymentType, brand, lastFour string, at time.Time) {
	if o.Status == OrderPaid {
		return
	}
	o.Status = OrderPaid
	o.PaymentType = strings.TrimSpace(paymentType)
	o.MethodBrand = strings.ToLower(strings.TrimSpace(brand))
	o.MethodLastFour = strings.TrimSpace(lastFour)
	o.PaidAt = &at
}

// MarkFailed 把渠道侧错误折叠进 metadata
func (o *Order) MarkFailed(errorCode, errorMessage string) {
	o.Status = OrderFailed
	if o.Metadata == nil {
		o.Metadata = map[string]any{}
	}
	if errorCode != "" {
		o.Metadata["error_code"] = errorCode
	}
	if errorMessage != "" {
		o.Metadata["error_message"] = errorMessage
	}
}

// Cancel 取消订单；已支付的订单从不取消，原样返回
func (o *Order) Cancel() {
	if o.Status == OrderPaid {
		return
	}
	o.Status = OrderCanceled
}
