// internal/service/payment/application/dto.go
package application

import (
	"time"

	"github.com/shopspring/decimal"
)

type PartyRequest struct {
	AppName     string `json:"app_name"`
	SubjectType string `json:"subject_type"`
	SubjectID   int64  `json:"subject_id"`
	DisplayName string `json:"display_name"`
}

type ProviderAccountRequest struct {
	PartyID           int64  `json:"party_id"`
	Provider          string `json:"provider"`
	Env               string `json:"env"`
	ProviderAccountID string `json:"provider_account_id"`
	PublicKey         string `json:"public_key"`
	SecretJSONEnc     string `json:"secret_json_enc"`
}

type RotateSecretsRequest struct {
	PublicKey     string `json:"public_key"`
	SecretJSONEnc string `json:"secret_json_enc"`
}

type ProviderCustomerRequest struct {
	PartyID            int64  `json:"party_id"`
	Provider           string `json:"provider"`
	Env                string `json:"env"`
	ProviderCustomerID string `json:"provider_customer_id"`
	Email              string `json:"email"`
}

type PaymentSourceRequest struct {
	ProviderCustomerPK int64  `json:"provider_customer_pk"`
	SourceType         string `json:"source_type"`
	ProviderSourceID   string `json:"provider_source_id"`
	Brand              string `json:"brand"`
	LastFour           string `json:"last_four"`
	ExpMonth           int    `json:"exp_month"`
	ExpYear            int    `json:"exp_year"`
}

type OrderRequest struct {
	BuyerPartyID   int64            `json:"buyer_party_id"`
	SellerPartyID  int64            `json:"seller_party_id"`
	Amount         decimal.Decimal  `json:"amount"`
	Currency       string           `json:"currency"`
	Flow           string           `json:"flow"`
	Provider       string           `json:"provider"`
	Env            string           `json:"env"`
	IdempotencyKey string           `json:"idempotency_key"`
	Metadata       map[string]any   `json:"metadata"`
}

type CheckoutContextRequest struct {
	ProviderAccountID int64  `json:"provider_account_id"`
	ProviderPaymentID string `json:"provider_payment_id"`
	IdempotencyKey    string `json:"idempotency_key"`
}

type MarkPaidRequest struct {
	PaymentType    string `json:"payment_type"`
	MethodBrand    string `json:"method_brand"`
	MethodLastFour string `json:"method_last_four"`
}

type MarkFailedRequest struct {
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

type CheckoutSessionRequest struct {
	OrderID           int64      `json:"order_id"`
	ProviderSessionID string     `json:"provider_session_id"`
	InitURL           string     `json:"init_url"`
	SandboxURL        string     `json:"sandbox_url"`
	ExpiresAt         *time.Time `json:"expires_at"`
}

type SessionURLsRequest struct {
	InitURL    string `json:"init_url"`
	SandboxURL string `json:"sandbox_url"`
}

// WebhookReceipt 是回调入口永远返回的确认体
type WebhookReceipt struct {
	OK      bool  `json:"ok"`
	EventID int64 `json:"event_id"`
}

// SignatureVerdictRequest 是外部校验方回写签名结论的请求体
type SignatureVerdictRequest struct {
	Valid bool `json:"valid"`
}
