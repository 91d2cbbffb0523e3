// internal/service/payment/infrastructure/gorm_model.go
package infrastructure

import (
	"time"

	"github.com/shopspring/decimal"
)

type PartyModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	AppName     string `gorm:"size:32;not null;uniqueIndex:uniq_party_subject,priority:1"`
	SubjectType string `gorm:"size:16;not null;uniqueIndex:uniq_party_subject,priority:2"`
	SubjectID   int64  `gorm:"not null;uniqueIndex:uniq_party_subject,priority:3"`
	DisplayName string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PartyModel) TableName() string { return "parties" }

type ProviderAccountModel struct {
	ID                int64  `gorm:"primaryKey;autoIncrement"`
	PartyID           int64  `gorm:"not null;index"`
	Provider          string `gorm:"size:32;not null;uniqueIndex:uniq_provider_account,priority:1"`
	Env               string `gorm:"size:8;not null;uniqueIndex:uniq_provider_account,priority:2"`
	ProviderAccountID string `gorm:"size:128;not null;uniqueIndex:uniq_provider_account,priority:3"`
	PublicKey         string `gorm:"size:255"`
	SecretJSONEnc     string `gorm:"type:text"`
	Status            string `gorm:"size:16;not null;default:active"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (ProviderAccountModel) TableName() string { return "provider_accounts" }

type ProviderCustomerModel struct {
	ID                 int64  `gorm:"primaryKey;autoIncrement"`
	PartyID            int64  `gorm:"not null;uniqueIndex:uniq_provider_customer,priority:1"`
	Provider           string `gorm:"size:32;not null;uniqueIndex:uniq_provider_customer,priority:2"`
	Env                string `gorm:"size:8;not null;uniqueIndex:uniq_provider_customer,priority:3"`
	ProviderCustomerID string `gorm:"size:128;not null;index"`
	Email              string `gorm:"size:255"`
	Status             string `gorm:"size:16;not null;default:active"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (ProviderCustomerModel) TableName() string { return "provider_customers" }

type PaymentSourceModel struct {
	ID                 int64  `gorm:"primaryKey;autoIncrement"`
	ProviderCustomerPK int64  `gorm:"not null;index"`
	SourceType         string `gorm:"size:16;not null"`
	ProviderSourceID   string `gorm:"size:128"`
	Brand              string `gorm:"size:32"`
	LastFour           string `gorm:"size:4"`
	ExpMonth           int
	ExpYear            int
	Status             string `gorm:"size:16;not null;default:active"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (PaymentSourceModel) TableName() string { return "payment_sources" }

type OrderModel struct {
	ID                int64           `gorm:"primaryKey;autoIncrement"`
	BuyerPartyID      int64           `gorm:"not null;index"`
	SellerPartyID     int64           `gorm:"not null;index"`
	Amount            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency          string          `gorm:"size:3;not null"`
	Status            string          `gorm:"size:16;not null;index"`
	Flow              string          `gorm:"size:8;not null"`
	Provider          string          `gorm:"size:32;not null;uniqueIndex:uniq_order_payment,priority:1;uniqueIndex:uniq_order_idem,priority:1"`
	Env               string          `gorm:"size:8;not null;uniqueIndex:uniq_order_payment,priority:2;uniqueIndex:uniq_order_idem,priority:2"`
	ProviderAccountID *int64
	ProviderPaymentID *string `gorm:"size:128;uniqueIndex:uniq_order_payment,priority:3"`
	IdempotencyKey    *string `gorm:"size:128;uniqueIndex:uniq_order_idem,priority:3"`
	PaymentType       string  `gorm:"size:32"`
	MethodBrand       string  `gorm:"size:32"`
	MethodLastFour    string  `gorm:"size:4"`
	Metadata          string  `gorm:"type:json"`
	PaidAt            *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (OrderModel) TableName() string { return "orders" }

type CheckoutSessionModel struct {
	ID                int64  `gorm:"primaryKey;autoIncrement"`
	OrderID           int64  `gorm:"not null;index"`
	ProviderSessionID string `gorm:"size:128;not null;uniqueIndex:uniq_checkout_session"`
	InitURL           string `gorm:"size:1024"`
	SandboxURL        string `gorm:"size:1024"`
	ExpiresAt         *time.Time
	ExpiredAt         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (CheckoutSessionModel) TableName() string { return "checkout_sessions" }

type WebhookEventModel struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	Provider       string `gorm:"size:32;not null;uniqueIndex:uniq_webhook_delivery,priority:1;index:idx_webhook_resource,priority:1"`
	Env            string `gorm:"size:8;not null;uniqueIndex:uniq_webhook_delivery,priority:2;index:idx_webhook_resource,priority:2"`
	DeliveryKey    string `gorm:"size:191;not null;uniqueIndex:uniq_webhook_delivery,priority:3"`
	Topic          string `gorm:"size:64"`
	Action         string `gorm:"size:64"`
	ResourceID     string `gorm:"size:128;index:idx_webhook_resource,priority:3"`
	Headers        string `gorm:"type:json"`
	Body           []byte `gorm:"type:mediumblob"`
	SignatureValid *bool
	HTTPStatusSent int
	ReceivedAt     time.Time `gorm:"not null;index"`
	ProcessedAt    *time.Time
}

func (WebhookEventModel) TableName() string { return "webhook_events" }
