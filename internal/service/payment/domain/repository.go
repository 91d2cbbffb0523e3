// internal/service/payment/domain/repository.go
package domain

import (
	"context"
	"time"
)

type PartyRepository interface {
	Create(ctx context.Context, party *Party) error
	FindByID(ctx context.Context, id int64) (*Party, error)
	FindBySubject(ctx context.Context, app AppName, subject SubjectType, subjectID int64) (*Party, error)
	SearchByName(ctx context.Context, fragment string, limit int) ([]*Party, error)
	Update(ctx context.Context, party *Party) error
	Delete(ctx context.Context, id int64) error
}

type ProviderAccountRepository interface {
	Create(ctx context.Context, account *ProviderAccount) error
	FindByID(ctx context.Context, id int64) (*ProviderAccount, error)
	FindByUnique(ctx context.Context, provider string, env Environment, providerAccountID string) (*ProviderAccount, error)
	ListByParty(ctx context.Context, partyID int64) ([]*ProviderAccount, error)
	ListByPartyEnv(ctx context.Context, partyID int64, env Environment) ([]*ProviderAccount, error)
	// FindActiveForParty 返回该商家在指定渠道环境下首个 active 账号
	FindActiveForParty(ctx context.Context, partyID int64, provider string, env Environment) (*ProviderAccount, error)
	CountByProviderEnv(ctx context.Context, provider string, env Environment) (int64, error)
	Update(ctx context.Context, account *ProviderAccount) error
	Delete(ctx context.Context, id int64) error
}

type ProviderCustomerRepository interface {
	Create(ctx context.Context, customer *ProviderCustomer) error
	FindByID(ctx context.Context, id int64) (*ProviderCustomer, error)
	FindByPartyProviderEnv(ctx context.Context, partyID int64, provider string, env Environment) (*ProviderCustomer, error)
	FindByProviderExternalID(ctx context.Context, provider string, env Environment, providerCustomerID string) (*ProviderCustomer, error)
	ListByParty(ctx context.Context, partyID int64) ([]*ProviderCustomer, error)
	Update(ctx context.Context, customer *ProviderCustomer) error
	Delete(ctx context.Context, id int64) error
}

type PaymentSourceRepository interface {
	Create(ctx context.Context, source *PaymentSource) error
	FindByID(ctx context.Context, id int64) (*PaymentSource, error)
	ListByCustomer(ctx context.Context, customerPK int64) ([]*PaymentSource, error)
	ListActiveCards(ctx context.Context, customerPK int64) ([]*PaymentSource, error)
	// FindWallet 每个 customer 至多一个 wallet 来源
	FindWallet(ctx context.Context, customerPK int64) (*PaymentSource, error)
	FindCardByProviderSourceID(ctx context.Context, customerPK int64, providerSourceID string) (*PaymentSource, error)
	Update(ctx context.Context, source *PaymentSource) error
	Delete(ctx context.Context, id int64) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id int64) (*Order, error)
	FindByProviderPayment(ctx context.Context, provider string, env Environment, providerPaymentID string) (*Order, error)
	FindByIdempotencyKey(ctx context.Context, provider string, env Environment, key string) (*Order, error)
	ListByBuyer(ctx context.Context, buyerPartyID int64) ([]*Order, error)
	ListBySeller(ctx context.Context, sellerPartyID int64) ([]*Order, error)
	ListByStatus(ctx context.Context, status OrderStatus) ([]*Order, error)
	Update(ctx context.Context, order *Order) error
}

type CheckoutSessionRepository interface {
	Create(ctx context.Context, session *CheckoutSession) error
	FindByID(ctx context.Context, id int64) (*CheckoutSession, error)
	FindByProviderSessionID(ctx context.Context, providerSessionID string) (*CheckoutSession, error)
	ListByOrder(ctx context.Context, orderID int64, onlyActive bool) ([]*CheckoutSession, error)
	// ExpireAllForOrder 返回被作废的会话数
	ExpireAllForOrder(ctx context.Context, orderID int64, at time.Time) (int, error)
	Update(ctx context.Context, session *CheckoutSession) error
	Delete(ctx context.Context, id int64) error
}

type WebhookEventRepository interface {
	// EnsureReceived 原子化的 insert-or-fetch：已存在同键行时返回已有行，
	// inserted 标记本次调用是否真正落了新行。
	EnsureReceived(ctx context.Context, event *WebhookEvent) (stored *WebhookEvent, inserted bool, err error)
	// Create 非幂等写入，撞唯一键时返回 ErrDuplicate
	Create(ctx context.Context, event *WebhookEvent) error
	FindByID(ctx context.Context, id int64) (*WebhookEvent, error)
	FindByDelivery(ctx context.Context, provider string, env Environment, deliveryKey string) (*WebhookEvent, error)
	ListByResource(ctx context.Context, provider string, env Environment, resourceID string) ([]*WebhookEvent, error)
	ListUnprocessed(ctx context.Context, provider string, env Environment, limit, offset int) ([]*WebhookEvent, error)
	CountUnprocessed(ctx context.Context) (int64, error)
	SetHTTPStatus(ctx context.Context, id int64, code int) error
	// SetSignatureValid 记录外部校验方事后给出的签名结论
	SetSignatureValid(ctx context.Context, id int64, valid bool) error
	MarkProcessed(ctx context.Context, id int64, at time.Time) (*WebhookEvent, error)
	Delete(ctx context.Context, id int64) error
}

// WebhookPublisher 把新落库的回调事件广播给异步消费方
type WebhookPublisher interface {
	PublishReceived(ctx context.Context, event *WebhookEvent) error
}
