// internal/service/payment/infrastructure/mapper.go
package infrastructure

import (
	"encoding/json"

	"github.com/Kabudence/coupon-microservice/internal/service/payment/domain"
)

func ToDomainParty(m *PartyModel) *domain.Party {
	return &domain.Party{
		ID:          m.ID,
		AppName:     domain.AppName(m.AppName),
		SubjectType: domain.SubjectType(m.SubjectType),
		SubjectID:   m.SubjectID,
		DisplayName: m.DisplayName,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func FromDomainParty(p *domain.Party) *PartyModel {
	return &PartyModel{
		ID:          p.ID,
		AppName:     string(p.AppName),
		SubjectType: string(p.SubjectType),
		SubjectID:   p.SubjectID,
		DisplayName: p.DisplayName,
	}
}

func ToDomainProviderAccount(m *ProviderAccountModel) *domain.ProviderAccount {
	return &domain.ProviderAccount{
		ID:                m.ID,
		PartyID:           m.PartyID,
		Provider:          m.Provider,
		Env:               domain.Environment(m.Env),
		ProviderAccountID: m.ProviderAccountID,
		PublicKey:         m.PublicKey,
		SecretJSONEnc:     m.SecretJSONEnc,
		Status:            domain.AccountStatus(m.Status),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func FromDomainProviderAccount(a *domain.ProviderAccount) *ProviderAccountModel {
	return &ProviderAccountModel{
		ID:                a.ID,
		PartyID:           a.PartyID,
		Provider:          a.Provider,
		Env:               string(a.Env),
		ProviderAccountID: a.ProviderAccountID,
		PublicKey:         a.PublicKey,
		SecretJSONEnc:     a.SecretJSONEnc,
		Status:            string(a.Status),
	}
}

func ToDomainProviderCustomer(m *ProviderCustomerModel) *domain.ProviderCustomer {
	return &domain.ProviderCustomer{
		ID:                 m.ID,
		PartyID:            m.PartyID,
		Provider:           m.Provider,
		Env:                domain.Environment(m.Env),
		ProviderCustomerID: m.ProviderCustomerID,
		Email:              m.Email,
		Status:             domain.CustomerStatus(m.Status),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func FromDomainProviderCustomer(c *domain.ProviderCustomer) *ProviderCustomerModel {
	return &ProviderCustomerModel{
		ID:                 c.ID,
		PartyID:            c.PartyID,
		Provider:           c.Provider,
		Env:                string(c.Env),
		ProviderCustomerID: c.ProviderCustomerID,
		Email:              c.Email,
		Status:             string(c.Status),
	}
}

func ToDomainPaymentSource(m *PaymentSourceModel) *domain.PaymentSource {
	return &domain.PaymentSource{
		ID:                 m.ID,
		ProviderCustomerPK: m.ProviderCustomerPK,
		SourceType:         domain.SourceType(m.SourceType),
		ProviderSourceID:   m.ProviderSourceID,
		Brand:              m.Brand,
		LastFour:           m.LastFour,
		ExpMonth:           m.ExpMonth,
		ExpYear:            m.ExpYear,
		Status:             domain.SourceStatus(m.Status),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func FromDomainPaymentSource(s *domain.PaymentSource) *PaymentSourceModel {
	return &PaymentSourceModel{
		ID:                 s.ID,
		ProviderCustomerPK: s.ProviderCustomerPK,
		SourceType:         string(s.SourceType),
		ProviderSourceID:   s.ProviderSourceID,
		Brand:              s.Brand,
		LastFour:           s.LastFour,
		ExpMonth:           s.ExpMonth,
		ExpYear:            s.ExpYear,
		Status:             string(s.Status),
	}
}

func strToPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func ptrToStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ToDomainOrder(m *OrderModel) *domain.Order {
	var metadata map[string]any
	if m.Metadata != "" {
		// 损坏的 metadata 不应让读取失败，保持 nil
		_ = json.Unmarshal([]byte(m.Metadata), &metadata)
	}
	return &domain.Order{
		ID:                m.ID,
		BuyerPartyID:      m.BuyerPartyID,
		SellerPartyID:     m.SellerPartyID,
		Amount:            m.Amount,
		Currency:          m.Currency,
		Status:            domain.OrderStatus(m.Status),
		Flow:              domain.OrderFlow(m.Flow),
		Provider:          m.Provider,
		Env:               domain.Environment(m.Env),
		ProviderAccountID: m.ProviderAccountID,
		ProviderPaymentID: ptrToStr(m.ProviderPaymentID),
		IdempotencyKey:    ptrToStr(m.IdempotencyKey),
		PaymentType:       m.PaymentType,
		MethodBrand:       m.MethodBrand,
		MethodLastFour:    m.MethodLastFour,
		Metadata:          metadata,
		PaidAt:            m.PaidAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func FromDomainOrder(o *domain.Order) (*OrderModel, error) {
	var metadata string
	if o.Metadata != nil {
		raw, err := json.Marshal(o.Metadata)
		if err != nil {
			return nil, err
		}
		metadata = string(raw)
	}
	return &OrderModel{
		ID:                o.ID,
		BuyerPartyID:      o.BuyerPartyID,
		SellerPartyID:     o.SellerPartyID,
		Amount:            o.Amount,
		Currency:          o.Currency,
		Status:            string(o.Status),
		Flow:              string(o.Flow),
		Provider:          o.Provider,
		Env:               string(o.Env),
		ProviderAccountID: o.ProviderAccountID,
		ProviderPaymentID: strToPtr(o.ProviderPaymentID),
		IdempotencyKey:    strToPtr(o.IdempotencyKey),
		PaymentType:       o.PaymentType,
		MethodBrand:       o.MethodBrand,
		MethodLastFour:    o.MethodLastFour,
		Metadata:          metadata,
		PaidAt:            o.PaidAt,
	}, nil
}

func ToDomainCheckoutSession(m *CheckoutSessionModel) *domain.CheckoutSession {
	return &domain.CheckoutSession{
		ID:                m.ID,
		OrderID:           m.OrderID,
		ProviderSessionID: m.ProviderSessionID,
		InitURL:           m.InitURL,
		SandboxURL:        m.SandboxURL,
		ExpiresAt:         m.ExpiresAt,
		ExpiredAt:         m.ExpiredAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func FromDomainCheckoutSession(s *domain.CheckoutSession) *CheckoutSessionModel {
	return &CheckoutSessionModel{
		ID:                s.ID,
		OrderID:           s.OrderID,
		ProviderSessionID: s.ProviderSessionID,
		InitURL:           s.InitURL,
		SandboxURL:        s.SandboxURL,
		ExpiresAt:         s.ExpiresAt,
		ExpiredAt:         s.ExpiredAt,
	}
}

func ToDomainWebhookEvent(m *WebhookEventModel) *domain.WebhookEvent {
	var headers map[string]string
	if m.Headers != "" {
		_ = json.Unmarshal([]byte(m.Headers), &headers)
	}
	return &domain.WebhookEvent{
		ID:             m.ID,
		Provider:       m.Provider,
		Env:            domain.Environment(m.Env),
		DeliveryKey:    m.DeliveryKey,
		Topic:          m.Topic,
		Action:         m.Action,
		ResourceID:     m.ResourceID,
		Headers:        headers,
		Body:           m.Body,
		SignatureValid: m.SignatureValid,
		HTTPStatusSent: m.HTTPStatusSent,
		ReceivedAt:     m.ReceivedAt,
		ProcessedAt:    m.ProcessedAt,
	}
}

func FromDomainWebhookEvent(e *domain.WebhookEvent) (*WebhookEventModel, error) {
	var headers string
	if e.Headers != nil {
		raw, err := json.Marshal(e.Headers)
		if err != nil {
			return nil, err
		}
		headers = string(raw)
	}
	return &WebhookEventModel{
		ID:             e.ID,
		Provider:       e.Provider,
		Env:            string(e.Env),
		DeliveryKey:    e.DeliveryKey,
		Topic:          e.Topic,
		Action:         e.Action,
		ResourceID:     e.ResourceID,
		Headers:        headers,
		Body:           e.Body,
		SignatureValid: e.SignatureValid,
		HTTPStatusSent: e.HTTPStatusSent,
		ReceivedAt:     e.ReceivedAt,
		ProcessedAt:    e.ProcessedAt,
	}, nil
}
