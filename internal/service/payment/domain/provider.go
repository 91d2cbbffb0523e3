// internal/service/payment/domain/provider.go
package domain

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Environment 区分支付渠道的沙箱环境和生产环境
type Environment string

const (
	EnvTest Environment = "test"
	EnvProd Environment = "prod"
)

func ParseEnvironment(raw string) (Environment, error) {
	switch Environment(strings.ToLower(strings.TrimSpace(raw))) {
	case EnvTest:
		return EnvTest, nil
	case EnvProd:
		return EnvProd, nil
	default:
		return "", errors.Wrapf(ErrInvalidArgument, "unknown environment %q", raw)
	}
}

type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountDisabled AccountStatus = "disabled"
)

// ProviderAccount 记录商家在某个支付渠道某个环境下的收款账号，
// (provider, env, provider_account_id) 唯一。
type ProviderAccount struct {
	ID                int64         `json:"id"`
	PartyID           int64         `json:"party_id"`
	Provider          string        `json:"provider"`
	Env               Environment   `json:"env"`
	ProviderAccountID string        `json:"provider_account_id"`
	PublicKey         string        `json:"public_key,omitempty"`
	SecretJSONEnc     string        `json:"-"`
	Status            AccountStatus `json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

func NewProviderAccount(partyID int64, provider, env, providerAccountID string) (*ProviderAccount, error) {
	if partyID <= 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "party_id must be positive")
	}
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "provider is required")
	}
	environment, err := ParseEnvironment(env)
	if err != nil {
		return nil, err
	}
	providerAccountID = strings.TrimSpace(providerAccountID)
	if providerAccountID == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "provider_account_id is required")
	}
	return &ProviderAccount{
		PartyID:           partyID,
		Provider:          provider,
		Env:               environment,
		ProviderAccountID: providerAccountID,
		Status:            AccountActive,
	}, nil
}

func (a *ProviderAccount) Enable()  { a.Status = AccountActive }
func (a *ProviderAccount) Disable() { a.Status = AccountDisabled }

// RotateSecrets 整体替换账号的密钥材料
func (a *ProviderAccount) RotateSecrets(publicKey, secretJSONEnc string) error {
	if strings.TrimSpace(secretJSONEnc) == "" {
		return errors.Wrap(ErrInvalidArgument, "secret payload is required")
	}
	a.PublicKey = strings.TrimSpace(publicKey)
	a.SecretJSONEnc = secretJSONEnc
	return nil
}

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerDisabled CustomerStatus = "disabled"
)

// ProviderCustomer 是付款方在支付渠道侧的镜像，
// 每个 (party_id, provider, env) 最多一行。
type ProviderCustomer struct {
	ID                 int64          `json:"id"`
	PartyID            int64          `json:"party_id"`
	Provider           string         `json:"provider"`
	Env                Environment    `json:"env"`
	ProviderCustomerID string         `json:"provider_customer_id"`
	Email              string         `json:"email,omitempty"`
	Status             CustomerStatus `json:"status"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func NewProviderCustomer(partyID int64, provider, env, providerCustomerID, email string) (*ProviderCustomer, error) {
	if partyID <= 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "party_id must be positive")
	}
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "provider is required")
	}
	environment, err := ParseEnvironment(env)
	if err != nil {
		return nil, err
	}
	providerCustomerID = strings.TrimSpace(providerCustomerID)
	if providerCustomerID == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "provider_customer_id is required")
	}
	return &ProviderCustomer{
		PartyID:            partyID,
		Provider:           provider,
		Env:                environment,
		ProviderCustomerID: providerCustomerID,
		Email:              strings.TrimSpace(email),
		Status:             CustomerActive,
	}, nil
}

func (c *ProviderCustomer) SetStatus(raw string) error {
	switch CustomerStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case CustomerActive:
		c.Status = CustomerActive
	case CustomerDisabled:
		c.Status = CustomerDisabled
	default:
		return errors.Wrapf(ErrInvalidArgument, "unknown customer status %q", raw)
	}
	return nil
}
