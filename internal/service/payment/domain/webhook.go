// internal/service/payment/domain/webhook.go
package domain

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// deliveryKeyHeaders 按偏好顺序列出渠道会携带的投递标识头
var deliveryKeyHeaders = []string{
	"X-Request-Id",
	"X-Mercadopago-Delivery-Id",
	"X-Delivery-Id",
	"X-Idempotency-Key",
}

// WebhookEvent 是渠道回调的落库审计记录，
// (provider, env, delivery_key) 三元组唯一，每个投递最多一行。
type WebhookEvent struct {
	ID             int64             `json:"id"`
	Provider       string            `json:"provider"`
	Env            Environment       `json:"env"`
	DeliveryKey    string            `json:"delivery_key"`
	Topic          string            `json:"topic,omitempty"`
	Action         string            `json:"action,omitempty"`
	ResourceID     string            `json:"resource_id,omitempty"`
	Headers        map[string]string `json:"headers,omitempty"`
	Body           []byte            `json:"body,omitempty"`
	SignatureValid *bool             `json:"signature_valid,omitempty"`
	HTTPStatusSent int               `json:"http_status_sent,omitempty"`
	ReceivedAt     time.Time         `json:"received_at"`
	ProcessedAt    *time.Time        `json:"processed_at,omitempty"`
}

func NewWebhookEvent(provider string, env Environment, deliveryKey string) (*WebhookEvent, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "provider is required")
	}
	deliveryKey = strings.TrimSpace(deliveryKey)
	if deliveryKey == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "delivery_key is required")
	}
	return &WebhookEvent{
		Provider:    provider,
		Env:         env,
		DeliveryKey: deliveryKey,
		ReceivedAt:  time.Now().UTC(),
	}, nil
}

// MarkProcessed 只在第一次调用时盖处理时间戳
func (e *WebhookEvent) MarkProcessed(at time.Time) bool {
	if e.ProcessedAt != nil {
		return false
	}
	e.ProcessedAt = &at
	return true
}

// DeriveDeliveryKey 优先取渠道提供的投递标识头，
// 否则退化为请求体的内容哈希。字节相同且无标识头的两次投递
// 会折叠成同一个键，这是有意偏向幂等的取舍。
func DeriveDeliveryKey(headers map[string]string, body []byte) string {
	for _, name := range deliveryKeyHeaders {
		if v := lookupHeader(headers, name); v != "" {
			return v
		}
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func lookupHeader(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// DeriveEnvironment 从 payload 的 live_mode 推导环境，
// override 非空时（测试场景）覆盖推导结果。
func DeriveEnvironment(payload map[string]any, override string) (Environment, error) {
	if override != "" {
		return ParseEnvironment(override)
	}
	if live, ok := payload["live_mode"].(bool); ok && live {
		return EnvProd, nil
	}
	return EnvTest, nil
}

// ExtractEventFields 从常见的 payload 形状里抽取主题、动作和资源 id：
// type/topic、action、data.id/resource.id/顶层 id。
func ExtractEventFields(payload map[string]any) (topic, action, resourceID string) {
	if v, ok := payload["type"].(string); ok && v != "" {
		topic = v
	} else if v, ok := payload["topic"].(string); ok {
		topic = v
	}
	if v, ok := payload["action"].(string); ok {
		action = v
	}
	resourceID = extractResourceID(payload)
	return topic, action, resourceID
}

func extractResourceID(payload map[string]any) string {
	for _, key := range []string{"data", "resource"} {
		if nested, ok := payload[key].(map[string]any); ok {
			if id := stringifyID(nested["id"]); id != "" {
				return id
			}
		}
	}
	return stringifyID(payload["id"])
}

func stringifyID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		// JSON 数字统一落成十进制文本
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}

// VerifySignature 校验 X-Signature 风格的 "sha256=<hex>" HMAC 签名。
// 未配置密钥时返回 nil 表示未校验。
func VerifySignature(secret string, body []byte, signatureHeader string) *bool {
	if secret == "" {
		return nil
	}
	expected := strings.TrimPrefix(strings.TrimSpace(signatureHeader), "sha256=")
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	computed := hex.EncodeToString(mac.Sum(nil))
	valid := expected != "" && hmac.Equal([]byte(computed), []byte(strings.ToLower(expected)))
	return &valid
}
