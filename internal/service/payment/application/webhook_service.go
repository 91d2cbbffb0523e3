// internal/service/payment/application/webhook_service.go
package application

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kabudence/coupon-microservice/internal/pkg/logger"
	"github.com/Kabudence/coupon-microservice/internal/service/payment/domain"
)

// WebhookService 实现回调的幂等落库：同一个投递无论重试多少次都只有一行，
// 渠道永远拿到 200。
type WebhookService struct {
	repo      domain.WebhookEventRepository
	publisher domain.WebhookPublisher
	// secrets 按 provider 配置 HMAC 校验密钥，缺省不校验
	secrets map[string]string
	tracer  trace.Tracer
}

func NewWebhookService(repo domain.WebhookEventRepository, publisher domain.WebhookPublisher, secrets map[string]string, tracer trace.Tracer) *WebhookService {
	return &WebhookService{repo: repo, publisher: publisher, secrets: secrets, tracer: tracer}
}

// RecordIncoming 接收一次渠道投递。重复投递命中唯一键时返回已有行的 id，
// 不报错、不落新行。
func (s *WebhookService) RecordIncoming(ctx context.Context, provider string, headers map[string]string, body []byte, envOverride string) (*domain.WebhookEvent, bool, error) {
	ctx, span := s.tracer.Start(ctx, "service.RecordWebhook")
	defer span.End()

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		err = errors.Wrap(domain.ErrInvalidArgument, "request body must be a JSON object")
		span.RecordError(err)
		return nil, false, err
	}

	env, err := domain.DeriveEnvironment(payload, envOverride)
	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}

	event, err := domain.NewWebhookEvent(provider, env, domain.DeriveDeliveryKey(headers, body))
	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}
	event.Topic, event.Action, event.ResourceID = domain.ExtractEventFields(payload)
	event.Headers = headers
	event.Body = body
	if secret, ok := s.secrets[event.Provider]; ok {
		event.SignatureValid = domain.VerifySignature(secret, body, headersLookup(headers, "X-Signature"))
	}

	stored, inserted, err := s.repo.EnsureReceived(ctx, event)
	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}

	span.SetAttributes(
		attribute.Int64("webhook.event_id", stored.ID),
		attribute.Bool("webhook.inserted", inserted),
	)

	// 记录回给渠道的状态码，不影响事件的逻辑状态
	if err := s.repo.SetHTTPStatus(ctx, stored.ID, http.StatusOK); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Int64("event_id", stored.ID).Msg("failed to record http status")
	}

	if inserted && s.publisher != nil {
		if err := s.publisher.PublishReceived(ctx, stored); err != nil {
			// 发布失败不影响落库结果，漏掉的行由 worker 的兜底扫描补齐
			logger.Ctx(ctx).Warn().Err(err).Int64("event_id", stored.ID).Msg("⚠️ failed to publish webhook event")
		}
	}

	logger.Ctx(ctx).Info().
		Str("provider", stored.Provider).
		Str("env", string(stored.Env)).
		Str("delivery_key", stored.DeliveryKey).
		Bool("inserted", inserted).
		Msg("webhook recorded")
	return stored, inserted, nil
}

func headersLookup(headers map[string]string, name string) string {
	for k, v := range headers {
		if http.CanonicalHeaderKey(k) == http.CanonicalHeaderKey(name) {
			return v
		}
	}
	return ""
}

func (s *WebhookService) Get(ctx context.Context, id int64) (*domain.WebhookEvent, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *WebhookService) GetByDelivery(ctx context.Context, provider, env, deliveryKey string) (*domain.WebhookEvent, error) {
	environment, err := domain.ParseEnvironment(env)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByDelivery(ctx, provider, environment, deliveryKey)
}

func (s *WebhookService) ListByResource(ctx context.Context, provider, env, resourceID string) ([]*domain.WebhookEvent, error) {
	environment, err := domain.ParseEnvironment(env)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByResource(ctx, provider, environment, resourceID)
}

// ListUnprocessed 供 worker 按接收顺序排空未处理的事件
func (s *WebhookService) ListUnprocessed(ctx context.Context, provider, env string, limit, offset int) ([]*domain.WebhookEvent, error) {
	var environment domain.Environment
	if env != "" {
		parsed, err := domain.ParseEnvironment(env)
		if err != nil {
			return nil, err
		}
		environment = parsed
	}
	return s.repo.ListUnprocessed(ctx, provider, environment, limit, offset)
}

func (s *WebhookService) CountUnprocessed(ctx context.Context) (int64, error) {
	return s.repo.CountUnprocessed(ctx)
}

// SetSignatureValid 存储外部校验方对某个事件的签名结论，
// 本服务只负责记账，不依据结论拒收或重放。
func (s *WebhookService) SetSignatureValid(ctx context.Context, id int64, valid bool) (*domain.WebhookEvent, error) {
	if err := s.repo.SetSignatureValid(ctx, id, valid); err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info().Int64("event_id", id).Bool("valid", valid).Msg("webhook signature verdict recorded")
	return s.repo.FindByID(ctx, id)
}

// MarkProcessed 异步处理完成后的状态推进，首个时间戳不被覆盖
func (s *WebhookService) MarkProcessed(ctx context.Context, id int64) (*domain.WebhookEvent, error) {
	ctx, span := s.tracer.Start(ctx, "service.MarkWebhookProcessed")
	defer span.End()

	return s.repo.MarkProcessed(ctx, id, time.Now().UTC())
}

// Delete 仅供管理操作使用
func (s *WebhookService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
