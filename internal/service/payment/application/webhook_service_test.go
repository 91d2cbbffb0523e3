package application

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Kabudence/coupon-microservice/internal/service/payment/domain"
)

// memWebhookRepo 在内存里复刻 (provider, env, delivery_key) 唯一键语义
type memWebhookRepo struct {
	rows   []*domain.WebhookEvent
	nextID int64
}

func newMemWebhookRepo() *memWebhookRepo { return &memWebhookRepo{nextID: 1} }

func (r *memWebhookRepo) find(provider string, env domain.Environment, key string) *domain.WebhookEvent {
	for _, row := range r.rows {
		if row.Provider == provider && row.Env == env && row.DeliveryKey == key {
			return row
		}
	}
	return nil
}

func (r *memWebhookRepo) EnsureReceived(ctx context.Context, event *domain.WebhookEvent) (*domain.WebhookEvent, bool, error) {
	if existing := r.find(event.Provider, event.Env, event.DeliveryKey); existing != nil {
		return existing, false, nil
	}
	event.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, event)
	return event, true, nil
}

func (r *memWebhookRepo) Create(ctx context.Context, event *domain.WebhookEvent) error {
	if r.find(event.Provider, event.Env, event.DeliveryKey) != nil {
		return domain.ErrDuplicate
	}
	event.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, event)
	return nil
}

func (r *memWebhookRepo) FindByID(ctx context.Context, id int64) (*domain.WebhookEvent, error) {
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memWebhookRepo) FindByDelivery(ctx context.Context, provider string, env domain.Environment, key string) (*domain.WebhookEvent, error) {
	if row := r.find(provider, env, key); row != nil {
		return row, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memWebhookRepo) ListByResource(ctx context.Context, provider string, env domain.Environment, resourceID string) ([]*domain.WebhookEvent, error) {
	var out []*domain.WebhookEvent
	for _, row := range r.rows {
		if row.Provider == provider && row.Env == env && row.ResourceID == resourceID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memWebhookRepo) ListUnprocessed(ctx context.Context, provider string, env domain.Environment, limit, offset int) ([]*domain.WebhookEvent, error) {
	var matched []*domain.WebhookEvent
	for _, row := range r.rows {
		if row.ProcessedAt != nil {
			continue
		}
		if provider != "" && row.Provider != provider {
			continue
		}
		if env != "" && row.Env != env {
			continue
		}
		matched = append(matched, row)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ReceivedAt.Before(matched[j].ReceivedAt)
	})
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *memWebhookRepo) CountUnprocessed(ctx context.Context) (int64, error) {
	var n int64
	for _, row := range r.rows {
		if row.ProcessedAt == nil {
			n++
		}
	}
	return n, nil
}

func (r *memWebhookRepo) SetHTTPStatus(ctx context.Context, id int64, code int) error {
	row, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	row.HTTPStatusSent = code
	return nil
}

func (r *memWebhookRepo) SetSignatureValid(ctx context.Context, id int64, valid bool) error {
	row, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	row.SignatureValid = &valid
	return nil
}

func (r *memWebhookRepo) MarkProcessed(ctx context.Context, id int64, at time.Time) (*domain.WebhookEvent, error) {
	row, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	row.MarkProcessed(at)
	return row, nil
}

func (r *memWebhookRepo) Delete(ctx context.Context, id int64) error { return nil }

// recordingPublisher 记录每次发布的事件 id
type recordingPublisher struct {
	published []int64
	fail      bool
}

func (p *recordingPublisher) PublishReceived(ctx context.Context, event *domain.WebhookEvent) error {
	if p.fail {
		return assert.AnError
	}
	p.published = append(p.published, event.ID)
	return nil
}

func newWebhookService(repo domain.WebhookEventRepository, pub domain.WebhookPublisher, secrets map[string]string) *WebhookService {
	return NewWebhookService(repo, pub, secrets, noop.NewTracerProvider().Tracer("test"))
}

func TestRecordIncomingIdempotent(t *testing.T) {
	repo := newMemWebhookRepo()
	pub := &recordingPublisher{}
	svc := newWebhookService(repo, pub, nil)

	headers := map[string]string{"X-Request-Id": "req-1"}
	body := []byte(`{"type":"payment","action":"payment.updated","data":{"id":"123"},"live_mode":true}`)

	first, inserted, err := svc.RecordIncoming(context.Background(), "mercadopago", headers, body, "")
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, domain.EnvProd, first.Env)
	assert.Equal(t, "payment", first.Topic)
	assert.Equal(t, "123", first.ResourceID)
	assert.Equal(t, 200, first.HTTPStatusSent)

	// 同一个投递重试，返回同一行
	second, inserted, err := svc.RecordIncoming(context.Background(), "mercadopago", headers, body, "")
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.rows, 1)

	// 只有真正落库的那次才会发布
	assert.Equal(t, []int64{first.ID}, pub.published)
}

func TestRecordIncomingRejectsNonJSON(t *testing.T) {
	svc := newWebhookService(newMemWebhookRepo(), nil, nil)

	_, _, err := svc.RecordIncoming(context.Background(), "mercadopago", nil, []byte("not json"), "")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestRecordIncomingEnvOverride(t *testing.T) {
	svc := newWebhookService(newMemWebhookRepo(), nil, nil)

	stored, _, err := svc.RecordIncoming(context.Background(), "mercadopago", nil, []byte(`{"live_mode":true}`), "test")
	require.NoError(t, err)
	assert.Equal(t, domain.EnvTest, stored.Env)
}

func TestRecordIncomingSignature(t *testing.T) {
	secrets := map[string]string{"mercadopago": "shh"}
	body := []byte(`{"id":1}`)

	t.Run("invalid signature is stored, not rejected", func(t *testing.T) {
		svc := newWebhookService(newMemWebhookRepo(), nil, secrets)
		stored, _, err := svc.RecordIncoming(context.Background(), "mercadopago",
			map[string]string{"X-Signature": "sha256=deadbeef"}, body, "")
		require.NoError(t, err)
		require.NotNil(t, stored.SignatureValid)
		assert.False(t, *stored.SignatureValid)
	})

	t.Run("provider without secret stays unverified", func(t *testing.T) {
		svc := newWebhookService(newMemWebhookRepo(), nil, secrets)
		stored, _, err := svc.RecordIncoming(context.Background(), "other", nil, body, "")
		require.NoError(t, err)
		assert.Nil(t, stored.SignatureValid)
	})
}

func TestRecordIncomingPublishFailureTolerated(t *testing.T) {
	repo := newMemWebhookRepo()
	svc := newWebhookService(repo, &recordingPublisher{fail: true}, nil)

	stored, inserted, err := svc.RecordIncoming(context.Background(), "mercadopago", nil, []byte(`{"id":1}`), "")
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NotZero(t, stored.ID)
}

func TestSetSignatureValidAfterTheFact(t *testing.T) {
	repo := newMemWebhookRepo()
	svc := newWebhookService(repo, nil, nil)

	// 未配置密钥时落库的事件没有签名结论
	stored, _, err := svc.RecordIncoming(context.Background(), "mercadopago", nil, []byte(`{"id":1}`), "")
	require.NoError(t, err)
	require.Nil(t, stored.SignatureValid)

	updated, err := svc.SetSignatureValid(context.Background(), stored.ID, false)
	require.NoError(t, err)
	require.NotNil(t, updated.SignatureValid)
	assert.False(t, *updated.SignatureValid)

	// 结论可以被改写，重复回写不报错
	updated, err = svc.SetSignatureValid(context.Background(), stored.ID, true)
	require.NoError(t, err)
	assert.True(t, *updated.SignatureValid)

	_, err = svc.SetSignatureValid(context.Background(), 9999, true)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func unprocessedEvent(t *testing.T, repo *memWebhookRepo, provider, deliveryKey string, env domain.Environment, receivedAt time.Time) *domain.WebhookEvent {
	t.Helper()
	event, err := domain.NewWebhookEvent(provider, env, deliveryKey)
	require.NoError(t, err)
	event.ReceivedAt = receivedAt
	require.NoError(t, repo.Create(context.Background(), event))
	return event
}

func TestListUnprocessedOrderingAndPaging(t *testing.T) {
	repo := newMemWebhookRepo()
	svc := newWebhookService(repo, nil, nil)
	base := time.Now().UTC()

	// 有意乱序插入，接收时间才是排序依据
	third := unprocessedEvent(t, repo, "mercadopago", "k-3", domain.EnvTest, base.Add(2*time.Minute))
	first := unprocessedEvent(t, repo, "mercadopago", "k-1", domain.EnvTest, base)
	second := unprocessedEvent(t, repo, "mercadopago", "k-2", domain.EnvTest, base.Add(time.Minute))
	unprocessedEvent(t, repo, "stripe", "k-4", domain.EnvProd, base.Add(30*time.Second))

	t.Run("oldest first with provider and env filter", func(t *testing.T) {
		events, err := svc.ListUnprocessed(context.Background(), "mercadopago", "test", 10, 0)
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, first.ID, events[0].ID)
		assert.Equal(t, second.ID, events[1].ID)
		assert.Equal(t, third.ID, events[2].ID)
	})

	t.Run("limit and offset page through the backlog", func(t *testing.T) {
		page, err := svc.ListUnprocessed(context.Background(), "mercadopago", "test", 2, 0)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, first.ID, page[0].ID)

		page, err = svc.ListUnprocessed(context.Background(), "mercadopago", "test", 2, 2)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, third.ID, page[0].ID)

		page, err = svc.ListUnprocessed(context.Background(), "mercadopago", "test", 2, 5)
		require.NoError(t, err)
		assert.Empty(t, page)
	})

	t.Run("processed rows drop out", func(t *testing.T) {
		_, err := svc.MarkProcessed(context.Background(), first.ID)
		require.NoError(t, err)
		events, err := svc.ListUnprocessed(context.Background(), "mercadopago", "test", 10, 0)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, second.ID, events[0].ID)
	})
}

func TestMarkProcessedKeepsFirstTimestamp(t *testing.T) {
	repo := newMemWebhookRepo()
	svc := newWebhookService(repo, nil, nil)

	stored, _, err := svc.RecordIncoming(context.Background(), "mercadopago", nil, []byte(`{"id":1}`), "")
	require.NoError(t, err)

	first, err := svc.MarkProcessed(context.Background(), stored.ID)
	require.NoError(t, err)
	require.NotNil(t, first.ProcessedAt)

	again, err := svc.MarkProcessed(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, *first.ProcessedAt, *again.ProcessedAt)

	n, err := svc.CountUnprocessed(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
