package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Kabudence/coupon-microservice/internal/service/payment/application"
	"github.com/Kabudence/coupon-microservice/internal/service/payment/domain"
)

type stubWebhookRepo struct {
	rows   map[string]*domain.WebhookEvent
	nextID int64
}

func newStubWebhookRepo() *stubWebhookRepo {
	return &stubWebhookRepo{rows: make(map[string]*domain.WebhookEvent), nextID: 1}
}

func (r *stubWebhookRepo) key(provider string, env domain.Environment, deliveryKey string) string {
	return provider + "|" + string(env) + "|" + deliveryKey
}

func (r *stubWebhookRepo) EnsureReceived(ctx context.Context, event *domain.WebhookEvent) (*domain.WebhookEvent, bool, error) {
	k := r.key(event.Provider, event.Env, event.DeliveryKey)
	if existing, ok := r.rows[k]; ok {
		return existing, false, nil
	}
	event.ID = r.nextID
	r.nextID++
	r.rows[k] = event
	return event, true, nil
}

func (r *stubWebhookRepo) Create(ctx context.Context, event *domain.WebhookEvent) error {
	return domain.ErrDuplicate
}

func (r *stubWebhookRepo) FindByID(ctx context.Context, id int64) (*domain.WebhookEvent, error) {
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubWebhookRepo) FindByDelivery(ctx context.Context, provider string, env domain.Environment, deliveryKey string) (*domain.WebhookEvent, error) {
	if row, ok := r.rows[r.key(provider, env, deliveryKey)]; ok {
		return row, nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubWebhookRepo) ListByResource(ctx context.Context, provider string, env domain.Environment, resourceID string) ([]*domain.WebhookEvent, error) {
	return nil, nil
}

func (r *stubWebhookRepo) ListUnprocessed(ctx context.Context, provider string, env domain.Environment, limit, offset int) ([]*domain.WebhookEvent, error) {
	return nil, nil
}

func (r *stubWebhookRepo) CountUnprocessed(ctx context.Context) (int64, error) { return 0, nil }

func (r *stubWebhookRepo) SetHTTPStatus(ctx context.Context, id int64, code int) error { return nil }

func (r *stubWebhookRepo) SetSignatureValid(ctx context.Context, id int64, valid bool) error {
	row, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	row.SignatureValid = &valid
	return nil
}

func (r *stubWebhookRepo) MarkProcessed(ctx context.Context, id int64, at time.Time) (*domain.WebhookEvent, error) {
	row, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	row.MarkProcessed(at)
	return row, nil
}

func (r *stubWebhookRepo) Delete(ctx context.Context, id int64) error { return nil }

func newWebhookTestMux(t *testing.T) (*http.ServeMux, *stubWebhookRepo) {
	t.Helper()
	repo := newStubWebhookRepo()
	svc := application.NewWebhookService(repo, nil, nil, noop.NewTracerProvider().Tracer("test"))
	mux := http.NewServeMux()
	NewWebhookHandler(svc).RegisterRoutes(mux)
	return mux, repo
}

func postWebhook(mux *http.ServeMux, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/mercadopago", bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestWebhookEndpointAlwaysAcksDuplicates(t *testing.T) {
	mux, repo := newWebhookTestMux(t)
	body := []byte(`{"type":"payment","data":{"id":"123"}}`)
	headers := map[string]string{"X-Request-Id": "req-1"}

	first := postWebhook(mux, body, headers)
	require.Equal(t, http.StatusOK, first.Code)
	var firstReceipt application.WebhookReceipt
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstReceipt))
	assert.True(t, firstReceipt.OK)
	assert.NotZero(t, firstReceipt.EventID)

	second := postWebhook(mux, body, headers)
	require.Equal(t, http.StatusOK, second.Code)
	var secondReceipt application.WebhookReceipt
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondReceipt))
	assert.Equal(t, firstReceipt.EventID, secondReceipt.EventID)

	assert.Len(t, repo.rows, 1)
}

func TestWebhookEndpointRejectsNonJSON(t *testing.T) {
	mux, _ := newWebhookTestMux(t)

	rec := postWebhook(mux, []byte("not json"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookEndpointEnvQueryOverride(t *testing.T) {
	mux, repo := newWebhookTestMux(t)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/mercadopago?env=prod",
		bytes.NewReader([]byte(`{"id":1}`)))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, repo.rows, 1)
	for _, row := range repo.rows {
		assert.Equal(t, domain.EnvProd, row.Env)
	}
}

func TestWebhookSignatureVerdictEndpoint(t *testing.T) {
	mux, _ := newWebhookTestMux(t)
	first := postWebhook(mux, []byte(`{"id":1}`), map[string]string{"X-Request-Id": "req-7"})
	require.Equal(t, http.StatusOK, first.Code)

	req := httptest.NewRequest(http.MethodPut, "/api/webhook-events/1/signature",
		bytes.NewReader([]byte(`{"valid":true}`)))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var event domain.WebhookEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &event))
	require.NotNil(t, event.SignatureValid)
	assert.True(t, *event.SignatureValid)

	t.Run("unknown event is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/webhook-events/99/signature",
			bytes.NewReader([]byte(`{"valid":false}`)))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestWebhookEventLookupByID(t *testing.T) {
	mux, _ := newWebhookTestMux(t)
	first := postWebhook(mux, []byte(`{"id":1}`), map[string]string{"X-Request-Id": "req-9"})
	require.Equal(t, http.StatusOK, first.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/webhook-events/1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var event domain.WebhookEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &event))
	assert.Equal(t, "req-9", event.DeliveryKey)
}
