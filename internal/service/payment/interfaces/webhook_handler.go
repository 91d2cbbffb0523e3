// internal/service/payment/interfaces/webhook_handler.go
package interfaces

import (
	"io"
	"net/http"
	"strconv"

	"github.com/Kabudence/coupon-microservice/internal/service/payment/application"
)

// WebhookHandler 是渠道回调的落地入口。
// 除了请求体不是 JSON 之外，一律回 200，重投也回 200。
type WebhookHandler struct {
	service *application.WebhookService
}

func NewWebhookHandler(service *application.WebhookService) *WebhookHandler {
	return &WebhookHandler{service: service}
}

func (h *WebhookHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/webhooks/{provider}", h.handleIncoming)
	mux.HandleFunc("GET /api/webhook-events", h.handleList)
	mux.HandleFunc("GET /api/webhook-events/{id}", h.handleGet)
	mux.HandleFunc("POST /api/webhook-events/{id}/processed", h.handleMarkProcessed)
	mux.HandleFunc("PUT /api/webhook-events/{id}/signature", h.handleSetSignatureValid)
	mux.HandleFunc("DELETE /api/webhook-events/{id}", h.handleDelete)
}

func (h *WebhookHandler) handleIncoming(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	provider := r.PathValue("provider")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	headers := make(map[string]string, len(r.Header))
	for name := range r.Header {
		headers[name] = r.Header.Get(name)
	}

	event, inserted, err := h.service.RecordIncoming(r.Context(), provider, headers, body, r.URL.Query().Get("env"))
	if err != nil {
		webhookReceiptsTotal.WithLabelValues(provider, "rejected").Inc()
		writeError(w, r, err)
		return
	}

	outcome := "duplicate"
	if inserted {
		outcome = "created"
	}
	webhookReceiptsTotal.WithLabelValues(event.Provider, outcome).Inc()

	writeJSON(w, http.StatusOK, application.WebhookReceipt{OK: true, EventID: event.ID})
}

// handleList 按 delivery_key、resource_id 或 unprocessed=true 查询事件
func (h *WebhookHandler) handleList(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	q := r.URL.Query()
	provider := q.Get("provider")
	env := q.Get("env")

	if key := q.Get("delivery_key"); key != "" {
		event, err := h.service.GetByDelivery(r.Context(), provider, env, key)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, event)
		return
	}
	if resourceID := q.Get("resource_id"); resourceID != "" {
		events, err := h.service.ListByResource(r.Context(), provider, env, resourceID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, events)
		return
	}

	limit := intQuery(r, "limit", 100)
	offset := intQuery(r, "offset", 0)
	events, err := h.service.ListUnprocessed(r.Context(), provider, env, limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *WebhookHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	event, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *WebhookHandler) handleMarkProcessed(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	event, err := h.service.MarkProcessed(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// handleSetSignatureValid 接收外部校验方事后回写的签名结论
func (h *WebhookHandler) handleSetSignatureValid(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req application.SignatureVerdictRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	event, err := h.service.SetSignatureValid(r.Context(), id, req.Valid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *WebhookHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func intQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
