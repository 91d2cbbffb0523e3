// internal/service/payment/interfaces/checkout_handler.go
package interfaces

import (
	"net/http"

	"github.com/Kabudence/coupon-microservice/internal/service/payment/application"
)

// CheckoutSessionHandler 封装托管收银台会话的接口
type CheckoutSessionHandler struct {
	service *application.CheckoutSessionService
}

func NewCheckoutSessionHandler(service *application.CheckoutSessionService) *CheckoutSessionHandler {
	return &CheckoutSessionHandler{service: service}
}

func (h *CheckoutSessionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/checkout-sessions", h.handleCreate)
	mux.HandleFunc("PUT /api/checkout-sessions/for-order", h.handleCreateOrReplace)
	mux.HandleFunc("GET /api/checkout-sessions", h.handleList)
	mux.HandleFunc("GET /api/checkout-sessions/{id}", h.handleGet)
	mux.HandleFunc("PUT /api/checkout-sessions/by-provider-session/{sessionId}/urls", h.handleUpdateURLs)
	mux.HandleFunc("POST /api/checkout-sessions/by-provider-session/{sessionId}/expire", h.handleExpireBySession)
	mux.HandleFunc("POST /api/orders/{orderId}/checkout-sessions/expire", h.handleExpireAllForOrder)
	mux.HandleFunc("DELETE /api/checkout-sessions/{id}", h.handleDelete)
}

func (h *CheckoutSessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.CheckoutSessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	session, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *CheckoutSessionHandler) handleCreateOrReplace(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.CheckoutSessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	session, err := h.service.CreateOrReplaceForOrder(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// handleList 按 provider_session_id 精确查询，或按 order_id 列表（active=true 过滤）
func (h *CheckoutSessionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	q := r.URL.Query()

	if sessionID := q.Get("provider_session_id"); sessionID != "" {
		session, err := h.service.GetByProviderSessionID(r.Context(), sessionID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, session)
		return
	}

	orderID, err := queryID(r, "order_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	sessions, err := h.service.ListByOrder(r.Context(), orderID, q.Get("active") == "true")
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *CheckoutSessionHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	session, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *CheckoutSessionHandler) handleUpdateURLs(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.SessionURLsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	session, err := h.service.UpdateURLsByProviderSessionID(r.Context(), r.PathValue("sessionId"), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *CheckoutSessionHandler) handleExpireBySession(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	session, err := h.service.ExpireByProviderSessionID(r.Context(), r.PathValue("sessionId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *CheckoutSessionHandler) handleExpireAllForOrder(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	orderID, err := pathID(r, "orderId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	expired, err := h.service.ExpireAllForOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"expired": expired})
}

func (h *CheckoutSessionHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
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
