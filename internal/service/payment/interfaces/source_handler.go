// internal/service/payment/interfaces/source_handler.go
package interfaces

import (
	"net/http"

	"github.com/Kabudence/coupon-microservice/internal/service/payment/application"
)

// PaymentSourceHandler 封装支付手段的接口
type PaymentSourceHandler struct {
	service *application.PaymentSourceService
}

func NewPaymentSourceHandler(service *application.PaymentSourceService) *PaymentSourceHandler {
	return &PaymentSourceHandler{service: service}
}

func (h *PaymentSourceHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/payment-sources", h.handleCreate)
	mux.HandleFunc("PUT /api/payment-sources/cards", h.handleUpsertCard)
	mux.HandleFunc("PUT /api/payment-sources/wallet", h.handleUpsertWallet)
	mux.HandleFunc("GET /api/payment-sources", h.handleList)
	mux.HandleFunc("GET /api/payment-sources/{id}", h.handleGet)
	mux.HandleFunc("POST /api/payment-sources/{id}/disable", h.handleSoftDelete)
	mux.HandleFunc("DELETE /api/payment-sources/{id}", h.handleDelete)
}

func (h *PaymentSourceHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.PaymentSourceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	source, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, source)
}

func (h *PaymentSourceHandler) handleUpsertCard(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.PaymentSourceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	source, err := h.service.UpsertCard(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, source)
}

func (h *PaymentSourceHandler) handleUpsertWallet(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.PaymentSourceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	source, err := h.service.UpsertWallet(r.Context(), req.ProviderCustomerPK)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, source)
}

// handleList 按 customer 列出全部来源，cards=true 只取 active 卡，
// wallet=true 取唯一的 wallet 来源
func (h *PaymentSourceHandler) handleList(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	customerPK, err := queryID(r, "provider_customer_pk")
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	if q.Get("wallet") == "true" {
		source, err := h.service.GetWallet(r.Context(), customerPK)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, source)
		return
	}
	if q.Get("cards") == "true" {
		sources, err := h.service.ListActiveCards(r.Context(), customerPK)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, sources)
		return
	}
	sources, err := h.service.ListByCustomer(r.Context(), customerPK)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sources)
}

func (h *PaymentSourceHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	source, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, source)
}

func (h *PaymentSourceHandler) handleSoftDelete(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	source, err := h.service.SoftDelete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, source)
}

func (h *PaymentSourceHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
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
