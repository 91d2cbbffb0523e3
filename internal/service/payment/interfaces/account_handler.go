// internal/service/payment/interfaces/account_handler.go
package interfaces

import (
	"net/http"

	"github.com/Kabudence/coupon-microservice/internal/service/payment/application"
)

// ProviderAccountHandler 封装商家渠道账号的接口
type ProviderAccountHandler struct {
	service *application.ProviderAccountService
}

func NewProviderAccountHandler(service *application.ProviderAccountService) *ProviderAccountHandler {
	return &ProviderAccountHandler{service: service}
}

func (h *ProviderAccountHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/provider-accounts", h.handleCreate)
	mux.HandleFunc("PUT /api/provider-accounts/by-unique", h.handleUpsert)
	mux.HandleFunc("GET /api/provider-accounts", h.handleList)
	mux.HandleFunc("GET /api/provider-accounts/count", h.handleCount)
	mux.HandleFunc("GET /api/provider-accounts/{id}", h.handleGet)
	mux.HandleFunc("POST /api/provider-accounts/{id}/enable", h.handleEnable)
	mux.HandleFunc("POST /api/provider-accounts/{id}/disable", h.handleDisable)
	mux.HandleFunc("POST /api/provider-accounts/{id}/rotate-secrets", h.handleRotateSecrets)
	mux.HandleFunc("DELETE /api/provider-accounts/{id}", h.handleDelete)
}

func (h *ProviderAccountHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.ProviderAccountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	account, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *ProviderAccountHandler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.ProviderAccountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	account, err := h.service.UpsertByUnique(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// handleList 支持按唯一键、按商家（可带 env）、或按商家+渠道取 active 账号
func (h *ProviderAccountHandler) handleList(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	q := r.URL.Query()

	if providerAccountID := q.Get("provider_account_id"); providerAccountID != "" {
		account, err := h.service.GetByUnique(r.Context(), q.Get("provider"), q.Get("env"), providerAccountID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, account)
		return
	}

	partyID, err := queryID(r, "party_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if q.Get("active") == "true" {
		account, err := h.service.FindActiveForParty(r.Context(), partyID, q.Get("provider"), q.Get("env"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, account)
		return
	}
	if env := q.Get("env"); env != "" {
		accounts, err := h.service.ListByPartyEnv(r.Context(), partyID, env)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, accounts)
		return
	}
	accounts, err := h.service.ListByParty(r.Context(), partyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *ProviderAccountHandler) handleCount(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	q := r.URL.Query()
	count, err := h.service.CountByProviderEnv(r.Context(), q.Get("provider"), q.Get("env"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *ProviderAccountHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	account, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *ProviderAccountHandler) handleEnable(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	account, err := h.service.Enable(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *ProviderAccountHandler) handleDisable(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	account, err := h.service.Disable(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *ProviderAccountHandler) handleRotateSecrets(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req application.RotateSecretsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	account, err := h.service.RotateSecrets(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *ProviderAccountHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
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

// ProviderCustomerHandler 封装付款方渠道镜像的接口
type ProviderCustomerHandler struct {
	service *application.ProviderCustomerService
}

func NewProviderCustomerHandler(service *application.ProviderCustomerService) *ProviderCustomerHandler {
	return &ProviderCustomerHandler{service: service}
}

func (h *ProviderCustomerHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/provider-customers", h.handleCreate)
	mux.HandleFunc("PUT /api/provider-customers/by-party", h.handleUpsert)
	mux.HandleFunc("GET /api/provider-customers", h.handleList)
	mux.HandleFunc("GET /api/provider-customers/{id}", h.handleGet)
	mux.HandleFunc("PUT /api/provider-customers/{id}/status", h.handleSetStatus)
	mux.HandleFunc("DELETE /api/provider-customers/{id}", h.handleDelete)
}

func (h *ProviderCustomerHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.ProviderCustomerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	customer, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *ProviderCustomerHandler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.ProviderCustomerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	customer, err := h.service.UpsertByParty(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// handleList 支持按 (party, provider, env)、按渠道外部 id 或按 party 列表
func (h *ProviderCustomerHandler) handleList(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	q := r.URL.Query()

	if externalID := q.Get("provider_customer_id"); externalID != "" {
		customer, err := h.service.GetByProviderExternalID(r.Context(), q.Get("provider"), q.Get("env"), externalID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, customer)
		return
	}

	partyID, err := queryID(r, "party_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if provider := q.Get("provider"); provider != "" {
		customer, err := h.service.GetByPartyProviderEnv(r.Context(), partyID, provider, q.Get("env"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, customer)
		return
	}
	customers, err := h.service.ListByParty(r.Context(), partyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *ProviderCustomerHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	customer, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *ProviderCustomerHandler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	customer, err := h.service.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *ProviderCustomerHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
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
