// internal/service/coupon/interfaces/client_handler.go
package interfaces

import (
	"net/http"

	"github.com/Kabudence/coupon-microservice/internal/service/coupon/application"
)

// ClientCouponHandler 封装客户持券的发放和核销接口
type ClientCouponHandler struct {
	service *application.ClientCouponService
}

func NewClientCouponHandler(service *application.ClientCouponService) *ClientCouponHandler {
	return &ClientCouponHandler{service: service}
}

func (h *ClientCouponHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/client-coupons", h.handleIssue)
	mux.HandleFunc("GET /api/client-coupons", h.handleList)
	mux.HandleFunc("GET /api/client-coupons/{id}", h.handleGet)
	mux.HandleFunc("GET /api/client-coupons/{id}/active", h.handleIsActive)
	mux.HandleFunc("POST /api/client-coupons/{id}/use", h.handleMarkUsed)
	mux.HandleFunc("DELETE /api/client-coupons/{id}", h.handleDelete)
}

func (h *ClientCouponHandler) handleIssue(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.ClientCouponRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	issued, err := h.service.Issue(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, issued)
}

// handleList 按 client_id 或 code 查询，active=true 时只返回当前可用的券
func (h *ClientCouponHandler) handleList(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	if code := r.URL.Query().Get("code"); code != "" {
		found, err := h.service.GetByCode(r.Context(), code)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, found)
		return
	}
	clientID, err := queryID(r, "client_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if r.URL.Query().Get("active") == "true" {
		coupons, err := h.service.ListActiveForClient(r.Context(), clientID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, coupons)
		return
	}
	coupons, err := h.service.ListByClient(r.Context(), clientID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coupons)
}

func (h *ClientCouponHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (h *ClientCouponHandler) handleIsActive(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	active, err := h.service.IsActiveNow(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"active": active})
}

func (h *ClientCouponHandler) handleMarkUsed(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	used, err := h.service.MarkUsed(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, used)
}

func (h *ClientCouponHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
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
