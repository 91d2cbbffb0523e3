// internal/service/coupon/interfaces/trigger_handler.go
package interfaces

import (
	"net/http"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/Kabudence/coupon-microservice/internal/service/coupon/application"
	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// TriggerMappingHandler 封装触发映射管理接口
type TriggerMappingHandler struct {
	service *application.TriggerMappingService
}

func NewTriggerMappingHandler(service *application.TriggerMappingService) *TriggerMappingHandler {
	return &TriggerMappingHandler{service: service}
}

func (h *TriggerMappingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/trigger-mappings", h.handleAdd)
	mux.HandleFunc("POST /api/trigger-mappings/bulk", h.handleBulkAdd)
	mux.HandleFunc("GET /api/trigger-mappings", h.handleList)
	mux.HandleFunc("GET /api/trigger-mappings/{id}", h.handleGet)
	mux.HandleFunc("DELETE /api/trigger-mappings/{id}", h.handleRemove)
	mux.HandleFunc("DELETE /api/coupons/{couponId}/trigger-mappings", h.handleRemoveAllForCoupon)
}

func extractCtx(r *http.Request) *http.Request {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	return r.WithContext(ctx)
}

func (h *TriggerMappingHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)

	var req application.TriggerMappingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.service.Add(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *TriggerMappingHandler) handleBulkAdd(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)

	var req struct {
		Mappings []*application.TriggerMappingRequest `json:"mappings"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.service.BulkAdd(r.Context(), req.Mappings)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleList 支持 ?coupon_id= 或 ?trigger_product_id= 两种过滤维度
func (h *TriggerMappingHandler) handleList(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)

	if r.URL.Query().Get("coupon_id") != "" {
		couponID, err := queryID(r, "coupon_id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		resp, err := h.service.ListByCoupon(r.Context(), couponID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}
	if r.URL.Query().Get("trigger_product_id") != "" {
		triggerID, err := queryID(r, "trigger_product_id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		resp, err := h.service.ListByTrigger(r.Context(), triggerID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}
	writeError(w, r, errors.Wrap(domain.ErrInvalidArgument, "coupon_id or trigger_product_id query parameter is required"))
}

func (h *TriggerMappingHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TriggerMappingHandler) handleRemove(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.service.Remove(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *TriggerMappingHandler) handleRemoveAllForCoupon(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)

	couponID, err := pathID(r, "couponId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	removed, err := h.service.RemoveAllForCoupon(r.Context(), couponID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}
