// internal/service/coupon/interfaces/segment_handler.go
package interfaces

import (
	"net/http"

	"github.com/Kabudence/coupon-microservice/internal/service/coupon/application"
)

// SegmentHandler 封装客群和客群价格覆盖的接口
type SegmentHandler struct {
	service *application.SegmentService
}

func NewSegmentHandler(service *application.SegmentService) *SegmentHandler {
	return &SegmentHandler{service: service}
}

func (h *SegmentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/segments", h.handleCreateSegment)
	mux.HandleFunc("GET /api/segments", h.handleListSegments)
	mux.HandleFunc("GET /api/segments/{id}", h.handleGetSegment)
	mux.HandleFunc("PUT /api/segments/{id}", h.handleUpdateSegment)
	mux.HandleFunc("DELETE /api/segments/{id}", h.handleDeleteSegment)

	mux.HandleFunc("POST /api/segment-prices", h.handleCreatePrice)
	mux.HandleFunc("PUT /api/segment-prices", h.handleUpsertPrice)
	mux.HandleFunc("GET /api/coupons/{couponId}/segment-prices", h.handleListPricesByCoupon)
	mux.HandleFunc("GET /api/segments/{id}/prices", h.handleListPricesBySegment)
	mux.HandleFunc("GET /api/coupons/{couponId}/segment-prices/{segmentId}", h.handleGetPrice)
	mux.HandleFunc("DELETE /api/coupons/{couponId}/segment-prices/{segmentId}", h.handleDeletePrice)
	mux.HandleFunc("DELETE /api/coupons/{couponId}/segment-prices", h.handleDeleteAllPrices)
}

func (h *SegmentHandler) handleCreateSegment(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.SegmentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	segment, err := h.service.CreateSegment(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, segment)
}

func (h *SegmentHandler) handleListSegments(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	segments, err := h.service.ListSegments(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, segments)
}

func (h *SegmentHandler) handleGetSegment(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	segment, err := h.service.GetSegment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, segment)
}

func (h *SegmentHandler) handleUpdateSegment(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req application.SegmentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	segment, err := h.service.UpdateSegment(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, segment)
}

func (h *SegmentHandler) handleDeleteSegment(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.service.DeleteSegment(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *SegmentHandler) handleCreatePrice(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.SegmentPriceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	price, err := h.service.CreatePrice(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, price)
}

func (h *SegmentHandler) handleUpsertPrice(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.SegmentPriceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	price, err := h.service.UpsertPrice(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, price)
}

func (h *SegmentHandler) handleListPricesByCoupon(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	couponID, err := pathID(r, "couponId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	prices, err := h.service.ListPricesByCoupon(r.Context(), couponID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prices)
}

func (h *SegmentHandler) handleListPricesBySegment(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	segmentID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	prices, err := h.service.ListPricesBySegment(r.Context(), segmentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prices)
}

func (h *SegmentHandler) handleGetPrice(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	couponID, err := pathID(r, "couponId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	segmentID, err := pathID(r, "segmentId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	price, err := h.service.GetPrice(r.Context(), couponID, segmentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, price)
}

func (h *SegmentHandler) handleDeletePrice(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	couponID, err := pathID(r, "couponId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	segmentID, err := pathID(r, "segmentId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.service.DeletePrice(r.Context(), couponID, segmentID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *SegmentHandler) handleDeleteAllPrices(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	couponID, err := pathID(r, "couponId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	removed, err := h.service.DeleteAllPricesForCoupon(r.Context(), couponID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}
