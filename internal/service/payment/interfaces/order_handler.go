// internal/service/payment/interfaces/order_handler.go
package interfaces

import (
	"net/http"

	"github.com/Kabudence/coupon-microservice/internal/service/payment/application"
)

// OrderHandler 封装支付订单的接口
type OrderHandler struct {
	service *application.OrderService
}

func NewOrderHandler(service *application.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/orders", h.handleCreate)
	mux.HandleFunc("GET /api/orders", h.handleList)
	mux.HandleFunc("GET /api/orders/{id}", h.handleGet)
	mux.HandleFunc("POST /api/orders/{id}/checkout-context", h.handleSetCheckoutContext)
	mux.HandleFunc("POST /api/orders/{id}/paid", h.handleMarkPaid)
	mux.HandleFunc("POST /api/orders/{id}/failed", h.handleMarkFailed)
	mux.HandleFunc("POST /api/orders/{id}/cancel", h.handleCancel)
}

func (h *OrderHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.OrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// handleList 支持按渠道支付号、幂等键、买家、卖家或状态查询
func (h *OrderHandler) handleList(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	q := r.URL.Query()

	if paymentID := q.Get("provider_payment_id"); paymentID != "" {
		order, err := h.service.GetByProviderPayment(r.Context(), q.Get("provider"), q.Get("env"), paymentID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
		return
	}
	if key := q.Get("idempotency_key"); key != "" {
		order, err := h.service.GetByIdempotencyKey(r.Context(), q.Get("provider"), q.Get("env"), key)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
		return
	}
	if q.Get("buyer_party_id") != "" {
		buyerID, err := queryID(r, "buyer_party_id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		orders, err := h.service.ListByBuyer(r.Context(), buyerID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, orders)
		return
	}
	if q.Get("seller_party_id") != "" {
		sellerID, err := queryID(r, "seller_party_id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		orders, err := h.service.ListBySeller(r.Context(), sellerID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, orders)
		return
	}
	orders, err := h.service.ListByStatus(r.Context(), q.Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) handleSetCheckoutContext(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req application.CheckoutContextRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.service.SetCheckoutContext(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req application.MarkPaidRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.service.MarkPaid(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) handleMarkFailed(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req application.MarkFailedRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.service.MarkFailed(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) handleCancel(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
