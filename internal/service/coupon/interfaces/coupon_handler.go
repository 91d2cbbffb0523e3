// internal/service/coupon/interfaces/coupon_handler.go
package interfaces

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/Kabudence/coupon-microservice/internal/service/coupon/application"
	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// CouponHandler 封装优惠券模板及券-商品挂载的接口
type CouponHandler struct {
	service *application.CouponService
}

func NewCouponHandler(service *application.CouponService) *CouponHandler {
	return &CouponHandler{service: service}
}

func (h *CouponHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/coupons", h.handleCreate)
	mux.HandleFunc("GET /api/coupons", h.handleList)
	mux.HandleFunc("GET /api/coupons/{id}", h.handleGet)
	mux.HandleFunc("PUT /api/coupons/{id}", h.handleUpdate)
	mux.HandleFunc("DELETE /api/coupons/{id}", h.handleDelete)

	mux.HandleFunc("POST /api/coupon-products", h.handleAddProduct)
	mux.HandleFunc("POST /api/coupon-products/bulk", h.handleBulkAddProducts)
	mux.HandleFunc("GET /api/coupon-products", h.handleListProducts)
	mux.HandleFunc("GET /api/coupon-products/{id}", h.handleGetProduct)
	mux.HandleFunc("POST /api/coupon-products/{id}/consume", h.handleConsumeProduct)
	mux.HandleFunc("DELETE /api/coupon-products/{id}", h.handleRemoveProduct)
	mux.HandleFunc("DELETE /api/coupons/{couponId}/products", h.handleRemoveAllProducts)
}

func (h *CouponHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.CouponRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	coupon, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, coupon)
}

// handleList 支持 ?business_id=、?code=、?active=true 三种过滤
func (h *CouponHandler) handleList(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	q := r.URL.Query()
	switch {
	case q.Get("business_id") != "":
		businessID, err := queryID(r, "business_id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		coupons, err := h.service.ListByBusiness(r.Context(), businessID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, coupons)
	case q.Get("code") != "":
		coupon, err := h.service.GetByCode(r.Context(), q.Get("code"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, coupon)
	case q.Get("active") == "true":
		coupons, err := h.service.ListActiveNow(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, coupons)
	default:
		writeError(w, r, errors.Wrap(domain.ErrInvalidArgument, "business_id, code or active=true query parameter is required"))
	}
}

func (h *CouponHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	coupon, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coupon)
}

func (h *CouponHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req application.CouponRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	coupon, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coupon)
}

func (h *CouponHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
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

type couponProductRequest struct {
	CouponID    int64  `json:"coupon_id"`
	ProductID   int64  `json:"product_id"`
	Code        string `json:"code"`
	ProductType string `json:"product_type"`
	Stock       *int   `json:"stock,omitempty"`
}

func (h *CouponHandler) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req couponProductRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	cp, err := h.service.AddProduct(r.Context(), req.CouponID, req.ProductID, req.Code, req.ProductType, req.Stock)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, cp)
}

func (h *CouponHandler) handleBulkAddProducts(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req struct {
		Products []couponProductRequest `json:"products"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if len(req.Products) == 0 {
		writeError(w, r, errors.Wrap(domain.ErrInvalidArgument, "products must be non-empty"))
		return
	}
	cps := make([]*domain.CouponProduct, 0, len(req.Products))
	for _, p := range req.Products {
		pt := domain.ProductTypeProduct
		if p.ProductType != "" {
			parsed, err := domain.ParseProductType(p.ProductType)
			if err != nil {
				writeError(w, r, err)
				return
			}
			pt = parsed
		}
		cp, err := domain.NewCouponProduct(p.CouponID, p.ProductID, p.Code, pt, p.Stock)
		if err != nil {
			writeError(w, r, err)
			return
		}
		cps = append(cps, cp)
	}
	resp, err := h.service.BulkAddProducts(r.Context(), cps)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleListProducts 支持 ?coupon_id= 或 ?product_id= 过滤
func (h *CouponHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	q := r.URL.Query()
	switch {
	case q.Get("coupon_id") != "":
		couponID, err := queryID(r, "coupon_id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		cps, err := h.service.ListProductsByCoupon(r.Context(), couponID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, cps)
	case q.Get("product_id") != "":
		productID, err := queryID(r, "product_id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		cps, err := h.service.ListCouponsByProduct(r.Context(), productID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, cps)
	default:
		writeError(w, r, errors.Wrap(domain.ErrInvalidArgument, "coupon_id or product_id query parameter is required"))
	}
}

func (h *CouponHandler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	cp, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cp)
}

func (h *CouponHandler) handleConsumeProduct(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	cp, err := h.service.ConsumeProductStock(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cp)
}

// handleRemoveProduct 支持按 id 删除，或 ?coupon_id=&product_id= 按组合删除
func (h *CouponHandler) handleRemoveProduct(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.service.RemoveProduct(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *CouponHandler) handleRemoveAllProducts(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	couponID, err := pathID(r, "couponId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if pid := r.URL.Query().Get("product_id"); pid != "" {
		productID, err := queryID(r, "product_id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := h.service.RemoveProductByCombo(r.Context(), couponID, productID); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
		return
	}
	removed, err := h.service.RemoveAllProductsForCoupon(r.Context(), couponID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}
