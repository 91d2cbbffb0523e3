// internal/service/coupon/interfaces/catalog_handler.go
package interfaces

import (
	"net/http"

	"github.com/Kabudence/coupon-microservice/internal/service/coupon/application"
)

// CatalogHandler 封装折扣类型、券类型、分类、活动四个目录的 CRUD 接口
type CatalogHandler struct {
	service *application.CatalogService
}

func NewCatalogHandler(service *application.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type namedRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *CatalogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/discount-types", h.handleCreateDiscountType)
	mux.HandleFunc("GET /api/discount-types", h.handleListDiscountTypes)
	mux.HandleFunc("GET /api/discount-types/{id}", h.handleGetDiscountType)
	mux.HandleFunc("PUT /api/discount-types/{id}", h.handleUpdateDiscountType)
	mux.HandleFunc("DELETE /api/discount-types/{id}", h.handleDeleteDiscountType)

	mux.HandleFunc("POST /api/coupon-types", h.handleCreateCouponType)
	mux.HandleFunc("GET /api/coupon-types", h.handleListCouponTypes)
	mux.HandleFunc("GET /api/coupon-types/{id}", h.handleGetCouponType)
	mux.HandleFunc("PUT /api/coupon-types/{id}", h.handleUpdateCouponType)
	mux.HandleFunc("DELETE /api/coupon-types/{id}", h.handleDeleteCouponType)

	mux.HandleFunc("POST /api/categories", h.handleCreateCategory)
	mux.HandleFunc("GET /api/categories", h.handleListCategories)
	mux.HandleFunc("GET /api/categories/{id}", h.handleGetCategory)
	mux.HandleFunc("PUT /api/categories/{id}", h.handleUpdateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", h.handleDeleteCategory)

	mux.HandleFunc("POST /api/events", h.handleCreateEvent)
	mux.HandleFunc("GET /api/events", h.handleListEvents)
	mux.HandleFunc("GET /api/events/{id}", h.handleGetEvent)
	mux.HandleFunc("PUT /api/events/{id}", h.handleUpdateEvent)
	mux.HandleFunc("DELETE /api/events/{id}", h.handleDeleteEvent)
}

func (h *CatalogHandler) handleCreateDiscountType(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req namedRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	dt, err := h.service.CreateDiscountType(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dt)
}

func (h *CatalogHandler) handleListDiscountTypes(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	dts, err := h.service.ListDiscountTypes(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dts)
}

func (h *CatalogHandler) handleGetDiscountType(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	dt, err := h.service.GetDiscountType(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dt)
}

func (h *CatalogHandler) handleUpdateDiscountType(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req namedRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	dt, err := h.service.UpdateDiscountType(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dt)
}

func (h *CatalogHandler) handleDeleteDiscountType(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.service.DeleteDiscountType(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *CatalogHandler) handleCreateCouponType(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req namedRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	ct, err := h.service.CreateCouponType(r.Context(), req.Name, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ct)
}

func (h *CatalogHandler) handleListCouponTypes(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	cts, err := h.service.ListCouponTypes(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cts)
}

func (h *CatalogHandler) handleGetCouponType(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	ct, err := h.service.GetCouponType(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ct)
}

func (h *CatalogHandler) handleUpdateCouponType(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req namedRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	ct, err := h.service.UpdateCouponType(r.Context(), id, req.Name, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ct)
}

func (h *CatalogHandler) handleDeleteCouponType(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.service.DeleteCouponType(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *CatalogHandler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req namedRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.service.CreateCategory(r.Context(), req.Name, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CatalogHandler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	cs, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (h *CatalogHandler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CatalogHandler) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req namedRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.service.UpdateCategory(r.Context(), id, req.Name, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CatalogHandler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *CatalogHandler) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req namedRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	e, err := h.service.CreateEvent(r.Context(), req.Name, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// handleListEvents 支持 ?name= 精确查找
func (h *CatalogHandler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	if name := r.URL.Query().Get("name"); name != "" {
		e, err := h.service.GetEventByName(r.Context(), name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
		return
	}
	es, err := h.service.ListEvents(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, es)
}

func (h *CatalogHandler) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	e, err := h.service.GetEvent(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *CatalogHandler) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req namedRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	e, err := h.service.UpdateEvent(r.Context(), id, req.Name, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *CatalogHandler) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.service.DeleteEvent(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
