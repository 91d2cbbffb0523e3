// internal/service/coupon/interfaces/alliance_handler.go
package interfaces

import (
	"context"
	"net/http"

	"github.com/Kabudence/coupon-microservice/internal/service/coupon/application"
	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// AllianceHandler 封装商家联盟请求和状态流转的接口
type AllianceHandler struct {
	service *application.AllianceService
}

func NewAllianceHandler(service *application.AllianceService) *AllianceHandler {
	return &AllianceHandler{service: service}
}

func (h *AllianceHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/alliances", h.handleRequest)
	mux.HandleFunc("GET /api/alliances", h.handleList)
	mux.HandleFunc("GET /api/alliances/{id}", h.handleGet)
	mux.HandleFunc("POST /api/alliances/{id}/accept", h.action(h.service.Accept))
	mux.HandleFunc("POST /api/alliances/{id}/reject", h.action(h.service.Reject))
	mux.HandleFunc("POST /api/alliances/{id}/cancel", h.action(h.service.Cancel))
	mux.HandleFunc("POST /api/alliances/{id}/suspend", h.action(h.service.Suspend))
	mux.HandleFunc("POST /api/alliances/{id}/reactivate", h.action(h.service.Reactivate))
	mux.HandleFunc("PUT /api/alliances/{id}/reason", h.handleUpdateReason)
}

func (h *AllianceHandler) handleRequest(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.AllianceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	alliance, err := h.service.Request(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, alliance)
}

func (h *AllianceHandler) handleList(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	if status := r.URL.Query().Get("status"); status != "" {
		alliances, err := h.service.ListByStatus(r.Context(), status)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, alliances)
		return
	}
	businessID, err := queryID(r, "business_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	alliances, err := h.service.ListByBusiness(r.Context(), businessID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alliances)
}

func (h *AllianceHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	alliance, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alliance)
}

// action 把五个状态流转动作收敛成同一个 handler 模板
func (h *AllianceHandler) action(apply func(ctx context.Context, id, actorBusinessID int64) (*domain.Alliance, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r = extractCtx(r)
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		var req application.AllianceActionRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		alliance, err := apply(r.Context(), id, req.ActorBusinessID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, alliance)
	}
}

func (h *AllianceHandler) handleUpdateReason(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req application.AllianceActionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	alliance, err := h.service.UpdateReason(r.Context(), id, req.ActorBusinessID, req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alliance)
}
