// internal/service/payment/interfaces/party_handler.go
package interfaces

import (
	"net/http"

	"github.com/Kabudence/coupon-microservice/internal/service/payment/application"
)

// PartyHandler 封装跨应用主体标识的接口
type PartyHandler struct {
	service *application.PartyService
}

func NewPartyHandler(service *application.PartyService) *PartyHandler {
	return &PartyHandler{service: service}
}

func (h *PartyHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/parties", h.handleCreate)
	mux.HandleFunc("PUT /api/parties/by-subject", h.handleUpsertBySubject)
	mux.HandleFunc("GET /api/parties", h.handleList)
	mux.HandleFunc("GET /api/parties/{id}", h.handleGet)
	mux.HandleFunc("PUT /api/parties/{id}", h.handleUpdate)
	mux.HandleFunc("DELETE /api/parties/{id}", h.handleDelete)
}

func (h *PartyHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.PartyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	party, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, party)
}

func (h *PartyHandler) handleUpsertBySubject(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	var req application.PartyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	party, err := h.service.UpsertBySubject(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, party)
}

// handleList 支持按三元组精确查询或按 name 片段模糊搜索
func (h *PartyHandler) handleList(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	q := r.URL.Query()

	if name := q.Get("name"); name != "" {
		parties, err := h.service.SearchByName(r.Context(), name, intQuery(r, "limit", 20))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, parties)
		return
	}

	subjectID, err := queryID(r, "subject_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	party, err := h.service.GetBySubject(r.Context(), q.Get("app_name"), q.Get("subject_type"), subjectID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, party)
}

func (h *PartyHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	party, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, party)
}

func (h *PartyHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	r = extractCtx(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req application.PartyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	party, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, party)
}

func (h *PartyHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
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
