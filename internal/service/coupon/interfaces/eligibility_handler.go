// internal/service/coupon/interfaces/eligibility_handler.go
package interfaces

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/Kabudence/coupon-microservice/internal/service/coupon/application"
)

// EligibilityHandler 封装资格解析接口
type EligibilityHandler struct {
	service *application.EligibilityService
}

func NewEligibilityHandler(service *application.EligibilityService) *EligibilityHandler {
	return &EligibilityHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *EligibilityHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/coupon-eligibility/resolve", h.handleResolve)
}

func (h *EligibilityHandler) handleResolve(w http.ResponseWriter, r *http.Request) {
	propagator := otel.GetTextMapPropagator()
	ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	r = r.WithContext(ctx)

	var req application.ResolveEligibilityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	resolved, err := h.service.Resolve(ctx, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	eligibilityResolutions.Inc()
	eligibilityResolvedRows.Add(float64(len(resolved)))

	// 固定返回数组而不是 null
	if resolved == nil {
		resolved = []*application.ResolvedEligibilityResponse{}
	}
	writeJSON(w, http.StatusOK, resolved)
}
