// internal/service/coupon/interfaces/respond.go
package interfaces

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/Kabudence/coupon-microservice/internal/pkg/logger"
	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// writeJSON 输出 JSON 响应
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError 根据错误类型返回不同的 HTTP 状态码。
// 未归类的错误按 500 处理，对外只返回通用消息，真实错误进日志。
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var statusCode int
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		statusCode = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate):
		statusCode = http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		statusCode = http.StatusForbidden
	default:
		statusCode = http.StatusInternalServerError
	}

	if statusCode == http.StatusInternalServerError {
		logger.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeJSON(w, statusCode, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, statusCode, map[string]string{"error": err.Error()})
}

// pathID 从路由参数中解析一个正整数 id
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Wrapf(domain.ErrInvalidArgument, "invalid %s: %q", name, raw)
	}
	return id, nil
}

// queryID 从查询串中解析一个正整数参数
func queryID(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Wrapf(domain.ErrInvalidArgument, "invalid %s: %q", name, raw)
	}
	return id, nil
}

// decodeBody 解析 JSON 请求体
func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(domain.ErrInvalidArgument, "invalid request body")
	}
	return nil
}
