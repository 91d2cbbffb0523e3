// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// base 是全局的 zerolog 实例，所有服务共享同一输出配置
var base = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init 为当前进程设置服务名，必须在 main 中尽早调用
func Init(serviceName string) {
	base = base.With().Str("service", serviceName).Logger()
}

// Logger 返回全局日志实例
func Logger() *zerolog.Logger {
	return &base
}

// Ctx 返回一个带有追踪信息的日志实例。
// 如果 ctx 中存在有效的 Span，则自动附加 trace_id / span_id，
// 便于在日志平台中与 Jaeger 链路互相跳转。
func Ctx(ctx context.Context) *zerolog.Logger {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return &base
	}
	l := base.With().
		Str("trace_id", spanCtx.TraceID().String()).
		Str("span_id", spanCtx.SpanID().String()).
		Logger()
	return &l
}
