// internal/service/payment/interfaces/metrics.go
package interfaces

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	webhookReceiptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_webhook_receipts_total",
		Help: "Webhook deliveries received, labelled by provider and dedup outcome.",
	}, []string{"provider", "outcome"})

	webhookUnprocessedBacklog = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "payment_webhook_unprocessed_backlog",
		Help: "Webhook events still waiting for asynchronous processing.",
	})
)

// SetUnprocessedBacklog 供 worker 的兜底扫描刷新积压水位
func SetUnprocessedBacklog(n int64) {
	webhookUnprocessedBacklog.Set(float64(n))
}
