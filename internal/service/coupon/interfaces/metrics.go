// internal/service/coupon/interfaces/metrics.go
package interfaces

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eligibilityResolutions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coupon_eligibility_resolutions_total",
		Help: "Total number of eligibility resolution calls.",
	})
	eligibilityResolvedRows = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coupon_eligibility_resolved_rows_total",
		Help: "Total number of resolved eligibility rows returned.",
	})
)
