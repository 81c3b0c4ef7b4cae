package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Neighborhood recommendations served, by outcome",
		},
		[]string{"outcome"},
	)

	counterUpdateErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_counter_update_errors_total",
			Help: "Failed usage counter updates",
		},
	)
)
