package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AvailabilityRequests counts availability computations by endpoint and
	// domain outcome (available, unavailable, unparseable, error).
	AvailabilityRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agenda_availability_requests_total",
			Help: "Availability requests by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	SlotsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "agenda_slots_returned",
			Help:    "Free slots returned per check request.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

func Handler() http.Handler {
	return promhttp.Handler()
}
