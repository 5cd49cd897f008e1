package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records supplier intake and ranking activity. A nil *Metrics is a no-op.
type Metrics struct {
	suppliersCreated prometheus.Counter
	rankings         *prometheus.CounterVec
	rankingDuration  prometheus.Histogram
	rankedSuppliers  prometheus.Histogram
}

// NewMetrics registers the metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}
	m := &Metrics{
		suppliersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "supplyrank",
			Name:      "suppliers_created_total",
			Help:      "Supplier records created.",
		}),
		rankings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "supplyrank",
			Name:      "rankings_total",
			Help:      "Ranking requests by outcome.",
		}, []string{"outcome"}),
		rankingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "supplyrank",
			Name:      "ranking_duration_seconds",
			Help:      "Time to load suppliers and compute a ranking.",
			Buckets:   prometheus.DefBuckets,
		}),
		rankedSuppliers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "supplyrank",
			Name:      "ranked_suppliers",
			Help:      "Number of suppliers per ranking.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	reg.MustRegister(m.suppliersCreated, m.rankings, m.rankingDuration, m.rankedSuppliers)
	return m
}

func (m *Metrics) SupplierCreated() {
	if m == nil {
		return
	}
	m.suppliersCreated.Inc()
}

func (m *Metrics) RankingDone(outcome string, suppliers int, d time.Duration) {
	if m == nil {
		return
	}
	m.rankings.WithLabelValues(outcome).Inc()
	m.rankingDuration.Observe(d.Seconds())
	if suppliers > 0 {
		m.rankedSuppliers.Observe(float64(suppliers))
	}
}
