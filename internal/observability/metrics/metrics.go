package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking widget backend.
type BookingMetrics struct {
	availabilityQueries *prometheus.CounterVec
	slotStatuses        *prometheus.CounterVec
	selectionEvents     *prometheus.CounterVec
	versionOps          *prometheus.CounterVec
	queryLatency        *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		availabilityQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "junovet",
			Subsystem: "availability",
			Name:      "queries_total",
			Help:      "Total availability queries by kind",
		}, []string{"query"}),
		slotStatuses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "junovet",
			Subsystem: "availability",
			Name:      "slot_status_total",
			Help:      "Slot classifications served, by status",
		}, []string{"status"}),
		selectionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "junovet",
			Subsystem: "selection",
			Name:      "transitions_total",
			Help:      "Selection state machine transitions by action and outcome",
		}, []string{"action", "outcome"}),
		versionOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "junovet",
			Subsystem: "versions",
			Name:      "operations_total",
			Help:      "Design-version store operations by op and status",
		}, []string{"op", "status"}),
		queryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "junovet",
			Subsystem: "availability",
			Name:      "query_latency_seconds",
			Help:      "Latency of availability query handling",
			Buckets:   prometheus.DefBuckets,
		}, []string{"query"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.availabilityQueries, m.slotStatuses, m.selectionEvents, m.versionOps, m.queryLatency)
	return m
}

func (m *BookingMetrics) ObserveQuery(query string) {
	if m == nil {
		return
	}
	m.availabilityQueries.WithLabelValues(query).Inc()
}

func (m *BookingMetrics) ObserveSlotStatus(status string, n int) {
	if m == nil {
		return
	}
	m.slotStatuses.WithLabelValues(status).Add(float64(n))
}

func (m *BookingMetrics) ObserveTransition(action, outcome string) {
	if m == nil {
		return
	}
	m.selectionEvents.WithLabelValues(action, outcome).Inc()
}

func (m *BookingMetrics) ObserveVersionOp(op, status string) {
	if m == nil {
		return
	}
	m.versionOps.WithLabelValues(op, status).Inc()
}

func (m *BookingMetrics) ObserveQueryLatency(query string, seconds float64) {
	if m == nil {
		return
	}
	m.queryLatency.WithLabelValues(query).Observe(seconds)
}
