package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/junovet/booking-engine/pkg/logging"
)

// StatsSnapshot is a compact operational read-back of the booking counters,
// for the admin shelf. It is derived from the prometheus gatherer rather than
// kept as separate state.
type StatsSnapshot struct {
	AvailabilityQueries map[string]int64 `json:"availability_queries"`
	SlotStatuses        map[string]int64 `json:"slot_statuses"`
	SelectionActions    map[string]int64 `json:"selection_actions"`
}

// StatsHandler serves GET /api/stats.
type StatsHandler struct {
	gatherer prometheus.Gatherer
	logger   *logging.Logger
}

func NewStatsHandler(gatherer prometheus.Gatherer, logger *logging.Logger) *StatsHandler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsHandler{gatherer: gatherer, logger: logger}
}

func (h *StatsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	mfs, err := h.gatherer.Gather()
	if err != nil {
		h.logger.Error("failed to gather metrics", "error", err)
		http.Error(w, "failed to gather metrics", http.StatusInternalServerError)
		return
	}

	snap := StatsSnapshot{
		AvailabilityQueries: map[string]int64{},
		SlotStatuses:        map[string]int64{},
		SelectionActions:    map[string]int64{},
	}
	for _, mf := range mfs {
		switch mf.GetName() {
		case "junovet_availability_queries_total":
			collectCounter(mf, "query", snap.AvailabilityQueries)
		case "junovet_availability_slot_status_total":
			collectCounter(mf, "status", snap.SlotStatuses)
		case "junovet_selection_transitions_total":
			collectCounter(mf, "action", snap.SelectionActions)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func collectCounter(mf *dto.MetricFamily, label string, out map[string]int64) {
	for _, metric := range mf.GetMetric() {
		for _, lp := range metric.GetLabel() {
			if lp.GetName() == label {
				out[lp.GetValue()] += int64(metric.GetCounter().GetValue())
			}
		}
	}
}
