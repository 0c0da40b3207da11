package availability

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/junovet/booking-engine/internal/observability/metrics"
	"github.com/junovet/booking-engine/pkg/logging"
)

// Handler serves the widget's availability queries.
type Handler struct {
	svc     *Service
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

// NewHandler creates an availability handler.
func NewHandler(svc *Service, m *metrics.BookingMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, metrics: m, logger: logger}
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Day handles GET /api/availability/day?date=YYYY-MM-DD.
func (h *Handler) Day(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	date, ok := h.dateParam(w, r, "date")
	if !ok {
		return
	}
	slots := h.svc.SlotsForDay(date)
	h.metrics.ObserveQuery("day")
	for _, slot := range slots {
		h.metrics.ObserveSlotStatus(string(slot.Status), 1)
	}
	h.metrics.ObserveQueryLatency("day", time.Since(start).Seconds())

	writeJSON(w, DaySlots{Date: date.Format(DateFormat), Slots: slots})
}

// Week handles GET /api/availability/week?start=YYYY-MM-DD. The start date is
// normalized to the deployment's first day of week.
func (h *Handler) Week(w http.ResponseWriter, r *http.Request) {
	begin := time.Now()
	date, ok := h.dateParam(w, r, "start")
	if !ok {
		return
	}
	grid := h.svc.WeekGrid(date)
	h.metrics.ObserveQuery("week")
	h.metrics.ObserveQueryLatency("week", time.Since(begin).Seconds())

	writeJSON(w, grid)
}

// Next handles GET /api/availability/next?after=YYYY-MM-DD. A horizon with no
// availability is a normal result, reported as {"date": null}.
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r, "after")
	if !ok {
		return
	}
	h.metrics.ObserveQuery("next")

	resp := struct {
		Date *string `json:"date"`
	}{}
	if next, found := h.svc.NextAvailableAfter(date); found {
		formatted := next.Format(DateFormat)
		resp.Date = &formatted
	}
	writeJSON(w, resp)
}

// First handles GET /api/availability/first?from=YYYY-MM-DD. The from
// parameter is optional and defaults to today.
func (h *Handler) First(w http.ResponseWriter, r *http.Request) {
	var from time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.ParseInLocation(DateFormat, raw, time.Local)
		if err != nil {
			http.Error(w, "invalid from date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		from = parsed
	} else {
		from = h.svc.Oracle().Now()
	}
	h.metrics.ObserveQuery("first")

	first := h.svc.FirstAvailableFrom(from)
	writeJSON(w, map[string]string{"date": first.Format(DateFormat)})
}

func (h *Handler) dateParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		http.Error(w, "missing "+name+" parameter", http.StatusBadRequest)
		return time.Time{}, false
	}
	date, err := time.ParseInLocation(DateFormat, raw, time.Local)
	if err != nil {
		h.logger.Error("invalid date parameter", "param", name, "value", raw, "error", err)
		http.Error(w, "invalid "+name+" date, expected YYYY-MM-DD", http.StatusBadRequest)
		return time.Time{}, false
	}
	return date, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
