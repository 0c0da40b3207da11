package selection

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/junovet/booking-engine/internal/availability"
	"github.com/junovet/booking-engine/internal/observability/metrics"
	"github.com/junovet/booking-engine/pkg/logging"
)

// Handler exposes the selection state machine over HTTP, one cursor per
// session id.
type Handler struct {
	manager *Manager
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

// NewHandler creates a selection session handler.
func NewHandler(manager *Manager, m *metrics.BookingMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{manager: manager, metrics: m, logger: logger}
}

// Routes mounts the session API.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateSession)
	r.Route("/{sessionID}", func(r chi.Router) {
		r.Get("/", h.GetState)
		r.Get("/slots", h.GetSlots)
		r.Get("/week", h.GetWeek)
		r.Get("/snapshot", h.GetSnapshot)
		r.Post("/restore", h.RestoreSnapshot)
		r.Post("/page-week", h.PageWeek)
		r.Post("/select-date", h.SelectDate)
		r.Post("/select-time", h.SelectTime)
		r.Post("/jump-next", h.JumpToNextAvailable)
	})
	return r
}

// StateResponse is the cursor state as the widget consumes it.
type StateResponse struct {
	ID              string  `json:"id"`
	WeekStart       string  `json:"weekStart"`
	SelectedDate    string  `json:"selectedDate"`
	SelectedTime    *string `json:"selectedTime"`
	HasAvailability bool    `json:"hasAvailability"`
	Outcome         string  `json:"outcome,omitempty"`
}

// CreateSession handles POST /api/sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess := h.manager.Create()
	h.logger.Info("session created", "session_id", sess.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(h.stateFor(sess.ID, sess.Cursor, ""))
}

// GetState handles GET /api/sessions/{sessionID}.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, "state", func(cur *Selection) (Outcome, error) {
		return OutcomeNoop, nil
	})
}

// GetSlots handles GET /api/sessions/{sessionID}/slots: the classified slot
// list for the selected date.
func (h *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	var slots []availability.TimeSlot
	err := h.manager.Do(id, func(cur *Selection) error {
		slots = cur.svc.SlotsForDay(cur.SelectedDate())
		return nil
	})
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(slots)
}

// GetWeek handles GET /api/sessions/{sessionID}/week: the visible week grid.
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	var grid []availability.DaySlots
	err := h.manager.Do(id, func(cur *Selection) error {
		grid = cur.svc.WeekGrid(cur.WeekStart())
		return nil
	})
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(grid)
}

// GetSnapshot handles GET /api/sessions/{sessionID}/snapshot.
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	var snap Snapshot
	err := h.manager.Do(id, func(cur *Selection) error {
		snap = cur.Snapshot()
		return nil
	})
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

// RestoreSnapshot handles POST /api/sessions/{sessionID}/restore. The
// snapshot replaces all three state fields as-is.
func (h *Handler) RestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.withSession(w, r, "restore", func(cur *Selection) (Outcome, error) {
		if err := cur.Restore(snap); err != nil {
			return OutcomeRejected, err
		}
		return OutcomeApplied, nil
	})
}

// PageWeek handles POST /api/sessions/{sessionID}/page-week.
func (h *Handler) PageWeek(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	var direction int
	switch req.Direction {
	case "next":
		direction = 1
	case "prev":
		direction = -1
	default:
		http.Error(w, "direction must be next or prev", http.StatusBadRequest)
		return
	}
	h.withSession(w, r, "page_week", func(cur *Selection) (Outcome, error) {
		return cur.PageWeek(direction), nil
	})
}

// SelectDate handles POST /api/sessions/{sessionID}/select-date.
func (h *Handler) SelectDate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date       string `json:"date"`
		ViaPopover bool   `json:"viaPopover"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	date, err := time.ParseInLocation(availability.DateFormat, req.Date, time.Local)
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	h.withSession(w, r, "select_date", func(cur *Selection) (Outcome, error) {
		return cur.SelectDate(date, req.ViaPopover), nil
	})
}

// SelectTime handles POST /api/sessions/{sessionID}/select-time. Picking a
// slot that is not currently available is a no-op, reported as rejected.
func (h *Handler) SelectTime(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Time string `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Time == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.withSession(w, r, "select_time", func(cur *Selection) (Outcome, error) {
		return cur.SelectTime(req.Time), nil
	})
}

// JumpToNextAvailable handles POST /api/sessions/{sessionID}/jump-next.
func (h *Handler) JumpToNextAvailable(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, "jump_next", func(cur *Selection) (Outcome, error) {
		return cur.JumpToNextAvailable(), nil
	})
}

func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, action string, fn func(*Selection) (Outcome, error)) {
	id := chi.URLParam(r, "sessionID")

	var (
		outcome Outcome
		state   StateResponse
	)
	err := h.manager.Do(id, func(cur *Selection) error {
		var err error
		outcome, err = fn(cur)
		state = h.stateFor(id, cur, outcome)
		return err
	})
	if errors.Is(err, ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, ErrBadSnapshot) {
		http.Error(w, "malformed snapshot", http.StatusBadRequest)
		return
	}
	h.metrics.ObserveTransition(action, string(outcome))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

func (h *Handler) stateFor(id string, cur *Selection, outcome Outcome) StateResponse {
	resp := StateResponse{
		ID:              id,
		WeekStart:       cur.WeekStart().Format(availability.DateFormat),
		SelectedDate:    cur.SelectedDate().Format(availability.DateFormat),
		HasAvailability: cur.svc.HasAvailability(cur.SelectedDate()),
		Outcome:         string(outcome),
	}
	if token := cur.SelectedTime(); token != "" {
		resp.SelectedTime = &token
	}
	return resp
}
