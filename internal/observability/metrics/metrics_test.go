package metrics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestBookingMetricsObserve(t *testing.T) {
	m := NewBookingMetrics(prometheus.NewRegistry())
	m.ObserveQuery("day")
	m.ObserveSlotStatus("available", 12)
	m.ObserveTransition("select_time", "accepted")
	m.ObserveVersionOp("save", "ok")
	m.ObserveQueryLatency("day", 0.002)
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveQuery("day")
	m.ObserveSlotStatus("booked", 1)
	m.ObserveTransition("page_week", "accepted")
	m.ObserveVersionOp("revert", "not_found")
	m.ObserveQueryLatency("week", 0.1)
}

func TestStatsHandlerSnapshot(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)
	m.ObserveQuery("day")
	m.ObserveQuery("day")
	m.ObserveQuery("week")
	m.ObserveSlotStatus("available", 5)
	m.ObserveTransition("select_time", "rejected")

	h := NewStatsHandler(reg, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	h.Snapshot(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var snap StatsSnapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.AvailabilityQueries["day"] != 2 {
		t.Errorf("expected 2 day queries, got %d", snap.AvailabilityQueries["day"])
	}
	if snap.AvailabilityQueries["week"] != 1 {
		t.Errorf("expected 1 week query, got %d", snap.AvailabilityQueries["week"])
	}
	if snap.SlotStatuses["available"] != 5 {
		t.Errorf("expected 5 available statuses, got %d", snap.SlotStatuses["available"])
	}
	if snap.SelectionActions["select_time"] != 1 {
		t.Errorf("expected 1 select_time action, got %d", snap.SelectionActions["select_time"])
	}
}
