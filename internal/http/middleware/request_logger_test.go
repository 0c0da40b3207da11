package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/junovet/booking-engine/pkg/logging"
)

func TestRequestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter("info", "json", &buf)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/missing", nil)
	rec := httptest.NewRecorder()
	RequestLogger(logger)(handler).ServeHTTP(rec, req)

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", line, err)
	}
	if entry["msg"] != "request completed" {
		t.Fatalf("unexpected message: %v", entry["msg"])
	}
	if entry["status"] != float64(http.StatusNotFound) {
		t.Fatalf("expected status 404 in log, got %v", entry["status"])
	}
	if entry["path"] != "/api/sessions/missing" {
		t.Fatalf("unexpected path: %v", entry["path"])
	}
}

func TestRequestLoggerGeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter("info", "json", &buf)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	RequestLogger(logger)(handler).ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if id, _ := entry["request_id"].(string); id == "" {
		t.Fatalf("expected generated request id, got %v", entry["request_id"])
	}
}
