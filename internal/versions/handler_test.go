package versions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	h := NewHandler(newTestService(t), nil)

	r := chi.NewRouter()
	r.Get("/design-versions.json", h.ServeFile)
	r.Post("/api/design-versions", h.ReplaceAll)
	r.Mount("/api/versions", h.Routes())
	return r
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeList(t *testing.T, body io.Reader) []DesignVersion {
	t.Helper()
	var entries []DesignVersion
	if err := json.NewDecoder(body).Decode(&entries); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	return entries
}

func TestHandlerListIncludesSeeds(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/versions/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	entries := decodeList(t, rec.Body)
	if len(entries) != 3 || entries[0].ID != "seed-v1" {
		t.Fatalf("expected the three seeds, got %+v", entries)
	}
}

func TestHandlerSaveLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/versions/", saveRequest{
		Title: "Compact header",
		State: VersionState{
			WeekStartISO:    "2025-06-01T00:00:00Z",
			SelectedDateISO: "2025-06-03T00:00:00Z",
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	var saved DesignVersion
	if err := json.NewDecoder(rec.Body).Decode(&saved); err != nil {
		t.Fatalf("decode saved: %v", err)
	}
	if saved.VersionNumber != 4 {
		t.Fatalf("expected version 4, got %d", saved.VersionNumber)
	}

	// Patch its title.
	rec = doJSON(t, router, http.MethodPatch, "/api/versions/"+saved.ID, map[string]string{"title": "Wide header"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	// Revert hands back the stored state untouched.
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/versions/%s/revert", saved.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var state VersionState
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.SelectedDateISO != "2025-06-03T00:00:00Z" {
		t.Fatalf("unexpected reverted state: %+v", state)
	}

	// Delete it.
	rec = doJSON(t, router, http.MethodDelete, "/api/versions/"+saved.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodDelete, "/api/versions/"+saved.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestHandlerSaveRejectsEmptyState(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/versions/", saveRequest{Title: "no state"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerRevertUnknownVersion(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/versions/nope/revert", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandlerServeFileEmptyShelf(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/design-versions.json", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected bare empty array, got %q", got)
	}
}

func TestHandlerReplaceAll(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/design-versions", []DesignVersion{sampleEntry(4)})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var ack map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&ack); err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	if !ack["ok"] {
		t.Fatalf("expected ok acknowledgement, got %+v", ack)
	}

	rec = doJSON(t, router, http.MethodGet, "/design-versions.json", nil)
	entries := decodeList(t, rec.Body)
	if len(entries) != 1 || entries[0].VersionNumber != 4 {
		t.Fatalf("replacement not visible: %+v", entries)
	}
}

func TestHandlerReplaceAllRejectsNonArray(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/design-versions", map[string]string{"not": "an array"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var payload map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if payload["error"] != "Invalid payload" {
		t.Fatalf("unexpected error payload: %+v", payload)
	}
}
