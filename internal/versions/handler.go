package versions

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/junovet/booking-engine/pkg/logging"
)

// Handler exposes the version shelf over HTTP. Two widget-compat endpoints
// mirror the dev server the widget talked to (ServeFile and ReplaceAll); the
// REST routes cover the shelf operations themselves.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler constructs a versions handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if svc == nil {
		panic("versions: service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// Routes returns the REST subtree, mounted at /api/versions.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Save)
	r.Route("/{versionID}", func(r chi.Router) {
		r.Patch("/", h.Update)
		r.Delete("/", h.Remove)
		r.Post("/revert", h.Revert)
	})
	return r
}

// List returns the full shelf, seeds included.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List(r.Context())
	if err != nil {
		h.serverError(w, "list versions", err)
		return
	}
	if entries == nil {
		entries = []DesignVersion{}
	}
	writeJSON(w, http.StatusOK, entries)
}

type saveRequest struct {
	Title string       `json:"title"`
	Note  string       `json:"note"`
	State VersionState `json:"state"`
}

// Save appends a new user version.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !req.State.Valid() {
		writeError(w, http.StatusBadRequest, "state requires weekStartIso and selectedDateIso")
		return
	}
	entry, err := h.svc.Save(r.Context(), req.State, req.Title, req.Note)
	if err != nil {
		h.serverError(w, "save version", err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// Update patches title and note on one version.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var patch Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	entry, err := h.svc.Update(r.Context(), chi.URLParam(r, "versionID"), patch)
	if err != nil {
		if errors.Is(err, ErrVersionNotFound) {
			writeError(w, http.StatusNotFound, "version not found")
			return
		}
		h.serverError(w, "update version", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Remove deletes a version (seeds are hidden rather than deleted).
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Remove(r.Context(), chi.URLParam(r, "versionID")); err != nil {
		if errors.Is(err, ErrVersionNotFound) {
			writeError(w, http.StatusNotFound, "version not found")
			return
		}
		h.serverError(w, "remove version", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Revert hands back the stored state for the version.
func (h *Handler) Revert(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.Revert(r.Context(), chi.URLParam(r, "versionID"))
	if err != nil {
		if errors.Is(err, ErrVersionNotFound) {
			writeError(w, http.StatusNotFound, "version not found")
			return
		}
		h.serverError(w, "revert version", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// ServeFile returns the persisted user saves as a bare JSON array, the exact
// document the widget fetched at /design-versions.json. An empty shelf reads
// as [].
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.UserSaves(r.Context())
	if err != nil {
		h.serverError(w, "read versions", err)
		return
	}
	if entries == nil {
		entries = []DesignVersion{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// ReplaceAll overwrites the persisted user saves with the posted array. Any
// payload that is not a JSON array is rejected the way the widget's dev
// endpoint rejected it.
func (h *Handler) ReplaceAll(w http.ResponseWriter, r *http.Request) {
	var entries []DesignVersion
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := h.svc.ReplaceUser(r.Context(), entries); err != nil {
		h.serverError(w, "replace versions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) serverError(w http.ResponseWriter, action string, err error) {
	h.logger.Error(action+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
