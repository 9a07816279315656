package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/scamshield/scamshield/internal/content"
)

// ScenarioHandler serves the read-only scenario catalog.
type ScenarioHandler struct {
	log  *slog.Logger
	repo *content.Repository
}

func NewScenarioHandler(log *slog.Logger, repo *content.Repository) *ScenarioHandler {
	return &ScenarioHandler{
		log:  log,
		repo: repo,
	}
}

func (h *ScenarioHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ScenarioHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/scenarios"), "/")

	if id == "" {
		writeJSON(w, h.log, http.StatusOK, h.repo.ListScenarios())
		return
	}

	s, err := h.repo.GetScenario(id)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.Error(w, "Scenario not found", http.StatusNotFound)
			return
		}
		h.log.Error("Failed to get scenario", "error", err, "id", id)
		http.Error(w, "Failed to retrieve scenario", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.log, http.StatusOK, s)
}

// writeJSON marshals v and writes it with the given status. Marshal failures
// are logged and reported as 500s.
func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error("Failed to marshal response", "error", err)
		http.Error(w, "Failed to process response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
