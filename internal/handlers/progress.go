package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/scamshield/scamshield/internal/content"
	"github.com/scamshield/scamshield/internal/services"
)

// DeviceIDHeader carries the per-device identity for progress records.
// Devices generate it once (a UUID) and send it on every request.
const DeviceIDHeader = "X-Device-ID"

// CompletionRequest records the result of one decision.
type CompletionRequest struct {
	ScenarioID string `json:"scenario_id"`
	WasCorrect bool   `json:"was_correct"`
}

// ProgressHandler serves per-device progress: summary, completion recording
// and reset.
type ProgressHandler struct {
	log      *slog.Logger
	progress *services.ProgressService
	repo     *content.Repository
}

func NewProgressHandler(log *slog.Logger, progress *services.ProgressService, repo *content.Repository) *ProgressHandler {
	return &ProgressHandler{
		log:      log,
		progress: progress,
		repo:     repo,
	}
}

func (h *ProgressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	deviceID := r.Header.Get(DeviceIDHeader)
	if deviceID == "" {
		http.Error(w, DeviceIDHeader+" header is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleSummary(w, r, deviceID)
	case http.MethodPost:
		h.handleCompletion(w, r, deviceID)
	case http.MethodDelete:
		h.handleReset(w, r, deviceID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ProgressHandler) handleSummary(w http.ResponseWriter, r *http.Request, deviceID string) {
	writeJSON(w, h.log, http.StatusOK, h.progress.Summary(r.Context(), deviceID))
}

func (h *ProgressHandler) handleCompletion(w http.ResponseWriter, r *http.Request, deviceID string) {
	var req CompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ScenarioID == "" {
		http.Error(w, "scenario_id is required", http.StatusBadRequest)
		return
	}

	if _, err := h.repo.GetScenario(req.ScenarioID); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.Error(w, "Scenario not found", http.StatusNotFound)
			return
		}
		h.log.Error("Failed to look up scenario", "error", err, "id", req.ScenarioID)
		http.Error(w, "Failed to record completion", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	if err := h.progress.RecordCompletion(ctx, deviceID, req.ScenarioID, req.WasCorrect); err != nil {
		// The in-memory attempt already advanced client-side; report the
		// persistence failure so the client can warn the user.
		h.log.Error("Failed to persist completion", "error", err, "device_id", deviceID)
		http.Error(w, "Progress may not be retained", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.log, http.StatusOK, h.progress.Summary(ctx, deviceID))
}

func (h *ProgressHandler) handleReset(w http.ResponseWriter, r *http.Request, deviceID string) {
	ctx := r.Context()
	if err := h.progress.Reset(ctx, deviceID); err != nil {
		h.log.Error("Failed to reset progress", "error", err, "device_id", deviceID)
		http.Error(w, "Failed to reset progress", http.StatusInternalServerError)
		return
	}
	writeJSON(w, h.log, http.StatusOK, h.progress.Summary(ctx, deviceID))
}
