package handlers

import (
	"log/slog"
	"net/http"

	"github.com/scamshield/scamshield/internal/storage"
)

// HealthHandler reports service health, including store connectivity.
type HealthHandler struct {
	log   *slog.Logger
	store storage.ProgressStore
}

func NewHealthHandler(log *slog.Logger, store storage.ProgressStore) *HealthHandler {
	return &HealthHandler{
		log:   log,
		store: store,
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := healthResponse{Status: "ok", Storage: "ok"}
	status := http.StatusOK
	if err := h.store.Ping(r.Context()); err != nil {
		h.log.Error("Storage health check failed", "error", err)
		resp.Status = "degraded"
		resp.Storage = "unavailable"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, h.log, status, resp)
}
