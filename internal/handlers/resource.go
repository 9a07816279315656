package handlers

import (
	"log/slog"
	"net/http"

	"github.com/scamshield/scamshield/internal/content"
)

// ResourceHandler serves the educational resource list.
type ResourceHandler struct {
	log  *slog.Logger
	repo *content.Repository
}

func NewResourceHandler(log *slog.Logger, repo *content.Repository) *ResourceHandler {
	return &ResourceHandler{
		log:  log,
		repo: repo,
	}
}

func (h *ResourceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.log, http.StatusOK, h.repo.ListResources())
}
