package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/scamshield/scamshield/internal/content"
)

// CategoryHandler serves categories and the scenarios filed under them.
// Routes: /v1/categories, /v1/categories/{id}, /v1/categories/{id}/scenarios.
type CategoryHandler struct {
	log  *slog.Logger
	repo *content.Repository
}

func NewCategoryHandler(log *slog.Logger, repo *content.Repository) *CategoryHandler {
	return &CategoryHandler{
		log:  log,
		repo: repo,
	}
}

func (h *CategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/categories"), "/")
	if rest == "" {
		writeJSON(w, h.log, http.StatusOK, h.repo.ListCategories())
		return
	}

	parts := strings.SplitN(rest, "/", 2)
	id := parts[0]

	if _, err := h.repo.GetCategory(id); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.Error(w, "Category not found", http.StatusNotFound)
			return
		}
		h.log.Error("Failed to get category", "error", err, "id", id)
		http.Error(w, "Failed to retrieve category", http.StatusInternalServerError)
		return
	}

	if len(parts) == 1 {
		c, _ := h.repo.GetCategory(id)
		writeJSON(w, h.log, http.StatusOK, c)
		return
	}

	if parts[1] != "scenarios" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	writeJSON(w, h.log, http.StatusOK, h.repo.ListScenariosByCategory(id))
}
