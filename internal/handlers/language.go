package handlers

import (
	"log/slog"
	"net/http"

	"github.com/scamshield/scamshield/internal/i18n"
)

// LanguageHandler serves the language selector data and resolves the
// caller's preferred language from Accept-Language.
type LanguageHandler struct {
	log *slog.Logger
}

func NewLanguageHandler(log *slog.Logger) *LanguageHandler {
	return &LanguageHandler{log: log}
}

type languageEntry struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
}

type languageResponse struct {
	Matched   string          `json:"matched"`
	Supported []languageEntry `json:"supported"`
}

func (h *LanguageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	matched := i18n.Match(r.Header.Get("Accept-Language"))
	resp := languageResponse{Matched: matched.String()}
	for _, tag := range i18n.Supported {
		resp.Supported = append(resp.Supported, languageEntry{
			Tag:  tag.String(),
			Name: i18n.DisplayNames[tag],
		})
	}

	writeJSON(w, h.log, http.StatusOK, resp)
}
