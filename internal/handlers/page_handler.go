package handlers

import (
	_ "embed"
	"net/http"

	"github.com/ternarybob/arbor"
)

//go:embed static/index.html
var indexPage []byte

// PageHandler serves the embedded upload UI.
type PageHandler struct {
	logger arbor.ILogger
}

func NewPageHandler(logger arbor.ILogger) *PageHandler {
	return &PageHandler{logger: logger}
}

// IndexHandler handles GET /
func (h *PageHandler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(indexPage); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to write index page")
	}
}
