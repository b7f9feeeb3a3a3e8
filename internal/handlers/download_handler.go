package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/Kgsflink/ocr-pdf-to-txt/internal/common"
)

// DownloadHandler streams artifacts from the outbound directory.
type DownloadHandler struct {
	outputDir string
	logger    arbor.ILogger
}

// NewDownloadHandler creates the handler for GET /download/{filename}.
func NewDownloadHandler(outputDir string, logger arbor.ILogger) *DownloadHandler {
	return &DownloadHandler{
		outputDir: outputDir,
		logger:    logger,
	}
}

// DownloadHandler handles GET /download/{filename}
func (h *DownloadHandler) DownloadHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/download/")
	name = common.SanitizeFilename(name)
	if name == "" {
		WriteError(w, http.StatusBadRequest, "Filename is required")
		return
	}

	h.logger.Debug().Str("artifact", name).Msg("Serving artifact download")

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, filepath.Join(h.outputDir, name))
}
