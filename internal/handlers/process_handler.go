package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/Kgsflink/ocr-pdf-to-txt/internal/common"
	"github.com/Kgsflink/ocr-pdf-to-txt/internal/interfaces"
	"github.com/Kgsflink/ocr-pdf-to-txt/internal/models"
	"github.com/Kgsflink/ocr-pdf-to-txt/internal/services/extract"
)

// previewLimit caps the number of characters echoed back in the response.
const previewLimit = 1500

// ProcessHandler owns the conversion pipeline: validate the upload, stage
// it, extract text, format the artifact and clean up the staged file on
// every exit path.
type ProcessHandler struct {
	config    *common.Config
	extractor interfaces.ExtractionService
	formatter interfaces.FormatterService
	logger    arbor.ILogger
}

// NewProcessHandler creates the handler for POST /process.
func NewProcessHandler(config *common.Config, extractor interfaces.ExtractionService, formatter interfaces.FormatterService, logger arbor.ILogger) *ProcessHandler {
	return &ProcessHandler{
		config:    config,
		extractor: extractor,
		formatter: formatter,
		logger:    logger,
	}
}

// ProcessHandler handles POST /process
func (h *ProcessHandler) ProcessHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.config.Upload.MaxSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "No file part")
		return
	}
	defer file.Close()

	targetFormat := r.FormValue("format")
	if targetFormat == "" {
		targetFormat = "txt"
	}
	lang := r.FormValue("lang")
	if lang == "" {
		lang = h.config.OCR.Languages
	}

	filename := common.SanitizeFilename(header.Filename)
	if header.Filename == "" || filename == "" {
		WriteError(w, http.StatusBadRequest, "No selected file")
		return
	}

	if !extract.AllowedFile(filename) {
		// Advisory only: unknown extensions still fall through to the
		// plain-text reader (see DESIGN.md).
		h.logger.Warn().Str("file", filename).Msg("Upload extension outside allow-list")
	}

	inputPath := filepath.Join(h.config.Storage.UploadDir, filename)
	if err := saveUpload(file, inputPath); err != nil {
		h.logger.Error().Err(err).Str("file", filename).Msg("Failed to stage upload")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// The staged upload is transient: remove it no matter how the request ends.
	defer os.Remove(inputPath)

	h.logger.Info().
		Str("file", filename).
		Str("format", targetFormat).
		Str("lang", lang).
		Msg("Processing upload")

	text, err := h.extractor.Extract(r.Context(), inputPath, lang)
	if err != nil {
		h.logger.Error().Err(err).Str("file", filename).Msg("Extraction failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if strings.TrimSpace(text) == "" {
		WriteError(w, http.StatusBadRequest, "Could not detect any text. Ensure the image is clear.")
		return
	}

	outName, err := h.formatter.Write(text, targetFormat, common.BaseName(filename))
	if err != nil {
		h.logger.Error().Err(err).Str("file", filename).Msg("Formatting failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, models.ProcessResponse{
		Success:     true,
		Preview:     truncate(text, previewLimit),
		DownloadURL: "/download/" + outName,
		Filename:    outName,
	})
}

// saveUpload persists the multipart file part to the staging path.
func saveUpload(src io.Reader, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// truncate limits s to n characters without splitting a rune.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
