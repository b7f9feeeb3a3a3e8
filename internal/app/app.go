package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/Kgsflink/ocr-pdf-to-txt/internal/common"
	"github.com/Kgsflink/ocr-pdf-to-txt/internal/handlers"
	"github.com/Kgsflink/ocr-pdf-to-txt/internal/interfaces"
	"github.com/Kgsflink/ocr-pdf-to-txt/internal/services/extract"
	"github.com/Kgsflink/ocr-pdf-to-txt/internal/services/format"
	"github.com/Kgsflink/ocr-pdf-to-txt/internal/services/ocr"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Services
	OCREngine         interfaces.OCREngine
	ExtractionService interfaces.ExtractionService
	FormatterService  interfaces.FormatterService

	// Handlers
	PageHandler     *handlers.PageHandler
	ProcessHandler  *handlers.ProcessHandler
	DownloadHandler *handlers.DownloadHandler
	APIHandler      *handlers.APIHandler
}

// New creates and wires the application components
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	if err := config.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("failed to create storage directories: %w", err)
	}

	engine := ocr.NewTesseractEngine(logger)
	extractor := extract.NewService(engine, logger)
	formatter := format.NewService(config.Storage.OutputDir, logger)

	a := &App{
		Config:            config,
		Logger:            logger,
		OCREngine:         engine,
		ExtractionService: extractor,
		FormatterService:  formatter,
	}

	a.PageHandler = handlers.NewPageHandler(logger)
	a.ProcessHandler = handlers.NewProcessHandler(config, extractor, formatter, logger)
	a.DownloadHandler = handlers.NewDownloadHandler(config.Storage.OutputDir, logger)
	a.APIHandler = handlers.NewAPIHandler(logger)

	logger.Info().
		Str("upload_dir", config.Storage.UploadDir).
		Str("output_dir", config.Storage.OutputDir).
		Str("languages", config.OCR.Languages).
		Msg("Application initialized")

	return a, nil
}
