package extract

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/ternarybob/arbor"

	"github.com/Kgsflink/ocr-pdf-to-txt/internal/common"
	"github.com/Kgsflink/ocr-pdf-to-txt/internal/interfaces"
	"github.com/Kgsflink/ocr-pdf-to-txt/internal/services/ocr"
)

// Service implements interfaces.ExtractionService. It is the single
// branching point of the pipeline: the uploaded file's extension selects
// the extractor, with plain text as the fall-through.
type Service struct {
	engine interfaces.OCREngine
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.ExtractionService = (*Service)(nil)

// NewService creates an extraction service backed by the given OCR engine.
func NewService(engine interfaces.OCREngine, logger arbor.ILogger) *Service {
	return &Service{
		engine: engine,
		logger: logger,
	}
}

// Extract reads the staged file at path and returns its textual content.
// lang is the OCR language selector used for scanned pages and images.
func (s *Service) Extract(ctx context.Context, path string, lang string) (string, error) {
	ext := common.Extension(filepath.Base(path))

	if mt, err := mimetype.DetectFile(path); err == nil {
		s.logger.Debug().
			Str("file", filepath.Base(path)).
			Str("ext", ext).
			Str("mime", mt.String()).
			Msg("Dispatching extraction")

		// Routing stays extension-based, but a container that does not
		// match its extension is the usual cause of extraction failures
		if !extensionMatchesContent(ext, mt) {
			s.logger.Warn().
				Str("file", filepath.Base(path)).
				Str("ext", ext).
				Str("mime", mt.String()).
				Msg("Extension does not match detected content type")
		}
	}

	switch ext {
	case "pdf":
		return s.pdfText(ctx, path, lang)
	case "jpg", "jpeg", "png":
		return s.imageText(ctx, path, lang)
	case "docx":
		return docxText(path)
	default:
		// Unrecognized extensions fall through to the plain-text reader.
		return plainText(path)
	}
}

// extensionMatchesContent reports whether the sniffed content type is
// consistent with the extension the dispatcher routes on. Extensions
// handled by the plain-text fall-through carry no expectation.
func extensionMatchesContent(ext string, mt *mimetype.MIME) bool {
	switch ext {
	case "pdf":
		return mt.Is("application/pdf")
	case "png":
		return mt.Is("image/png")
	case "jpg", "jpeg":
		return mt.Is("image/jpeg")
	case "docx":
		return mt.Is("application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	default:
		return true
	}
}

// imageText runs the pre-processor and OCR engine over a standalone image.
func (s *Service) imageText(ctx context.Context, path string, lang string) (string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image %s: %w", filepath.Base(path), err)
	}
	return s.engine.Recognize(ctx, ocr.Preprocess(img), lang)
}
