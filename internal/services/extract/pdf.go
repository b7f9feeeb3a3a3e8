package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/Kgsflink/ocr-pdf-to-txt/internal/services/ocr"
)

// textLayerThreshold is the minimum trimmed length for a page's embedded
// text layer to be trusted. Pages at or below it are assumed to be scans
// whose only "text" is stray layout artifacts, and go through OCR instead.
const textLayerThreshold = 20

// pdfText resolves each page of a PDF to text. Pages with a usable embedded
// text layer contribute it directly; the rest are rasterized one page at a
// time (bounding memory use), pre-processed and OCR'd. Page order is
// preserved; any page failure fails the whole extraction.
func (s *Service) pdfText(ctx context.Context, path string, lang string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	var text strings.Builder
	ocrPages := 0

	for i := 0; i < doc.NumPage(); i++ {
		content, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("extract text layer from page %d: %w", i+1, err)
		}

		if len(strings.TrimSpace(content)) > textLayerThreshold {
			s.logger.Debug().Int("page", i+1).Msg("Using embedded text layer")
			text.WriteString(content)
			text.WriteString("\n")
			continue
		}

		// Scanned or handwritten page: rasterize only this page
		img, err := doc.Image(i)
		if err != nil {
			return "", fmt.Errorf("rasterize page %d: %w", i+1, err)
		}

		recognized, err := s.engine.Recognize(ctx, ocr.Preprocess(img), lang)
		if err != nil {
			return "", fmt.Errorf("ocr page %d: %w", i+1, err)
		}

		s.logger.Debug().Int("page", i+1).Int("chars", len(recognized)).Msg("Page resolved via OCR")
		text.WriteString(recognized)
		text.WriteString("\n")
		ocrPages++
	}

	s.logger.Info().
		Int("pages", doc.NumPage()).
		Int("ocr_pages", ocrPages).
		Msg("PDF extraction complete")

	return text.String(), nil
}
