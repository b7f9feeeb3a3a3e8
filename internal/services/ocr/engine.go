package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/ternarybob/arbor"

	"github.com/Kgsflink/ocr-pdf-to-txt/internal/interfaces"
)

// TesseractEngine implements interfaces.OCREngine using the gosseract
// client. A fresh client is created per recognition call; Tesseract keeps
// per-image state and the setup cost is dwarfed by recognition itself.
type TesseractEngine struct {
	logger        arbor.ILogger
	clientFactory func() *gosseract.Client
}

// Compile-time assertion
var _ interfaces.OCREngine = (*TesseractEngine)(nil)

// NewTesseractEngine constructs a Tesseract-backed OCR engine.
func NewTesseractEngine(logger arbor.ILogger) *TesseractEngine {
	return &TesseractEngine{
		logger:        logger,
		clientFactory: gosseract.NewClient,
	}
}

// Recognize performs OCR on a single pre-processed image. The language
// selector uses Tesseract syntax ("eng", "eng+hin"). Page segmentation is
// fixed to fully-automatic; the recognition engine mode is left at the
// library default.
func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image, lang string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode image for OCR: %w", err)
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if langs := splitLanguages(lang); len(langs) > 0 {
		if err := c.SetLanguage(langs...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}

	e.logger.Debug().
		Str("lang", lang).
		Int("chars", len(text)).
		Msg("OCR recognition complete")

	return text, nil
}

// splitLanguages turns "eng+hin" into the list form gosseract expects.
func splitLanguages(lang string) []string {
	var langs []string
	for _, l := range strings.Split(lang, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return langs
}
