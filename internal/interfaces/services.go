package interfaces

import (
	"context"
	"image"
)

// OCREngine recognizes text in a pre-processed image. Implementations are
// best-effort: empty output is a valid result, not an error.
type OCREngine interface {
	// Recognize runs the OCR engine over img using the given language
	// selector (engine syntax, e.g. "eng+hin").
	Recognize(ctx context.Context, img image.Image, lang string) (string, error)
}

// ExtractionService routes an uploaded file to the correct extractor based
// on its filename extension and returns the concatenated text.
type ExtractionService interface {
	Extract(ctx context.Context, path string, lang string) (string, error)
}

// FormatterService serializes extracted text into the requested output
// container and persists it to the artifact directory.
type FormatterService interface {
	// Write produces one artifact for the given target format and returns
	// the artifact filename. An unrecognized format produces no artifact
	// but still returns the filename the artifact would have had, with a
	// nil error.
	Write(text string, format string, baseName string) (string, error)
}
