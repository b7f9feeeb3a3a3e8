package format

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	docx "github.com/fumiama/go-docx"
	"github.com/ternarybob/arbor"

	"github.com/Kgsflink/ocr-pdf-to-txt/internal/interfaces"
)

// markdownHeading is prepended to md and pdf artifacts.
const markdownHeading = "# OCR Result\n\n"

// utf8BOM makes csv artifacts open cleanly in spreadsheet tools.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Service implements interfaces.FormatterService, serializing extracted
// text into the requested output container inside the artifact directory.
type Service struct {
	outputDir string
	logger    arbor.ILogger
}

// Compile-time assertion
var _ interfaces.FormatterService = (*Service)(nil)

// NewService creates a formatter writing artifacts into outputDir.
func NewService(outputDir string, logger arbor.ILogger) *Service {
	return &Service{
		outputDir: outputDir,
		logger:    logger,
	}
}

// Write produces one artifact named <base>_<timestamp>.<format> and returns
// its filename. Unrecognized formats produce no artifact yet still return
// the timestamped filename; the caller reports success referencing a file
// that does not exist (kept for compatibility with the original service,
// flagged in DESIGN.md).
func (s *Service) Write(text string, format string, baseName string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	outName := fmt.Sprintf("%s_%s.%s", baseName, timestamp, format)
	outPath := filepath.Join(s.outputDir, outName)

	var err error
	switch format {
	case "txt":
		err = os.WriteFile(outPath, []byte(text), 0644)
	case "md":
		err = os.WriteFile(outPath, []byte(markdownHeading+text), 0644)
	case "docx":
		err = writeDocx(outPath, text)
	case "csv":
		err = writeCSV(outPath, text)
	case "pdf":
		err = s.writePDF(outPath, markdownHeading+text)
	default:
		s.logger.Warn().
			Str("format", format).
			Str("artifact", outName).
			Msg("Unrecognized target format, no artifact written")
		return outName, nil
	}

	if err != nil {
		return "", fmt.Errorf("write %s artifact: %w", format, err)
	}

	s.logger.Debug().
		Str("artifact", outName).
		Int("text_len", len(text)).
		Msg("Artifact written")

	return outName, nil
}

// writeDocx produces a Word document with a single paragraph holding the
// entire text, newlines embedded.
func writeDocx(path string, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().AddText(text)

	if _, err := doc.WriteTo(f); err != nil {
		return fmt.Errorf("serialize document: %w", err)
	}
	return nil
}

// writeCSV emits one row per non-blank line under a single Content column,
// prefixed with a UTF-8 byte-order mark for spreadsheet compatibility.
func writeCSV(path string, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Content"}); err != nil {
		return err
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := w.Write([]string{line}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
