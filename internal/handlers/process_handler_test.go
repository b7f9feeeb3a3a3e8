package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/Kgsflink/ocr-pdf-to-txt/internal/common"
	"github.com/Kgsflink/ocr-pdf-to-txt/internal/models"
)

// mockExtractor implements interfaces.ExtractionService for testing
type mockExtractor struct {
	extractFunc func(ctx context.Context, path string, lang string) (string, error)
}

func (m *mockExtractor) Extract(ctx context.Context, path string, lang string) (string, error) {
	if m.extractFunc != nil {
		return m.extractFunc(ctx, path, lang)
	}
	return "", nil
}

// mockFormatter implements interfaces.FormatterService for testing
type mockFormatter struct {
	writeFunc func(text string, format string, baseName string) (string, error)
}

func (m *mockFormatter) Write(text string, format string, baseName string) (string, error) {
	if m.writeFunc != nil {
		return m.writeFunc(text, format, baseName)
	}
	return baseName + "_20250101_000000.txt", nil
}

func newTestConfig(t *testing.T) *common.Config {
	t.Helper()
	config := common.NewDefaultConfig()
	dir := t.TempDir()
	config.Storage.UploadDir = filepath.Join(dir, "uploads")
	config.Storage.OutputDir = filepath.Join(dir, "outputs")
	require.NoError(t, config.EnsureDirs())
	return config
}

func newTestHandler(config *common.Config, extractor *mockExtractor, formatter *mockFormatter) *ProcessHandler {
	return NewProcessHandler(config, extractor, formatter, arbor.NewLogger())
}

// multipartUpload builds a multipart/form-data request for POST /process.
func multipartUpload(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/process", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestProcessHandler_Success(t *testing.T) {
	config := newTestConfig(t)

	var stagedPath string
	extractor := &mockExtractor{
		extractFunc: func(ctx context.Context, path string, lang string) (string, error) {
			stagedPath = path
			assert.Equal(t, "eng+hin", lang)
			data, err := os.ReadFile(path)
			require.NoError(t, err, "staged file must exist during extraction")
			return string(data), nil
		},
	}
	formatter := &mockFormatter{
		writeFunc: func(text string, format string, baseName string) (string, error) {
			assert.Equal(t, "Hello World", text)
			assert.Equal(t, "txt", format)
			assert.Equal(t, "notes", baseName)
			return "notes_20250101_120000.txt", nil
		},
	}

	handler := newTestHandler(config, extractor, formatter)
	rec := httptest.NewRecorder()
	handler.ProcessHandler(rec, multipartUpload(t, "notes.txt", []byte("Hello World"), nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.ProcessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Hello World", resp.Preview)
	assert.Equal(t, "notes_20250101_120000.txt", resp.Filename)
	assert.Equal(t, "/download/notes_20250101_120000.txt", resp.DownloadURL)

	// Staged upload is removed after the request completes
	_, err := os.Stat(stagedPath)
	assert.True(t, os.IsNotExist(err), "staged file %s must be cleaned up", stagedPath)
}

func TestProcessHandler_DefaultsFormatAndLang(t *testing.T) {
	config := newTestConfig(t)
	config.OCR.Languages = "eng"

	extractor := &mockExtractor{
		extractFunc: func(ctx context.Context, path string, lang string) (string, error) {
			assert.Equal(t, "eng", lang)
			return "content", nil
		},
	}
	formatter := &mockFormatter{
		writeFunc: func(text string, format string, baseName string) (string, error) {
			assert.Equal(t, "txt", format)
			return "out.txt", nil
		},
	}

	handler := newTestHandler(config, extractor, formatter)
	rec := httptest.NewRecorder()
	handler.ProcessHandler(rec, multipartUpload(t, "a.txt", []byte("x"), nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProcessHandler_ExplicitFormatAndLang(t *testing.T) {
	config := newTestConfig(t)

	extractor := &mockExtractor{
		extractFunc: func(ctx context.Context, path string, lang string) (string, error) {
			assert.Equal(t, "hin", lang)
			return "content", nil
		},
	}
	formatter := &mockFormatter{
		writeFunc: func(text string, format string, baseName string) (string, error) {
			assert.Equal(t, "md", format)
			return "out.md", nil
		},
	}

	handler := newTestHandler(config, extractor, formatter)
	rec := httptest.NewRecorder()
	handler.ProcessHandler(rec, multipartUpload(t, "a.txt", []byte("x"), map[string]string{
		"format": "md",
		"lang":   "hin",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProcessHandler_NoFilePart(t *testing.T) {
	handler := newTestHandler(newTestConfig(t), &mockExtractor{}, &mockFormatter{})

	rec := httptest.NewRecorder()
	handler.ProcessHandler(rec, multipartUpload(t, "", nil, map[string]string{"format": "txt"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file part", decodeError(t, rec))
}

func TestProcessHandler_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(newTestConfig(t), &mockExtractor{}, &mockFormatter{})

	rec := httptest.NewRecorder()
	handler.ProcessHandler(rec, httptest.NewRequest("GET", "/process", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestProcessHandler_EmptyExtraction(t *testing.T) {
	config := newTestConfig(t)
	extractor := &mockExtractor{
		extractFunc: func(ctx context.Context, path string, lang string) (string, error) {
			return "   \n\t  ", nil
		},
	}

	handler := newTestHandler(config, extractor, &mockFormatter{})
	rec := httptest.NewRecorder()
	handler.ProcessHandler(rec, multipartUpload(t, "blank.png", []byte("fake image"), nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Could not detect any text. Ensure the image is clear.", decodeError(t, rec))

	// Cleanup also runs on the failure path
	entries, err := os.ReadDir(config.Storage.UploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcessHandler_ExtractionError(t *testing.T) {
	config := newTestConfig(t)
	extractor := &mockExtractor{
		extractFunc: func(ctx context.Context, path string, lang string) (string, error) {
			return "", fmt.Errorf("page 3: render failed")
		},
	}

	handler := newTestHandler(config, extractor, &mockFormatter{})
	rec := httptest.NewRecorder()
	handler.ProcessHandler(rec, multipartUpload(t, "bad.pdf", []byte("broken"), nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "page 3: render failed", decodeError(t, rec))

	entries, err := os.ReadDir(config.Storage.UploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcessHandler_FormatterError(t *testing.T) {
	config := newTestConfig(t)
	extractor := &mockExtractor{
		extractFunc: func(ctx context.Context, path string, lang string) (string, error) {
			return "text", nil
		},
	}
	formatter := &mockFormatter{
		writeFunc: func(text string, format string, baseName string) (string, error) {
			return "", fmt.Errorf("write txt artifact: disk full")
		},
	}

	handler := newTestHandler(config, extractor, formatter)
	rec := httptest.NewRecorder()
	handler.ProcessHandler(rec, multipartUpload(t, "a.txt", []byte("text"), nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestProcessHandler_SanitizesFilename(t *testing.T) {
	config := newTestConfig(t)

	extractor := &mockExtractor{
		extractFunc: func(ctx context.Context, path string, lang string) (string, error) {
			// The staged name must not contain path components
			assert.Equal(t, "passwd", filepath.Base(path))
			assert.Equal(t, config.Storage.UploadDir, filepath.Dir(path))
			return "content", nil
		},
	}

	handler := newTestHandler(config, extractor, &mockFormatter{})
	rec := httptest.NewRecorder()
	handler.ProcessHandler(rec, multipartUpload(t, "../../etc/passwd", []byte("content"), nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProcessHandler_UnrecognizedFormatStillSucceeds(t *testing.T) {
	// Compatibility quirk: an unknown target format writes no artifact but
	// the request still reports success, with a download URL referencing a
	// file that does not exist (see DESIGN.md).
	config := newTestConfig(t)
	extractor := &mockExtractor{
		extractFunc: func(ctx context.Context, path string, lang string) (string, error) {
			return "text", nil
		},
	}
	formatter := &mockFormatter{
		writeFunc: func(text string, format string, baseName string) (string, error) {
			assert.Equal(t, "xlsx", format)
			return "a_20250101_120000.xlsx", nil
		},
	}

	handler := newTestHandler(config, extractor, formatter)
	rec := httptest.NewRecorder()
	handler.ProcessHandler(rec, multipartUpload(t, "a.txt", []byte("text"), map[string]string{"format": "xlsx"}))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ProcessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "a_20250101_120000.xlsx", resp.Filename)
	assert.Equal(t, "/download/a_20250101_120000.xlsx", resp.DownloadURL)

	// The referenced artifact was never written
	_, err := os.Stat(filepath.Join(config.Storage.OutputDir, resp.Filename))
	assert.True(t, os.IsNotExist(err))
}

func TestProcessHandler_PreviewTruncated(t *testing.T) {
	config := newTestConfig(t)
	long := strings.Repeat("x", 4000)

	extractor := &mockExtractor{
		extractFunc: func(ctx context.Context, path string, lang string) (string, error) {
			return long, nil
		},
	}

	handler := newTestHandler(config, extractor, &mockFormatter{})
	rec := httptest.NewRecorder()
	handler.ProcessHandler(rec, multipartUpload(t, "big.txt", []byte("seed"), nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ProcessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Preview, 1500)
}
