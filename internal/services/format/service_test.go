package format

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	return NewService(dir, arbor.NewLogger()), dir
}

func readArtifact(t *testing.T, dir, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return data
}

func TestWrite_Txt(t *testing.T) {
	svc, dir := newTestService(t)

	name, err := svc.Write("Hello World\nSecond line", "txt", "scan")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(name, "scan_"), "artifact name %q", name)
	assert.True(t, strings.HasSuffix(name, ".txt"), "artifact name %q", name)

	// txt artifacts carry the extracted text byte-for-byte
	assert.Equal(t, "Hello World\nSecond line", string(readArtifact(t, dir, name)))
}

func TestWrite_Markdown(t *testing.T) {
	svc, dir := newTestService(t)

	name, err := svc.Write("body text", "md", "scan")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".md"))

	got := string(readArtifact(t, dir, name))
	assert.Equal(t, "# OCR Result\n\nbody text", got)
}

func TestWrite_CSV(t *testing.T) {
	svc, dir := newTestService(t)

	name, err := svc.Write("first line\n\n   \nsecond, with comma", "csv", "scan")
	require.NoError(t, err)

	data := readArtifact(t, dir, name)
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "missing UTF-8 BOM")

	body := string(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	require.Len(t, lines, 3, "header plus two non-blank rows")
	assert.Equal(t, "Content", lines[0])
	assert.Equal(t, "first line", lines[1])
	assert.Equal(t, `"second, with comma"`, lines[2])
}

func TestWrite_Docx(t *testing.T) {
	svc, dir := newTestService(t)

	name, err := svc.Write("Document body", "docx", "scan")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".docx"))

	// The artifact must be a readable Word container with a document body
	zr, err := zip.OpenReader(filepath.Join(dir, name))
	require.NoError(t, err)
	defer zr.Close()

	found := false
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			found = true
		}
	}
	assert.True(t, found, "word/document.xml missing from container")
}

func TestWrite_PDF(t *testing.T) {
	svc, dir := newTestService(t)

	name, err := svc.Write("First paragraph\n\nSecond paragraph", "pdf", "scan")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".pdf"))

	data := readArtifact(t, dir, name)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "not a PDF document")
}

func TestWrite_UnrecognizedFormat(t *testing.T) {
	svc, dir := newTestService(t)

	name, err := svc.Write("some text", "xlsx", "scan")
	require.NoError(t, err)

	// The timestamped filename is still returned even though no artifact
	// is written for unknown formats
	assert.True(t, strings.HasPrefix(name, "scan_"), "artifact name %q", name)
	assert.True(t, strings.HasSuffix(name, ".xlsx"), "artifact name %q", name)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWrite_ArtifactNameTimestamped(t *testing.T) {
	svc, _ := newTestService(t)

	name, err := svc.Write("text", "txt", "report")
	require.NoError(t, err)

	// report_<YYYYMMDD_HHMMSS>.txt
	trimmed := strings.TrimSuffix(strings.TrimPrefix(name, "report_"), ".txt")
	parts := strings.Split(trimmed, "_")
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 8)
	assert.Len(t, parts[1], 6)
}
