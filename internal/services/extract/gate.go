package extract

import (
	"github.com/Kgsflink/ocr-pdf-to-txt/internal/common"
)

// allowedExtensions is the upload allow-list. The gate is advisory: the
// dispatcher still routes unknown extensions to the plain-text reader, the
// same fall-through the service has always had (see DESIGN.md).
var allowedExtensions = map[string]struct{}{
	"pdf":  {},
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"docx": {},
	"txt":  {},
}

// AllowedFile reports whether the filename carries a supported extension.
// Filenames without an extension separator are rejected.
func AllowedFile(filename string) bool {
	ext := common.Extension(filename)
	if ext == "" {
		return false
	}
	_, ok := allowedExtensions[ext]
	return ok
}
