package common

import (
	"path/filepath"
	"strings"
)

// SanitizeFilename reduces a client-supplied filename to a safe base name
// for use inside the staging directory. Path separators and parent
// references are stripped; anything outside a conservative character set
// becomes an underscore.
func SanitizeFilename(name string) string {
	// Drop any directory components the client may have sent
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == ".." || name == "/" {
		return ""
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := strings.Trim(b.String(), ".")
	return out
}

// BaseName returns the filename without its final extension.
func BaseName(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[:idx]
	}
	return name
}

// Extension returns the lowercase extension after the final '.', or an
// empty string when the name has no extension separator.
func Extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}
