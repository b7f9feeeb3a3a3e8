package extract

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// plainText reads a file as text. Valid UTF-8 passes through unchanged
// (byte-for-byte); anything else goes through charset detection before
// decoding, falling back to a raw UTF-8 interpretation.
func plainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	detector := chardet.NewTextDetector()
	if result, err := detector.DetectBest(data); err == nil {
		if enc := lookupEncoding(result.Charset); enc != nil {
			if decoded, err := enc.NewDecoder().Bytes(data); err == nil {
				return string(decoded), nil
			}
		}
	}

	// Fallback: treat as UTF-8
	return string(data), nil
}

// lookupEncoding maps the charset names chardet commonly reports to Go
// encoding implementations.
func lookupEncoding(charset string) encoding.Encoding {
	normalized := strings.ToLower(charset)
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, "_", "")
	switch normalized {
	case "utf8":
		return unicode.UTF8
	case "utf16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "utf16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case "iso88591", "latin1":
		return charmap.ISO8859_1
	case "windows1252", "cp1252":
		return charmap.Windows1252
	case "windows1251", "cp1251":
		return charmap.Windows1251
	case "shiftjis", "sjis":
		return japanese.ShiftJIS
	case "eucjp":
		return japanese.EUCJP
	case "gb2312", "gbk", "gb18030":
		return simplifiedchinese.GBK
	}
	return nil
}
