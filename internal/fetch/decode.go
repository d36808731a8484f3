package fetch

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeUTF8 returns b as text with a leading UTF-8 byte-order mark removed.
func DecodeUTF8(b []byte) string {
	return string(bytes.TrimPrefix(b, utf8BOM))
}

// legacyEncodings are tried in order after strict UTF-8 fails. Bytes listed in
// undefined have no mapping in that encoding; the x/text decoder would turn
// them into U+FFFD instead of failing, so they reject the encoding up front.
var legacyEncodings = []struct {
	name      string
	enc       encoding.Encoding
	undefined []byte
}{
	{"windows-1252", charmap.Windows1252, []byte{0x81, 0x8D, 0x8F, 0x90, 0x9D}},
	{"iso-8859-1", charmap.ISO8859_1, nil},
}

// DecodeLegacy decodes b as UTF-8 (BOM tolerated) and falls back to
// Windows-1252 and then ISO-8859-1. It returns the text and the encoding used.
func DecodeLegacy(b []byte) (string, string, error) {
	trimmed := bytes.TrimPrefix(b, utf8BOM)
	if utf8.Valid(trimmed) {
		return string(trimmed), "utf-8", nil
	}

	var lastErr error
	for _, le := range legacyEncodings {
		if i := indexOfAnyByte(b, le.undefined); i >= 0 {
			lastErr = fmt.Errorf("byte 0x%02X at offset %d is undefined in %s", b[i], i, le.name)
			continue
		}
		out, err := le.enc.NewDecoder().Bytes(b)
		if err != nil {
			lastErr = err
			continue
		}
		return string(out), le.name, nil
	}
	return "", "", fmt.Errorf("no encoding could decode payload: %w", lastErr)
}

func indexOfAnyByte(b, set []byte) int {
	for i, c := range b {
		if bytes.IndexByte(set, c) >= 0 {
			return i
		}
	}
	return -1
}
