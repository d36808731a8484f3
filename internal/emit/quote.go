package emit

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Quote encodes s as a double-quoted JSON string literal, which is also a valid
// JavaScript string literal. HTML characters are kept as is.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// FormatLocation joins the parts of one location entry, most specific first.
func FormatLocation(parts ...string) string {
	return strings.Join(parts, ", ")
}

// Render produces the artifact body: a LOCATIONS array with one quoted entry
// per line.
func Render(entries []string) []byte {
	var buf bytes.Buffer
	buf.WriteString("LOCATIONS = [\n")
	for i, e := range entries {
		buf.WriteString("  ")
		buf.WriteString(Quote(e))
		if i+1 < len(entries) {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("]\n")
	return buf.Bytes()
}
