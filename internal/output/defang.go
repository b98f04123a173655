package output

import (
	"io"
	"regexp"
	"strings"
)

var (
	// defangSchemeRe matches http:// and https:// scheme prefixes.
	defangSchemeRe = regexp.MustCompile(`(?i)\b(https?)://`)
	// defangHostRe matches dotted names and IPv4 addresses. File names such as
	// "config.yaml" are caught too; over-defanging is harmless.
	defangHostRe = regexp.MustCompile(`\b[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)+\b`)
	// defangAtRe matches the @ of an email address.
	defangAtRe = regexp.MustCompile(`([A-Za-z0-9._%+-])@([A-Za-z0-9-])`)
)

// Defang makes indicators in s non-clickable:
// "https://evil.com" → "hxxps://evil[.]com", "a@b.com" → "a[@]b[.]com".
// Numbers with a decimal point such as "38.9" are left as they are.
func Defang(s string) string {
	s = defangSchemeRe.ReplaceAllStringFunc(s, func(match string) string {
		return strings.Replace(strings.ToLower(match), "http", "hxxp", 1)
	})
	s = defangAtRe.ReplaceAllString(s, "$1[@]$2")
	return defangHostRe.ReplaceAllStringFunc(s, func(host string) string {
		if isDecimal(host) {
			return host
		}
		return strings.ReplaceAll(host, ".", "[.]")
	})
}

// isDecimal reports whether s is a single number like "38.9".
func isDecimal(s string) bool {
	return strings.Count(s, ".") == 1 && strings.Trim(s, "0123456789.") == ""
}

// DefangWriter wraps an io.Writer and applies Defang on every Write call.
// Writes are expected to carry whole lines, which the table and plain
// renderers guarantee.
type DefangWriter struct {
	Inner io.Writer
}

// Write implements io.Writer; it defangs p before forwarding to the inner writer.
func (d *DefangWriter) Write(p []byte) (int, error) {
	written, err := io.WriteString(d.Inner, Defang(string(p)))
	if err != nil {
		return min(written, len(p)), err
	}
	// Report the original length; the expansion is not a short write.
	return len(p), nil
}
