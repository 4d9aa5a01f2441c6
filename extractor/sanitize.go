package extractor

import "strings"

// Sanitize strips markup debris from a URL captured out of raw page text.
//
// The input is scanned once, left to right. "&amp;" decodes to "&" and the
// decoded ampersand is scanned again, so nested escapes collapse fully.
// "&lt;", "&gt;", "&quot;", "&#039;", "&#34;" and "&#39;" decode to
// characters that end a URL, as do "\"" and any raw `"`, `'`, `<`, `>` or
// backslash. "\/" becomes "/".
// Surrounding whitespace is trimmed. Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(raw string) string {
	buf := []byte(raw)
	var out strings.Builder
	out.Grow(len(buf))

	for i := 0; i < len(buf); i++ {
		switch c := buf[i]; c {
		case '"', '\'', '<', '>':
			return strings.TrimSpace(out.String())

		case '\\':
			if i+1 < len(buf) && buf[i+1] == '/' {
				out.WriteByte('/')
				i++
				continue
			}
			// `\"` unescapes to a quote, which terminates just like a bare backslash.
			return strings.TrimSpace(out.String())

		case '&':
			rest := buf[i:]
			if hasPrefix(rest, "&amp;") {
				// Rewrite the entity's last byte to '&' and resume there.
				buf[i+4] = '&'
				i += 3
				continue
			}
			if endsURL(rest) {
				return strings.TrimSpace(out.String())
			}
			out.WriteByte(c)

		default:
			out.WriteByte(c)
		}
	}

	return strings.TrimSpace(out.String())
}

// terminatingEntities decode to a quote or angle bracket. "&#34;" and "&#39;"
// are what the html serializer writes for quotes in attributes and text.
var terminatingEntities = []string{"&lt;", "&gt;", "&quot;", "&#039;", "&#34;", "&#39;"}

func endsURL(b []byte) bool {
	for _, ent := range terminatingEntities {
		if hasPrefix(b, ent) {
			return true
		}
	}
	return false
}

func hasPrefix(b []byte, prefix string) bool {
	return len(b) >= len(prefix) && string(b[:len(prefix)]) == prefix
}
