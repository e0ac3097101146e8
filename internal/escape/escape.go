// Package escape converts between literal strings and the escaped text
// found between quotes in alt-config documents.
package escape

import "strings"

// trailingSpace is the set of bytes trimmed from the end of every
// unescaped value.
const trailingSpace = " \t\n\v\f\r"

// Unescape resolves the backslash escapes in raw and trims trailing
// whitespace from the result.
//
// \n and a backslash followed by a literal newline both yield a newline, \r
// yields a carriage return and \', \" and \\ yield the escaped character.
// Any other escape is kept as written, backslash included.
func Unescape(raw string) string {
	if strings.IndexByte(raw, '\\') < 0 {
		return strings.TrimRight(raw, trailingSpace)
	}

	var buf strings.Builder
	buf.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 == len(raw) {
			buf.WriteByte(c)
			continue
		}
		i++
		switch c = raw[i]; c {
		case 'n', '\n':
			buf.WriteByte('\n')
		case 'r':
			buf.WriteByte('\r')
		case '\'', '"', '\\':
			buf.WriteByte(c)
		default:
			buf.WriteByte('\\')
			buf.WriteByte(c)
		}
	}
	return strings.TrimRight(buf.String(), trailingSpace)
}

// Escape is the inverse of Unescape for newlines, carriage returns, quotes
// and backslashes. All other bytes are copied unchanged.
func Escape(s string) string {
	if !strings.ContainsAny(s, "\n\r'\"\\") {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\'', '"', '\\':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		default:
			buf.WriteByte(c)
		}
	}
	return buf.String()
}
