package session

import "strings"

// Group splits msg into runs of width symbols separated by single spaces.
// A width of zero or less returns msg unchanged.
func Group(msg string, width int) string {
	if width <= 0 {
		return msg
	}
	rs := []rune(msg)
	var b strings.Builder
	b.Grow(len(msg) + len(msg)/width)
	for i := 0; i < len(rs); i += width {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(rs[i:min(i+width, len(rs))]))
	}
	return b.String()
}
