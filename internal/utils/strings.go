package utils

import "strings"

// SomenteDigitos strips every non-digit rune from a process number. The
// upstream index stores the undelimited numeric form, so
// "0000000-00.0000.0.00.0000" and its bare-digit spelling address the same
// document.
func SomenteDigitos(numero string) string {
	var b strings.Builder
	b.Grow(len(numero))
	for _, r := range numero {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
