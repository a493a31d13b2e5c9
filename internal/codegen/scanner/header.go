// Package scanner extracts the raw material for binding generation from C
// header text: export-macro function declarations, argument-list fragments
// and object-like #define candidates. Everything here is purely textual;
// classification of what the text means happens downstream.
package scanner

import "strings"

// Normalize prepares raw header bytes for scanning: carriage returns are
// stripped, tabs become spaces, and backslash line continuations are joined
// so every #define occupies a single line.
func Normalize(src []byte) string {
	s := strings.ReplaceAll(string(src), "\r", "")
	s = strings.ReplaceAll(s, "\\\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	return s
}
