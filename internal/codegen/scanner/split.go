package scanner

import "strings"

// SplitArgs splits a raw argument-list string on commas at parenthesis
// depth zero, so commas inside function-pointer or array-bound
// sub-expressions never split a parameter. Empty fragments and fragments
// that are entirely one parenthesized group are dropped; both show up as
// macro artifacts in real headers.
func SplitArgs(list string) []string {
	var out []string
	depth := 0
	start := 0
	flush := func(end int) {
		frag := strings.TrimSpace(list[start:end])
		if frag == "" || parenGroup(frag) {
			return
		}
		out = append(out, frag)
	}
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(list))
	return out
}

// parenGroup reports whether s is a single balanced parenthesized group
// with nothing outside it.
func parenGroup(s string) bool {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return false
			}
		}
	}
	return depth == 0
}
