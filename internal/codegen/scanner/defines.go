package scanner

import "regexp"

// A candidate is any object-like "#define NAME value" on one line. The
// mandatory space between NAME and value rejects function-like macros,
// whose name is immediately followed by '('.
var defineRe = regexp.MustCompile(`(?m)^[ ]*#[ ]*define[ ]+([A-Za-z_]\w*)[ ]+(\S.*)$`)

// ScanDefines returns the names of the object-like macro candidates in the
// header text, in textual order. Values are not captured here; the
// preprocessor resolves them so nested macros and arithmetic expand fully.
func ScanDefines(text string) []string {
	var names []string
	for _, m := range defineRe.FindAllStringSubmatch(text, -1) {
		names = append(names, m[1])
	}
	return names
}
