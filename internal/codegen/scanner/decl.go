package scanner

import (
	"log/slog"
	"regexp"

	"github.com/dkogan/cvbindgen/internal/codegen/meta"
)

// ExportMacro is the annotation macro wrapping every public declaration in
// the OpenCV C headers: CVAPI(returnType) name(args);
const ExportMacro = "CVAPI"

var declRe = regexp.MustCompile(`(?s)` + ExportMacro + `\s*\(\s*([^()]+?)\s*\)\s*(\w+)\s*\((.*?)\)\s*;`)

// ScanDeclarations returns every export-macro declaration in the header
// text, in textual order. Declarations whose function name does not start
// with prefix are logged and dropped; the prefix itself stays on the name
// so the caller can derive the public name.
func ScanDeclarations(logger *slog.Logger, text, prefix string) []meta.RawDecl {
	var decls []meta.RawDecl
	for _, m := range declRe.FindAllStringSubmatch(text, -1) {
		d := meta.RawDecl{Return: m[1], Name: m[2], Args: m[3]}
		if !hasPrefix(d.Name, prefix) {
			logger.Debug("skipping declaration without library prefix", "function", d.Name)
			continue
		}
		decls = append(decls, d)
	}
	return decls
}

// hasPrefix requires the prefix to be followed by more of the name; a
// function named exactly like the prefix has no public name left.
func hasPrefix(name, prefix string) bool {
	return len(name) > len(prefix) && name[:len(prefix)] == prefix
}
