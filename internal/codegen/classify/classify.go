// Package classify turns one raw argument substring (or return-type
// substring) into a structured descriptor: base type, pointer depth,
// constness, role, element type and dimensionality. A classification error
// on any argument rejects the whole enclosing function; partial bindings
// are never produced.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dkogan/cvbindgen/internal/codegen/meta"
)

var (
	identRe = regexp.MustCompile(`^[A-Za-z_]\w*`)
	countRe = regexp.MustCompile(`(?i)counts?$`)
)

// Argument classifies one argument substring. isReturn marks the return
// slot, which takes no declared name and whose role is forced to output.
// A (nil, nil) result means a void return: no descriptor is synthesized.
func Argument(frag string, isReturn bool) (*meta.Argument, error) {
	tok, err := tokenize(frag, isReturn)
	if err != nil {
		return nil, err
	}
	if tok.pointerDepth > 1 {
		return nil, fmt.Errorf("cannot express double indirection in %q", frag)
	}

	r, err := lookup(tok.base)
	if err != nil {
		return nil, err
	}

	arg := &meta.Argument{
		Type:         tok.base,
		PointerDepth: tok.pointerDepth,
		Const:        tok.isConst,
		Name:         tok.name,
		Suffix:       tok.suffix,
		IsReturn:     isReturn,
	}
	if isReturn {
		arg.Name = meta.ReturnName
	}

	switch r.kind {
	case kindMatrix:
		if isReturn {
			return nil, fmt.Errorf("array type %s cannot be returned by value", tok.base)
		}
		if tok.pointerDepth == 0 {
			return nil, fmt.Errorf("array type %s must be passed by pointer", tok.base)
		}
		arg.IsMatrix = true
		arg.Role = meta.RoleInputOutput
		if tok.isConst {
			arg.Role = meta.RoleInput
		}
		// OpenCV-style count parameters hold indices whatever the ambient
		// numeric type is.
		if countRe.MatchString(tok.name) {
			arg.Elem = meta.ElemInt
		}
		arg.Dims = matrixDims(tok.name)

	case kindVoid:
		if !isReturn || tok.pointerDepth > 0 {
			return nil, fmt.Errorf("unsupported type in %q", frag)
		}
		return nil, nil

	case kindScalar, kindPair, kindFloatVec, kindQuad:
		if tok.pointerDepth > 0 {
			return nil, fmt.Errorf("cannot pass %s by pointer", tok.base)
		}
		arg.Elem = r.elem
		arg.Dims = []string{fmt.Sprint(r.dim)}
		arg.Role = meta.RoleInput

	default:
		return nil, fmt.Errorf("unsupported type in %q", frag)
	}

	if isReturn {
		arg.Role = meta.RoleOutput
	}
	return arg, nil
}

// token is the lexed form of one argument substring.
type token struct {
	base         string
	pointerDepth int
	isConst      bool
	name         string
	suffix       string
}

// tokenize runs the fixed lexing stages: const qualifier, base type token,
// pointer markers, declared name, trailing qualifier text.
func tokenize(frag string, isReturn bool) (token, error) {
	var tok token
	s := strings.TrimSpace(frag)

	if rest, ok := strings.CutPrefix(s, "const "); ok {
		tok.isConst = true
		s = strings.TrimSpace(rest)
	}

	base := identRe.FindString(s)
	if base == "" {
		return tok, fmt.Errorf("no type token in %q", frag)
	}
	tok.base = base
	s = s[len(base):]

	// Pointer markers may be spaced out on either side: "CvMat *  *x".
stars:
	for len(s) > 0 {
		switch s[0] {
		case '*':
			tok.pointerDepth++
			s = s[1:]
		case ' ':
			s = s[1:]
		default:
			break stars
		}
	}

	if isReturn {
		if s != "" {
			return tok, fmt.Errorf("trailing text %q in return type", s)
		}
		return tok, nil
	}

	name := identRe.FindString(s)
	if name == "" {
		return tok, fmt.Errorf("no argument name in %q", frag)
	}
	tok.name = name
	tok.suffix = strings.TrimSpace(s[len(name):])
	return tok, nil
}

// matrixDims derives the two axis tokens of a matrix argument from its
// sanitized (underscore-stripped) name.
func matrixDims(name string) []string {
	base := strings.ReplaceAll(name, "_", "")
	return []string{base + "0", base + "1"}
}
