package pdl

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dkogan/cvbindgen/internal/codegen/meta"
)

var paramRe = regexp.MustCompile(`^(?:(int|float|double) +)?(?:\[(o|io)\] +)?([A-Za-z_]\w*)\(([^()]*)\)$`)

// ParseParam parses one serialized parameter fragment back into role,
// element type, name and dimension tokens. It is the inverse of
// meta.Argument.Param and backs the declaration round-trip checks.
func ParseParam(frag string) (meta.Argument, error) {
	m := paramRe.FindStringSubmatch(strings.TrimSpace(frag))
	if m == nil {
		return meta.Argument{}, fmt.Errorf("malformed parameter fragment %q", frag)
	}

	a := meta.Argument{
		Elem: meta.ElemType(m[1]),
		Name: m[3],
	}
	switch m[2] {
	case "o":
		a.Role = meta.RoleOutput
	case "io":
		a.Role = meta.RoleInputOutput
	default:
		a.Role = meta.RoleInput
	}
	if m[4] != "" {
		for _, d := range strings.Split(m[4], ",") {
			a.Dims = append(a.Dims, strings.TrimSpace(d))
		}
	}
	return a, nil
}

// ParsePars splits a combined declaration string and parses every fragment.
func ParsePars(pars string) ([]meta.Argument, error) {
	var out []meta.Argument
	for _, frag := range strings.Split(pars, ";") {
		frag = strings.TrimSpace(frag)
		if frag == "" {
			continue
		}
		a, err := ParseParam(frag)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
