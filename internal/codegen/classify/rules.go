package classify

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/dkogan/cvbindgen/internal/codegen/meta"
)

// kind tags one arm of the closed type-rule table. Every base type either
// matches exactly one arm or falls through to the explicit unsupported arm.
type kind int

const (
	kindUnsupported kind = iota
	kindMatrix           // generic 2-D array family, passed by pointer
	kindScalar           // plain int/float/double carried in a one-element buffer
	kindPair             // integer 2-D point/size aggregate
	kindFloatVec         // N-D floating point aggregate, e.g. CvPoint2D32f
	kindQuad             // 4-component double aggregate (CvScalar)
	kindVoid
)

// matrixTypes is the generic array/matrix family: the only types this
// binding style passes by pointer.
var matrixTypes = map[string]bool{
	"CvMat": true,
	"CvArr": true,
}

var pairTypes = map[string]bool{
	"CvPoint": true,
	"CvSize":  true,
}

// floatVecRe matches aggregates like CvPoint2D32f and CvPoint3D64f: an
// embedded dimension digit plus a float bit-width suffix.
var floatVecRe = regexp.MustCompile(`^Cv(?:Point|Size)(\d)D(\d+)f$`)

// rule is the resolved table entry for one base type.
type rule struct {
	kind kind
	elem meta.ElemType // fixed element type, when the arm dictates one
	dim  int           // fixed single-axis length for aggregate arms
}

// lookup resolves a base type token against the rule table.
func lookup(base string) (rule, error) {
	switch {
	case matrixTypes[base]:
		return rule{kind: kindMatrix}, nil
	case base == "int":
		return rule{kind: kindScalar, elem: meta.ElemInt, dim: 1}, nil
	case base == "float":
		return rule{kind: kindScalar, elem: meta.ElemFloat, dim: 1}, nil
	case base == "double":
		return rule{kind: kindScalar, elem: meta.ElemDouble, dim: 1}, nil
	case pairTypes[base]:
		return rule{kind: kindPair, elem: meta.ElemInt, dim: 2}, nil
	case base == "CvScalar":
		return rule{kind: kindQuad, elem: meta.ElemDouble, dim: 4}, nil
	case base == "void":
		return rule{kind: kindVoid}, nil
	}

	if m := floatVecRe.FindStringSubmatch(base); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch m[2] {
		case "32":
			return rule{kind: kindFloatVec, elem: meta.ElemFloat, dim: n}, nil
		case "64":
			return rule{kind: kindFloatVec, elem: meta.ElemDouble, dim: n}, nil
		default:
			return rule{}, fmt.Errorf("unsupported float width %sf in type %q", m[2], base)
		}
	}

	return rule{kind: kindUnsupported}, nil
}
