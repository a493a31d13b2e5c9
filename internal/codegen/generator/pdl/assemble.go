// Package pdl assembles classified argument lists into the textual surface
// the PDL build consumes: the Pars declaration string, the per-function
// call-emission code and the pp_def registrations themselves.
package pdl

import (
	"fmt"
	"strings"

	"github.com/dkogan/cvbindgen/internal/codegen/meta"
)

// Pars joins the serialized parameter fragments into the combined
// declaration string, return slot first when present.
func Pars(args []meta.Argument) string {
	frags := make([]string, len(args))
	for i := range args {
		frags[i] = args[i].Param()
	}
	return strings.Join(frags, "; ")
}

// CallPlan is the call-emission intermediate representation: the ordered
// marshaling steps plus the single native call expression. Rendering is
// the only string-producing stage, so the plan itself stays testable
// without compiling any output.
type CallPlan struct {
	Native string
	Ret    *meta.Argument
	Args   []meta.Argument // declaration order, return slot excluded
}

// NewPlan builds the call plan for one binding's classified argument list
// (return slot first when the function returns a value).
func NewPlan(native string, args []meta.Argument) *CallPlan {
	p := &CallPlan{Native: native}
	for i := range args {
		if args[i].IsReturn {
			p.Ret = &args[i]
			continue
		}
		p.Args = append(p.Args, args[i])
	}
	return p
}

// MarshalStep is one matrix-descriptor construction preceding the call.
type MarshalStep struct {
	Arg   meta.Argument
	Mat   string // CvMat variable
	Ptr   string // CvMat* variable passed to the call
	Depth string // element depth expression
}

// Steps returns the marshaling prologue: one step per matrix argument.
func (p *CallPlan) Steps() []MarshalStep {
	var steps []MarshalStep
	for _, a := range p.Args {
		if !a.IsMatrix {
			continue
		}
		steps = append(steps, MarshalStep{
			Arg:   a,
			Mat:   "m_" + a.Name,
			Ptr:   "p_" + a.Name,
			Depth: depthExpr(a),
		})
	}
	return steps
}

// depthExpr picks the OpenCV depth for a matrix argument: its explicit
// element override when it carries one, otherwise the generic selector
// that resolves per instantiation.
func depthExpr(a meta.Argument) string {
	if d := meta.DepthFor(a.Elem); d != "" {
		return d
	}
	depths := make([]string, len(meta.GenTypes))
	letters := make([]string, len(meta.GenTypes))
	for i, gt := range meta.GenTypes {
		depths[i] = gt.Depth
		letters[i] = gt.Letter
	}
	return fmt.Sprintf("$T%s(%s)", strings.Join(letters, ""), strings.Join(depths, ","))
}

// Render produces the call-emission code fragment. Matrix descriptors are
// built only when both axis sizes are non-zero; an empty buffer binds a
// null descriptor, which OpenCV accepts for optional array arguments.
func (p *CallPlan) Render() string {
	var b strings.Builder

	for _, s := range p.Steps() {
		d0, d1 := s.Arg.Dims[0], s.Arg.Dims[1]
		fmt.Fprintf(&b, "CvMat %s; CvMat *%s = NULL;\n", s.Mat, s.Ptr)
		fmt.Fprintf(&b, "if ($SIZE(%s) && $SIZE(%s)) {\n", d0, d1)
		fmt.Fprintf(&b, "  %s = cvMat($SIZE(%s), $SIZE(%s), %s, $P(%s));\n",
			s.Mat, d0, d1, s.Depth, s.Arg.Name)
		fmt.Fprintf(&b, "  %s = &%s;\n", s.Ptr, s.Mat)
		b.WriteString("}\n")
	}

	var actuals []string
	for _, a := range p.Args {
		if a.IsMatrix {
			actuals = append(actuals, "p_"+a.Name)
			continue
		}
		// Scalars and aggregates travel in one-axis buffers on the binding
		// side but are passed to the native function by value.
		actuals = append(actuals, fmt.Sprintf("*(%s *)$P(%s)", a.Type, a.Name))
	}

	call := fmt.Sprintf("%s(%s)", p.Native, strings.Join(actuals, ", "))
	if p.Ret != nil {
		fmt.Fprintf(&b, "*(%s *)$P(%s) = %s;\n", p.Ret.Type, p.Ret.Name, call)
	} else {
		fmt.Fprintf(&b, "%s;\n", call)
	}
	return b.String()
}

// Doc builds the documentation stub registered with a binding.
func Doc(b *meta.Binding) string {
	var d strings.Builder
	fmt.Fprintf(&d, "=for ref\n\nBinding for the OpenCV function C<%s>.\n", b.NativeName)
	if len(b.Args) > 0 {
		fmt.Fprintf(&d, "\nSignature: C<%s>.\n", b.Pars)
	}
	return d.String()
}
