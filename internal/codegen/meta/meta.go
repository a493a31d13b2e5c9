// Package meta holds the data model shared by the scanner, classifier and
// generator: raw declarations, classified arguments, finished bindings and
// the accumulated constant table for one generation run.
package meta

import "strings"

// Role describes whether the native call reads, writes, or both reads and
// writes an argument's buffer.
type Role int

const (
	RoleInput Role = iota
	RoleOutput
	RoleInputOutput
)

// Marker returns the declaration marker used in a parameter fragment.
func (r Role) Marker() string {
	switch r {
	case RoleOutput:
		return "[o]"
	case RoleInputOutput:
		return "[io]"
	default:
		return ""
	}
}

func (r Role) String() string {
	switch r {
	case RoleOutput:
		return "output"
	case RoleInputOutput:
		return "input-output"
	default:
		return "input"
	}
}

// ElemType is the element storage type of an argument's buffer. ElemGeneric
// means the type is inherited from the active generic instantiation.
type ElemType string

const (
	ElemGeneric ElemType = ""
	ElemInt     ElemType = "int"
	ElemFloat   ElemType = "float"
	ElemDouble  ElemType = "double"
)

// GenType is one generic numeric instantiation bindings are generated for.
type GenType struct {
	Letter string // generic type letter in the host language
	Depth  string // matching OpenCV depth constant
	CType  string
}

// GenTypes is the fixed closed set of supported instantiations, in emission
// order.
var GenTypes = []GenType{
	{"B", "CV_8U", "unsigned char"},
	{"S", "CV_16S", "short"},
	{"U", "CV_16U", "unsigned short"},
	{"L", "CV_32S", "int"},
	{"F", "CV_32F", "float"},
	{"D", "CV_64F", "double"},
}

// DepthFor maps an explicit element type to its OpenCV depth constant.
func DepthFor(e ElemType) string {
	switch e {
	case ElemInt:
		return "CV_32S"
	case ElemFloat:
		return "CV_32F"
	case ElemDouble:
		return "CV_64F"
	default:
		return ""
	}
}

// ReturnName is the sentinel name given to the synthesized return slot.
const ReturnName = "ret"

// RawDecl is a scanned function declaration before any classification.
type RawDecl struct {
	Return string
	Name   string
	Args   string
}

// Argument is one classified argument (or the return slot) of a binding.
// Immutable once constructed.
type Argument struct {
	Type         string // base C type, pointer markers stripped
	PointerDepth int
	Const        bool
	Name         string
	Suffix       string // trailing qualifier text, e.g. array bounds, kept verbatim
	Role         Role
	Elem         ElemType
	Dims         []string
	IsMatrix     bool
	IsReturn     bool
}

// Param serializes the argument into its parameter-declaration fragment:
// optional element-type prefix, role marker, name, and dimension list.
func (a *Argument) Param() string {
	var b strings.Builder
	if a.Elem != ElemGeneric {
		b.WriteString(string(a.Elem))
		b.WriteByte(' ')
	}
	if m := a.Role.Marker(); m != "" {
		b.WriteString(m)
		b.WriteByte(' ')
	}
	b.WriteString(a.Name)
	b.WriteByte('(')
	b.WriteString(strings.Join(a.Dims, ","))
	b.WriteByte(')')
	return b.String()
}

// Binding is one accepted function, ready for emission. Args holds the
// return slot first when the native function returns a value.
type Binding struct {
	Name       string // public name, library prefix stripped
	NativeName string
	Args       []Argument
	HasReturn  bool
	Pars       string
	Code       string
	Doc        string
}

// ConstantTable accumulates resolved macro values across all headers of a
// run. First writer wins; iteration order is insertion order.
type ConstantTable struct {
	names  []string
	values map[string]string
}

func NewConstantTable() *ConstantTable {
	return &ConstantTable{values: make(map[string]string)}
}

// Set records a constant unless the name is already present. It reports
// whether the value was stored.
func (t *ConstantTable) Set(name, value string) bool {
	if _, ok := t.values[name]; ok {
		return false
	}
	t.names = append(t.names, name)
	t.values[name] = value
	return true
}

func (t *ConstantTable) Get(name string) (string, bool) {
	v, ok := t.values[name]
	return v, ok
}

// Names returns the constant names in insertion order.
func (t *ConstantTable) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

func (t *ConstantTable) Len() int { return len(t.names) }

// Skip records one declaration the classifier rejected, for the run report.
type Skip struct {
	Header   string
	Function string
	Reason   string
}

// Metadata is the explicit run context: everything a generation run
// accumulates. Created once per run, passed around, discarded at run end.
type Metadata struct {
	Constants *ConstantTable
	Bindings  []Binding
	Skipped   []Skip
}

func NewMetadata() *Metadata {
	return &Metadata{Constants: NewConstantTable()}
}
