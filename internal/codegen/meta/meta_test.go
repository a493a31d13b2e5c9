package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstantTable(t *testing.T) {
	tbl := NewConstantTable()

	assert.True(t, tbl.Set("FOO", "1"))
	assert.True(t, tbl.Set("BAR", "2"))
	assert.False(t, tbl.Set("FOO", "99"), "second writer loses")

	v, ok := tbl.Get("FOO")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	assert.Equal(t, []string{"FOO", "BAR"}, tbl.Names())
	assert.Equal(t, 2, tbl.Len())

	_, ok = tbl.Get("MISSING")
	assert.False(t, ok)
}

func TestRoleMarkers(t *testing.T) {
	assert.Equal(t, "", RoleInput.Marker())
	assert.Equal(t, "[o]", RoleOutput.Marker())
	assert.Equal(t, "[io]", RoleInputOutput.Marker())
}

func TestArgumentParam(t *testing.T) {
	a := Argument{Name: "src", Dims: []string{"src0", "src1"}, Role: RoleInput}
	assert.Equal(t, "src(src0,src1)", a.Param())

	a = Argument{Name: ReturnName, Elem: ElemDouble, Dims: []string{"1"}, Role: RoleOutput}
	assert.Equal(t, "double [o] ret(1)", a.Param())
}
