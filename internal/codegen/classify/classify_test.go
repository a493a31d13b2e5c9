package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkogan/cvbindgen/internal/codegen/meta"
)

func TestArgumentMatrix(t *testing.T) {
	tests := []struct {
		name     string
		frag     string
		wantRole meta.Role
		wantElem meta.ElemType
		wantDims []string
	}{
		{
			name:     "non-const matrix is input-output",
			frag:     "CvMat* dst",
			wantRole: meta.RoleInputOutput,
			wantElem: meta.ElemGeneric,
			wantDims: []string{"dst0", "dst1"},
		},
		{
			name:     "const matrix is input-only",
			frag:     "const CvMat* src_img",
			wantRole: meta.RoleInput,
			wantElem: meta.ElemGeneric,
			wantDims: []string{"srcimg0", "srcimg1"},
		},
		{
			name:     "CvArr is part of the matrix family",
			frag:     "CvArr* arr",
			wantRole: meta.RoleInputOutput,
			wantElem: meta.ElemGeneric,
			wantDims: []string{"arr0", "arr1"},
		},
		{
			name:     "count-named matrix forces int elements",
			frag:     "const CvMat* point_counts",
			wantRole: meta.RoleInput,
			wantElem: meta.ElemInt,
			wantDims: []string{"pointcounts0", "pointcounts1"},
		},
		{
			name:     "Count suffix matches case-insensitively",
			frag:     "CvMat* nCount",
			wantRole: meta.RoleInputOutput,
			wantElem: meta.ElemInt,
			wantDims: []string{"nCount0", "nCount1"},
		},
		{
			name:     "spaced pointer marker",
			frag:     "CvMat * mat",
			wantRole: meta.RoleInputOutput,
			wantElem: meta.ElemGeneric,
			wantDims: []string{"mat0", "mat1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Argument(tt.frag, false)
			require.NoError(t, err)
			assert.True(t, a.IsMatrix)
			assert.Equal(t, tt.wantRole, a.Role)
			assert.Equal(t, tt.wantElem, a.Elem)
			assert.Equal(t, tt.wantDims, a.Dims)
		})
	}
}

func TestArgumentScalarAndAggregate(t *testing.T) {
	tests := []struct {
		name     string
		frag     string
		wantType string
		wantElem meta.ElemType
		wantDims []string
	}{
		{"double scalar", "double alpha", "double", meta.ElemDouble, []string{"1"}},
		{"float scalar", "float beta", "float", meta.ElemFloat, []string{"1"}},
		{"int scalar", "int flags", "int", meta.ElemInt, []string{"1"}},
		{"point aggregate", "CvPoint anchor", "CvPoint", meta.ElemInt, []string{"2"}},
		{"size aggregate", "CvSize win", "CvSize", meta.ElemInt, []string{"2"}},
		{"2D float point", "CvPoint2D32f center", "CvPoint2D32f", meta.ElemFloat, []string{"2"}},
		{"3D double point", "CvPoint3D64f pos", "CvPoint3D64f", meta.ElemDouble, []string{"3"}},
		{"scalar quad", "CvScalar color", "CvScalar", meta.ElemDouble, []string{"4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Argument(tt.frag, false)
			require.NoError(t, err)
			assert.False(t, a.IsMatrix)
			assert.Equal(t, tt.wantType, a.Type)
			assert.Equal(t, tt.wantElem, a.Elem)
			assert.Equal(t, tt.wantDims, a.Dims)
			assert.Equal(t, meta.RoleInput, a.Role)
		})
	}
}

// The count-name heuristic only forces elements on matrix-typed arguments;
// a plain int that happens to be called nCount stays an ordinary scalar.
func TestCountHeuristicScopedToMatrixArgs(t *testing.T) {
	a, err := Argument("int nCount", false)
	require.NoError(t, err)
	assert.False(t, a.IsMatrix)
	assert.Equal(t, meta.ElemInt, a.Elem)
	assert.Equal(t, []string{"1"}, a.Dims)
	assert.Equal(t, meta.RoleInput, a.Role)
}

func TestArgumentRejections(t *testing.T) {
	tests := []struct {
		name     string
		frag     string
		isReturn bool
	}{
		{"double pointer", "CvMat** dst", false},
		{"double pointer const", "const CvMat** dst", false},
		{"matrix by value", "CvMat mat", false},
		{"matrix return", "CvMat*", true},
		{"pointer to scalar", "double* val", false},
		{"unsupported struct", "CvHistogram* hist", false},
		{"unsupported return", "CvMoments", true},
		{"void pointer", "void* data", false},
		{"void pointer return", "void*", true},
		{"unsupported float width", "CvPoint2D16f pt", false},
		{"missing name", "CvMat*", false},
		{"empty fragment", "   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Argument(tt.frag, tt.isReturn)
			assert.Error(t, err)
		})
	}
}

func TestReturnSlot(t *testing.T) {
	t.Run("void return yields no descriptor", func(t *testing.T) {
		a, err := Argument("void", true)
		require.NoError(t, err)
		assert.Nil(t, a)
	})

	t.Run("scalar return is output with sentinel name", func(t *testing.T) {
		a, err := Argument("double", true)
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.True(t, a.IsReturn)
		assert.Equal(t, meta.ReturnName, a.Name)
		assert.Equal(t, meta.RoleOutput, a.Role)
		assert.Equal(t, meta.ElemDouble, a.Elem)
		assert.Equal(t, []string{"1"}, a.Dims)
	})

	t.Run("aggregate return", func(t *testing.T) {
		a, err := Argument("CvScalar", true)
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, []string{"4"}, a.Dims)
		assert.Equal(t, meta.RoleOutput, a.Role)
	})
}

func TestParamSerialization(t *testing.T) {
	tests := []struct {
		name string
		frag string
		want string
	}{
		{"plain input matrix", "const CvMat* src", "src(src0,src1)"},
		{"output matrix", "CvMat* dst", "[io] dst(dst0,dst1)"},
		{"typed scalar", "int flags", "int flags(1)"},
		{"count matrix", "const CvMat* counts", "int counts(counts0,counts1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Argument(tt.frag, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Param())
		})
	}

	t.Run("return slot", func(t *testing.T) {
		a, err := Argument("double", true)
		require.NoError(t, err)
		assert.Equal(t, "double [o] ret(1)", a.Param())
	})
}

func TestTokenizeSuffix(t *testing.T) {
	a, err := Argument("const CvMat* pts[]", false)
	require.NoError(t, err)
	assert.Equal(t, "pts", a.Name)
	assert.Equal(t, "[]", a.Suffix)
}
