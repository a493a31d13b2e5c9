package scanner

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScanDeclarations(t *testing.T) {
	header := `
#ifndef OPENCV_CORE_H
#define OPENCV_CORE_H

CVAPI(void) cvAdd( const CvMat* src1, const CvMat* src2, CvMat* dst );

/* spans multiple lines */
CVAPI(double) cvNorm( const CvMat* arr1,
                      const CvMat* arr2,
                      int norm_type );

CVAPI(int) helperFunction( int x );

void cvNotExported( int x );

#endif
`
	decls := ScanDeclarations(testLogger(), Normalize([]byte(header)), "cv")
	require.Len(t, decls, 2)

	assert.Equal(t, "cvAdd", decls[0].Name)
	assert.Equal(t, "void", decls[0].Return)
	assert.Contains(t, decls[0].Args, "CvMat* src1")

	assert.Equal(t, "cvNorm", decls[1].Name)
	assert.Equal(t, "double", decls[1].Return)
	assert.Contains(t, decls[1].Args, "norm_type")
}

func TestScanDeclarationsPrefixFilter(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{
			name:   "prefixed name kept",
			header: "CVAPI(void) cvFoo(void);",
			want:   1,
		},
		{
			name:   "unprefixed name dropped",
			header: "CVAPI(void) icvInternal(void);",
			want:   0,
		},
		{
			name:   "bare prefix has no public name",
			header: "CVAPI(void) cv(void);",
			want:   0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls := ScanDeclarations(testLogger(), tt.header, "cv")
			assert.Len(t, decls, tt.want)
		})
	}
}

func TestScanDeclarationsOrder(t *testing.T) {
	header := "CVAPI(void) cvFirst(void);\nCVAPI(void) cvSecond(void);\n"
	decls := ScanDeclarations(testLogger(), header, "cv")
	require.Len(t, decls, 2)
	assert.Equal(t, "cvFirst", decls[0].Name)
	assert.Equal(t, "cvSecond", decls[1].Name)
}
