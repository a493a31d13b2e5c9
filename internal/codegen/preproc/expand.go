// Package preproc resolves object-like macro values by running the header
// through an external C preprocessor and evaluating the expansions. The
// preprocessor sits behind the narrow Expander interface so tests can
// substitute a fake instead of depending on a system toolchain.
package preproc

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dkogan/cvbindgen/internal/log"
)

// Expander expands the given macro names in the context of a header file,
// returning one expansion per name, in order.
type Expander interface {
	Expand(headerPath string, names []string) ([]string, error)
}

// ErrSegmentMismatch reports that the preprocessor output did not split
// into exactly one segment per candidate name. The synthesized translation
// unit guarantees the counts line up, so a mismatch means the output is
// garbage and the whole run must stop.
var ErrSegmentMismatch = errors.New("preprocessor output segment count mismatch")

// marker separates per-candidate segments in the preprocessor output. It
// must survive preprocessing unchanged, so it is a bare identifier no
// header would ever define.
const marker = "cvbindgen_segment_marker"

// ExecExpander runs a real C preprocessor as a stdin-to-stdout filter.
type ExecExpander struct {
	Command  string   // preprocessor executable, e.g. "cpp"
	Includes []string // extra include directories
	Raw      log.RawLogger
}

// Expand synthesizes a translation unit that includes the header and then
// lists each candidate name after a marker line, runs the preprocessor over
// it, and returns the expanded segment for each name.
func (e *ExecExpander) Expand(headerPath string, names []string) ([]string, error) {
	abs, err := filepath.Abs(headerPath)
	if err != nil {
		return nil, fmt.Errorf("resolve header path: %w", err)
	}

	var tu bytes.Buffer
	fmt.Fprintf(&tu, "#include \"%s\"\n", abs)
	for _, n := range names {
		fmt.Fprintf(&tu, "%s\n%s\n", marker, n)
	}

	args := []string{"-P"}
	for _, dir := range append([]string{filepath.Dir(abs)}, e.Includes...) {
		args = append(args, "-I", dir)
	}
	args = append(args, "-")

	cmd := exec.Command(e.Command, args...)
	cmd.Stdin = bytes.NewReader(tu.Bytes())
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w (%s)", e.Command, headerPath,
			err, strings.TrimSpace(stderr.String()))
	}
	if e.Raw != nil {
		e.Raw.Log(headerPath, out)
	}

	return SplitSegments(string(out), len(names))
}

// SplitSegments splits preprocessor output on the marker line and returns
// the trimmed per-candidate segments. The text before the first marker is
// the expansion of the header itself and is discarded.
func SplitSegments(out string, want int) ([]string, error) {
	parts := strings.Split(out, marker)
	if len(parts)-1 != want {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSegmentMismatch, len(parts)-1, want)
	}
	segs := make([]string, 0, want)
	for _, p := range parts[1:] {
		segs = append(segs, strings.Join(strings.Fields(p), " "))
	}
	return segs, nil
}
