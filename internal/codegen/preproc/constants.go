package preproc

import (
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/parser"
	"go/token"
	"log/slog"
	"strconv"
	"strings"
)

// ErrExpand wraps a preprocessor invocation failure. The caller skips
// constant extraction for the affected header and carries on.
var ErrExpand = errors.New("preprocessor invocation failed")

// Resolved is one macro with its evaluated literal value.
type Resolved struct {
	Name  string
	Value string
}

// Resolve expands the candidate macro names via the expander and evaluates
// each expansion as an arithmetic expression. Candidates whose expansion is
// not a pure numeric expression, or fails to evaluate, are dropped with a
// debug log; a segment-count mismatch is returned as-is and aborts the run.
func Resolve(logger *slog.Logger, exp Expander, headerPath string, names []string) ([]Resolved, error) {
	if len(names) == 0 {
		return nil, nil
	}

	segs, err := exp.Expand(headerPath, names)
	if err != nil {
		if errors.Is(err, ErrSegmentMismatch) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrExpand, err)
	}
	if len(segs) != len(names) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSegmentMismatch, len(segs), len(names))
	}

	var out []Resolved
	for i, name := range names {
		val, ok := evalSegment(segs[i])
		if !ok {
			logger.Debug("dropping non-numeric constant", "name", name, "expansion", segs[i])
			continue
		}
		out = append(out, Resolved{Name: name, Value: val})
	}
	return out, nil
}

// evalSegment decides whether one expansion is a plain numeric expression
// and evaluates it. Any alphabetic character other than the exponent 'e'
// means the expansion still references identifiers, casts or strings, so
// the candidate is rejected outright.
func evalSegment(seg string) (string, bool) {
	if seg == "" {
		return "", false
	}
	for _, r := range seg {
		if (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') && r != 'e' {
			return "", false
		}
	}

	expr, err := parser.ParseExpr(strings.TrimSpace(seg))
	if err != nil {
		return "", false
	}
	v := evalExpr(expr)
	if v == nil {
		return "", false
	}
	switch v.Kind() {
	case constant.Int:
		return v.ExactString(), true
	case constant.Float:
		f, _ := constant.Float64Val(v)
		return strconv.FormatFloat(f, 'g', -1, 64), true
	}
	return "", false
}

// evalExpr folds a literal arithmetic expression. C integer and float
// literal syntax without suffixes is a subset of Go's, so the Go expression
// parser carries the whole load and this only folds the operator tree.
func evalExpr(e ast.Expr) constant.Value {
	switch e := e.(type) {
	case *ast.BasicLit:
		switch e.Kind {
		case token.INT, token.FLOAT:
			return constant.MakeFromLiteral(e.Value, e.Kind, 0)
		}
	case *ast.ParenExpr:
		return evalExpr(e.X)
	case *ast.UnaryExpr:
		x := evalExpr(e.X)
		if x == nil {
			return nil
		}
		switch e.Op {
		case token.ADD, token.SUB:
			return constant.UnaryOp(e.Op, x, 0)
		}
	case *ast.BinaryExpr:
		x := evalExpr(e.X)
		y := evalExpr(e.Y)
		if x == nil || y == nil {
			return nil
		}
		switch e.Op {
		case token.SHL, token.SHR:
			if x.Kind() != constant.Int {
				return nil
			}
			s, ok := constant.Uint64Val(y)
			if !ok || s >= 64 {
				return nil
			}
			return constant.Shift(x, e.Op, uint(s))
		case token.ADD, token.SUB, token.MUL:
			return constant.BinaryOp(x, e.Op, y)
		case token.OR, token.AND, token.XOR, token.REM:
			if x.Kind() != constant.Int || y.Kind() != constant.Int || isZero(y) && e.Op == token.REM {
				return nil
			}
			return constant.BinaryOp(x, e.Op, y)
		case token.QUO:
			if isZero(y) {
				return nil
			}
			// Integer operands divide like C, truncating.
			if x.Kind() == constant.Int && y.Kind() == constant.Int {
				return constant.BinaryOp(x, token.QUO_ASSIGN, y)
			}
			return constant.BinaryOp(x, token.QUO, y)
		}
	}
	return nil
}

func isZero(v constant.Value) bool {
	return constant.Compare(v, token.EQL, constant.MakeInt64(0))
}
