// Package generator drives the binding pipeline: per header it normalizes
// the text, resolves constants through the preprocessor, scans and
// classifies declarations, and registers every function whose whole
// classification chain succeeds.
package generator

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/dkogan/cvbindgen/internal/codegen/classify"
	"github.com/dkogan/cvbindgen/internal/codegen/common"
	"github.com/dkogan/cvbindgen/internal/codegen/generator/pdl"
	"github.com/dkogan/cvbindgen/internal/codegen/meta"
	"github.com/dkogan/cvbindgen/internal/codegen/preproc"
	"github.com/dkogan/cvbindgen/internal/codegen/scanner"
)

type Config struct {
	Prefix string // library function prefix, stripped for public names
	Output string // generated PP source file
}

type Generator struct {
	cfg    Config
	logger *slog.Logger
	exp    preproc.Expander
}

func New(cfg Config, logger *slog.Logger, exp preproc.Expander) *Generator {
	return &Generator{cfg: cfg, logger: logger, exp: exp}
}

// Run processes the headers in the order supplied and returns the
// accumulated run context. An unreadable header or a preprocessor
// segment mismatch aborts the run; classifier rejections only skip the
// offending function.
func (g *Generator) Run(headers []string) (*meta.Metadata, error) {
	md := meta.NewMetadata()
	for _, h := range headers {
		if err := g.processHeader(md, h); err != nil {
			return nil, fmt.Errorf("process header %s: %w", h, err)
		}
	}
	g.logger.Info("generation complete",
		"headers", len(headers),
		"bindings", len(md.Bindings),
		"skipped", len(md.Skipped),
		"constants", md.Constants.Len())
	return md, nil
}

func (g *Generator) processHeader(md *meta.Metadata, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	text := scanner.Normalize(data)

	if err := g.mergeConstants(md, path, text); err != nil {
		return err
	}

	decls := scanner.ScanDeclarations(g.logger, text, g.cfg.Prefix)
	for _, d := range decls {
		b, err := g.bind(d)
		if err != nil {
			g.logger.Warn("skipping function", "function", d.Name, "reason", err)
			md.Skipped = append(md.Skipped, meta.Skip{
				Header:   filepath.Base(path),
				Function: d.Name,
				Reason:   err.Error(),
			})
			continue
		}
		md.Bindings = append(md.Bindings, *b)
		g.logger.Debug("bound function", "function", d.Name, "binding", b.Name)
	}

	g.logger.Info("processed header", "header", path, "declarations", len(decls))
	return nil
}

// mergeConstants resolves this header's macro candidates and folds them
// into the run-wide table, first writer wins. A preprocessor invocation
// failure only loses this header's constants; a segment mismatch is a
// broken invariant and stops the run.
func (g *Generator) mergeConstants(md *meta.Metadata, path, text string) error {
	names := scanner.ScanDefines(text)
	resolved, err := preproc.Resolve(g.logger, g.exp, path, names)
	if err != nil {
		if errors.Is(err, preproc.ErrSegmentMismatch) {
			return err
		}
		g.logger.Error("constant extraction failed", "header", path, "error", err)
		return nil
	}
	for _, c := range resolved {
		if !md.Constants.Set(c.Name, c.Value) {
			kept, _ := md.Constants.Get(c.Name)
			g.logger.Warn("constant already defined, keeping first value",
				"name", c.Name, "kept", kept, "ignored", c.Value)
		}
	}
	return nil
}

// bind runs one declaration through splitting, classification and
// assembly. Any classification error rejects the whole function.
func (g *Generator) bind(d meta.RawDecl) (*meta.Binding, error) {
	ret, err := classify.Argument(d.Return, true)
	if err != nil {
		return nil, err
	}

	var args []meta.Argument
	if ret != nil {
		args = append(args, *ret)
	}
	if body := strings.TrimSpace(d.Args); body != "" && body != "void" {
		for _, frag := range scanner.SplitArgs(d.Args) {
			a, err := classify.Argument(frag, false)
			if err != nil {
				return nil, err
			}
			args = append(args, *a)
		}
	}

	b := &meta.Binding{
		Name:       strings.TrimPrefix(d.Name, g.cfg.Prefix),
		NativeName: d.Name,
		Args:       args,
		HasReturn:  ret != nil,
	}
	b.Pars = pdl.Pars(args)
	b.Code = pdl.NewPlan(d.Name, args).Render()
	b.Doc = pdl.Doc(b)
	return b, nil
}

// Write serializes the run's bindings and constant table to the output
// file.
func (g *Generator) Write(md *meta.Metadata) error {
	version, err := common.GetVersion()
	if err != nil {
		return err
	}
	f, err := os.Create(g.cfg.Output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := pdl.WriteFile(f, md, version); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", g.cfg.Output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", g.cfg.Output, err)
	}
	g.logger.Info("wrote bindings", "output", g.cfg.Output, "bindings", len(md.Bindings))
	return nil
}

// Report renders the end-of-run summary tables.
func (g *Generator) Report(w io.Writer, md *meta.Metadata) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"BINDING", "NATIVE", "PARS"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	for _, b := range md.Bindings {
		table.Append([]string{b.Name, b.NativeName, b.Pars})
	}
	table.Render()

	if len(md.Skipped) == 0 {
		return
	}
	fmt.Fprintln(w)
	skipped := tablewriter.NewWriter(w)
	skipped.SetHeader([]string{"SKIPPED", "HEADER", "REASON"})
	skipped.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	skipped.SetAlignment(tablewriter.ALIGN_LEFT)
	skipped.SetHeaderLine(false)
	skipped.SetBorder(false)
	skipped.SetNoWhiteSpace(true)
	skipped.SetTablePadding("    ")
	for _, s := range md.Skipped {
		skipped.Append([]string{s.Function, s.Header, s.Reason})
	}
	skipped.Render()
}
