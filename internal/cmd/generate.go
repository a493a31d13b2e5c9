package cmd

import (
	"log/slog"
	"os"

	"github.com/dkogan/cvbindgen/internal/codegen/generator"
	"github.com/dkogan/cvbindgen/internal/codegen/preproc"
	"github.com/dkogan/cvbindgen/internal/log"
)

// Generate runs the whole binding pipeline over the supplied headers.
type Generate struct {
	Headers []string `arg:"" name:"header" help:"OpenCV header files to scan, processed in order" type:"existingfile"`

	Output  string   `help:"Generated PP source file" default:"opencv.pd" env:"CVBINDGEN_OUTPUT"`
	Prefix  string   `help:"Library function prefix stripped to form binding names" default:"cv" env:"CVBINDGEN_PREFIX"`
	Cpp     string   `help:"C preprocessor command used for constant resolution" default:"cpp" env:"CVBINDGEN_CPP"`
	Include []string `short:"I" help:"Additional include directories passed to the preprocessor"`
	Quiet   bool     `help:"Suppress the end-of-run summary table"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	logger.Info("starting binding generation",
		"headers", len(g.Headers), "prefix", g.Prefix, "output", g.Output)

	exp := &preproc.ExecExpander{
		Command:  g.Cpp,
		Includes: g.Include,
		Raw:      rawLogger,
	}
	gen := generator.New(generator.Config{
		Prefix: g.Prefix,
		Output: g.Output,
	}, logger, exp)

	md, err := gen.Run(g.Headers)
	if err != nil {
		return err
	}
	if err := gen.Write(md); err != nil {
		return err
	}
	if !g.Quiet {
		gen.Report(os.Stdout, md)
	}
	return nil
}
