// Package cmd defines the kong command structs for the cvbindgen binary.
package cmd

// CLI is the root command structure parsed by kong.
type CLI struct {
	Config string `help:"Path to a config file (JSON/YAML/TOML); discovered automatically when omitted" env:"CVBINDGEN_CONFIG"`

	Log struct {
		Level   string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"CVBINDGEN_LOG_LEVEL"`
		File    string `help:"Write logs to this file instead of stdout/stderr" env:"CVBINDGEN_LOG_FILE"`
		RawFile string `help:"Dump raw preprocessor transcripts to this file" env:"CVBINDGEN_LOG_RAW_FILE"`
	} `embed:"" prefix:"log."`

	Generate  Generate      `cmd:"" help:"Generate PDL bindings from OpenCV C headers"`
	ConfigCmd ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
