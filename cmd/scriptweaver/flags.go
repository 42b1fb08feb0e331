package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all parsed command-line flags.
type cliFlags struct {
	// General
	config     string
	version    bool
	quiet      bool
	verbose    bool
	initConfig string

	// Modes
	validateOnly bool
	listFormats  bool

	// Output
	output     string
	reportJSON string

	// Document
	title    string
	style    string
	assets   string
	noTOC    bool
	tocTitle string

	// Validation
	validate     bool
	strict       bool
	beginner     bool
	customSkills []string

	// Loader
	maxFileSize int64
	encodings   []string
}

// parseFlags parses command-line arguments. Returned args are the
// positional arguments after flag extraction.
func parseFlags(argv []string) (*cliFlags, []string, error) {
	flags := &cliFlags{}

	fs := flag.NewFlagSet("scriptweaver", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(fs.Output(), usageText) }

	fs.StringVarP(&flags.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")
	fs.BoolVarP(&flags.quiet, "quiet", "q", false, "suppress progress output")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "print progress to stderr")
	fs.StringVar(&flags.initConfig, "init-config", "", "write a default config file and exit")

	fs.BoolVar(&flags.validateOnly, "validate-only", false, "run validation and print the JSON report, no HTML")
	fs.BoolVar(&flags.listFormats, "list-formats", false, "print supported input formats and exit")

	fs.StringVarP(&flags.output, "output", "o", "", "output HTML path (default: input with .html suffix)")
	fs.StringVar(&flags.reportJSON, "report-json", "", "also write the validation report JSON to this path")

	fs.StringVar(&flags.title, "title", "", "HTML document title")
	fs.StringVar(&flags.style, "style", "", "CSS style name")
	fs.StringVar(&flags.assets, "assets", "", "custom asset directory (styles/, templates/)")
	fs.BoolVar(&flags.noTOC, "no-toc", false, "omit the table of contents")
	fs.StringVar(&flags.tocTitle, "toc-title", "", "table of contents title")

	fs.BoolVar(&flags.validate, "validate", false, "enable the validation pass")
	fs.BoolVar(&flags.strict, "strict", false, "abort conversion on critical validation errors")
	fs.BoolVar(&flags.beginner, "beginner", false, "more explanatory validation suggestions")
	fs.StringSliceVar(&flags.customSkills, "custom-skill", nil, "additional skill name (repeatable)")

	fs.Int64Var(&flags.maxFileSize, "max-file-size", 0, "input size limit in bytes (0 = default)")
	fs.StringSliceVar(&flags.encodings, "encoding", nil, "encoding fallback chain (repeatable)")

	if err := fs.Parse(argv[1:]); err != nil {
		return nil, nil, err
	}
	return flags, fs.Args(), nil
}
