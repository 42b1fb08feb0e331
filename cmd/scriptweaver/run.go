package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ykonishi/scriptweaver"
	"github.com/ykonishi/scriptweaver/internal/assets"
	"github.com/ykonishi/scriptweaver/internal/config"
	"github.com/ykonishi/scriptweaver/internal/fileutil"
	"github.com/ykonishi/scriptweaver/internal/textread"
)

const usageText = `scriptweaver - TRPGシナリオ原稿をHTMLに変換する

Usage:
  scriptweaver [flags] <input.txt>

Modes:
      --validate-only        run validation and print the JSON report, no HTML
      --list-formats         print supported input formats and exit
      --init-config <path>   write a default config file and exit
      --version              print version and exit

Output:
  -o, --output <path>        output HTML path (default: input with .html suffix)
      --report-json <path>   also write the validation report JSON to this path

Document:
      --title <string>       HTML document title
      --style <name>         CSS style name
      --assets <dir>         custom asset directory (styles/, templates/)
      --no-toc               omit the table of contents
      --toc-title <string>   table of contents title

Validation:
      --validate             enable the validation pass
      --strict               abort conversion on critical validation errors
      --beginner             more explanatory validation suggestions
      --custom-skill <name>  additional skill name (repeatable)

Input:
      --max-file-size <n>    input size limit in bytes (0 = default)
      --encoding <name>      encoding fallback chain (repeatable)

General:
  -c, --config <name|path>   config file name or path
  -v, --verbose              print progress to stderr
  -q, --quiet                suppress progress output
`

// run executes the CLI according to parsed flags. Informational modes
// write to out; progress goes to stderr so stdout stays scriptable.
func run(flags *cliFlags, args []string, out io.Writer) error {
	switch {
	case flags.version:
		fmt.Fprintf(out, "scriptweaver %s\n", Version)
		return nil
	case flags.listFormats:
		fmt.Fprintln(out, strings.Join(textread.SupportedFormats(), "\n"))
		return nil
	case flags.initConfig != "":
		return initConfig(flags.initConfig, out, flags.quiet)
	}

	if len(args) != 1 {
		return fmt.Errorf("expected exactly one input file, got %d", len(args))
	}
	inputPath := args[0]

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg, flags)

	text, err := textread.ReadFile(inputPath, textread.Options{
		MaxFileSize: cfg.Input.MaxFileSize,
		Encodings:   cfg.Input.Encodings,
	})
	if err != nil {
		return err
	}

	svc, err := newService(cfg)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if flags.validateOnly {
		return validateOnly(ctx, svc, text, inputPath, flags, cfg, out)
	}
	return convert(ctx, svc, text, inputPath, flags, cfg)
}

// loadConfig loads the named config file, or the defaults when --config is
// absent.
func loadConfig(flags *cliFlags) (*config.Config, error) {
	if flags.config == "" {
		return config.Default(), nil
	}
	return config.Load(flags.config)
}

// applyFlagOverrides layers command-line flags over the file config.
// Only explicitly set string flags override; booleans are additive.
func applyFlagOverrides(cfg *config.Config, flags *cliFlags) {
	if flags.title != "" {
		cfg.Title = flags.title
	}
	if flags.style != "" {
		cfg.Style = flags.style
	}
	if flags.assets != "" {
		cfg.AssetPath = flags.assets
	}
	if flags.noTOC {
		cfg.TOC.Enabled = false
	}
	if flags.tocTitle != "" {
		cfg.TOC.Title = flags.tocTitle
	}
	if flags.validate || flags.validateOnly {
		cfg.Validation.Enabled = true
	}
	if flags.strict {
		cfg.Validation.Strict = true
		cfg.Validation.Enabled = true
	}
	if flags.beginner {
		cfg.Validation.BeginnerMode = true
	}
	if len(flags.customSkills) > 0 {
		cfg.Validation.CustomSkills = append(cfg.Validation.CustomSkills, flags.customSkills...)
	}
	if flags.maxFileSize > 0 {
		cfg.Input.MaxFileSize = flags.maxFileSize
	}
	if len(flags.encodings) > 0 {
		cfg.Input.Encodings = flags.encodings
	}
}

// newService builds the library service from the effective config,
// including a filesystem asset loader when --assets is given.
func newService(cfg *config.Config) (*scriptweaver.Service, error) {
	opts := []scriptweaver.Option{
		scriptweaver.WithConfig(scriptweaver.DefaultConfig().With(cfg.Options()...)),
	}
	if cfg.AssetPath != "" {
		loader, err := assets.NewLoader(cfg.AssetPath)
		if err != nil {
			return nil, fmt.Errorf("loading assets from %s: %w", cfg.AssetPath, err)
		}
		opts = append(opts, scriptweaver.WithAssetLoader(loader))
	}
	return scriptweaver.New(opts...), nil
}

// convert runs the full pipeline and writes the HTML (and optionally the
// report JSON) next to the input.
func convert(ctx context.Context, svc *scriptweaver.Service, text, inputPath string, flags *cliFlags, cfg *config.Config) error {
	result, err := svc.Convert(ctx, scriptweaver.Input{
		Text:          text,
		IncludeReport: flags.reportJSON != "" || cfg.Validation.Enabled,
	})

	var critical *scriptweaver.CriticalValidationError
	if errors.As(err, &critical) {
		// The report still gets written so the user can see what to fix.
		if werr := writeReport(critical.Report, inputPath, flags, cfg); werr != nil {
			return werr
		}
		return err
	}
	if err != nil {
		return err
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = replaceSuffix(inputPath, cfg.Output.Suffix)
	}
	if err := fileutil.WriteFileAtomic(outputPath, []byte(result.HTML), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	if !flags.quiet {
		fmt.Fprintf(os.Stderr, "wrote %s\n", outputPath)
	}

	if result.Report != nil {
		if err := writeReport(result.Report, inputPath, flags, cfg); err != nil {
			return err
		}
	}
	return nil
}

// validateOnly prints the JSON report to out and optionally persists it.
func validateOnly(ctx context.Context, svc *scriptweaver.Service, text, inputPath string, flags *cliFlags, cfg *config.Config, out io.Writer) error {
	report, err := svc.ValidateOnly(ctx, text)
	if err != nil {
		return err
	}

	data, err := report.ExportJSON(inputPath, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))

	if flags.reportJSON != "" {
		if err := fileutil.WriteFileAtomic(flags.reportJSON, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", flags.reportJSON, err)
		}
	}
	if cfg.Validation.Strict && report.HasCritical() {
		return &scriptweaver.CriticalValidationError{Report: report}
	}
	return nil
}

// writeReport persists the validation report JSON when --report-json is
// given.
func writeReport(report *scriptweaver.ValidationReport, inputPath string, flags *cliFlags, cfg *config.Config) error {
	if flags.reportJSON == "" || report == nil {
		return nil
	}
	data, err := report.ExportJSON(inputPath, time.Now())
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(flags.reportJSON, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", flags.reportJSON, err)
	}
	if !flags.quiet {
		fmt.Fprintf(os.Stderr, "wrote %s\n", flags.reportJSON)
	}
	return nil
}

// initConfig writes a starter config file. Refuses to overwrite.
func initConfig(path string, out io.Writer, quiet bool) error {
	if fileutil.FileExists(path) {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := config.Default().Save(path); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(out, "wrote %s\n", path)
	}
	return nil
}

// replaceSuffix swaps the input extension for the output suffix.
func replaceSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix
}
