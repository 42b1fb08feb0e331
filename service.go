package scriptweaver

import (
	"context"
	"fmt"
	"strings"

	"github.com/ykonishi/scriptweaver/internal/assets"
)

// DefaultStyle is the name of the built-in CSS style.
const DefaultStyle = "scenario"

// documentTemplate is the embedded HTML shell asset name.
const documentTemplate = "document"

// AssetLoader defines the contract for loading CSS styles and HTML
// templates. Implementations may load from the filesystem, embedded assets,
// or any other backend.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html
	// extension).
	LoadTemplate(name string) (string, error)
}

// Input contains the parameters of one conversion call.
type Input struct {
	// Text is the normalized scenario content (required).
	Text string

	// IncludeReport appends the validation report block to the HTML
	// output. Requires validation to be enabled.
	IncludeReport bool
}

// Result is the outcome of one conversion call.
type Result struct {
	// HTML is the complete generated document.
	HTML string

	// Report is the validation report, nil when validation is disabled.
	Report *ValidationReport
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the effective configuration for all calls on the service.
func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

// WithValidator registers a custom validator after the built-in ones.
// Registration order is preserved across multiple options.
func WithValidator(v Validator) Option {
	return func(s *Service) { s.custom = append(s.custom, v) }
}

// WithAssetLoader overrides how CSS styles and templates are resolved.
func WithAssetLoader(loader AssetLoader) Option {
	return func(s *Service) { s.assets = loader }
}

// Service orchestrates the scenario-to-HTML pipeline. The validation pass
// and the assembly/render pass are independent: neither mutates state the
// other reads, and their outputs are identical whether they run
// sequentially or concurrently.
type Service struct {
	cfg    Config
	assets AssetLoader
	engine *ValidationEngine
	custom []Validator
}

// New creates a Service with default configuration. Use options to
// customize behavior.
func New(opts ...Option) *Service {
	s := &Service{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(s)
	}

	if s.assets == nil {
		s.assets = assets.NewEmbeddedLoader()
	}

	s.engine = NewValidationEngine(s.cfg)
	for _, v := range s.custom {
		s.engine.Register(v)
	}

	return s
}

// Config returns the service's effective configuration.
func (s *Service) Config() Config { return s.cfg }

// Engine exposes the validation engine, e.g. to inspect registered
// validators.
func (s *Service) Engine() *ValidationEngine { return s.engine }

// Convert runs the full pipeline and returns the HTML document. It either
// returns a complete artifact or fails atomically: in strict mode a
// document with CRITICAL validation results aborts before rendering with
// CriticalValidationError and no output is produced.
func (s *Service) Convert(ctx context.Context, input Input) (*Result, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrEmptyContent
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content := normalizeLineEndings(input.Text)

	var report *ValidationReport
	if s.cfg.EnableValidation {
		report = s.engine.ValidateDocument(content)
		if s.cfg.StrictMode && report.HasCritical() {
			return nil, &CriticalValidationError{Report: report}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := assemble(compressBlankLines(content))
	if err != nil {
		return nil, fmt.Errorf("assembling document: %w", err)
	}
	toc := buildTOC(doc)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderer, err := s.newRenderer()
	if err != nil {
		return nil, err
	}

	var embedded *ValidationReport
	if input.IncludeReport {
		embedded = report
	}
	html, err := renderer.Render(doc, toc, embedded)
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}

	return &Result{HTML: html, Report: report}, nil
}

// ValidateOnly runs just the validation pass. Fails with
// ErrValidationDisabled when the configuration has validation off.
func (s *Service) ValidateOnly(ctx context.Context, text string) (*ValidationReport, error) {
	if !s.cfg.EnableValidation {
		return nil, ErrValidationDisabled
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.engine.ValidateDocument(normalizeLineEndings(text)), nil
}

// newRenderer resolves the configured style and document shell through the
// asset loader.
func (s *Service) newRenderer() (*htmlRenderer, error) {
	style := s.cfg.Style
	if style == "" {
		style = DefaultStyle
	}
	css, err := s.assets.LoadStyle(style)
	if err != nil {
		return nil, fmt.Errorf("loading style %q: %w", style, err)
	}
	shell, err := s.assets.LoadTemplate(documentTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading document template: %w", err)
	}
	return newHTMLRenderer(s.cfg, css, shell)
}
