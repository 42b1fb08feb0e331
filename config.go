package scriptweaver

// Default thresholds used by the built-in validators.
const (
	// DefaultHeadingLengthLimit is the rune count above which the heading
	// validator emits a WARNING.
	DefaultHeadingLengthLimit = 100

	// DefaultHeadingDepthLimit is the recommended maximum heading depth;
	// deeper headings produce an INFO result.
	DefaultHeadingDepthLimit = 3
)

// Config holds the options recognized by the conversion and validation
// pipeline. It is an immutable value object: the core never mutates it, and
// a new effective configuration is derived with With for each call that
// needs overrides.
type Config struct {
	// EnableValidation turns on the validation pass. ValidateOnly fails
	// with ErrValidationDisabled when false.
	EnableValidation bool

	// StrictMode aborts conversion with ErrCriticalValidation when the
	// validation report contains at least one CRITICAL result.
	StrictMode bool

	// TRPGSystem names the ruleset whose notation the default validators
	// model. Only "CoC6" ships built in.
	TRPGSystem string

	// CustomSkills extends the skill dictionary used by the skill
	// validator, in addition to the standard list for TRPGSystem.
	CustomSkills []string

	// BeginnerMode makes validator suggestions more explanatory.
	BeginnerMode bool

	// HTMLTitle is the <title> of the generated document.
	HTMLTitle string

	// IncludeTOC inserts a table of contents before the document body
	// when the document has headings.
	IncludeTOC bool

	// TOCTitle is the visible heading of the table of contents block.
	TOCTitle string

	// HeadingLengthLimit is the rune count above which headings are
	// flagged as too long.
	HeadingLengthLimit int

	// HeadingDepthLimit is the recommended maximum heading depth.
	HeadingDepthLimit int

	// Style names the CSS style embedded into the HTML output. Resolved
	// through the asset loader; empty means the built-in default.
	Style string
}

// DefaultConfig returns the configuration used when no overrides are given.
func DefaultConfig() Config {
	return Config{
		EnableValidation:   false,
		StrictMode:         false,
		TRPGSystem:         "CoC6",
		BeginnerMode:       false,
		HTMLTitle:          "TRPGシナリオ",
		IncludeTOC:         true,
		TOCTitle:           "目次",
		HeadingLengthLimit: DefaultHeadingLengthLimit,
		HeadingDepthLimit:  DefaultHeadingDepthLimit,
		Style:              "",
	}
}

// ConfigOption overrides a single field when deriving a Config.
type ConfigOption func(*Config)

// With returns a copy of c with the given overrides applied. The receiver
// is never modified, so overlapping calls deriving from a shared base
// configuration cannot interfere.
func (c Config) With(opts ...ConfigOption) Config {
	derived := c
	// Copy the slice so the derived value cannot alias the original.
	derived.CustomSkills = append([]string(nil), c.CustomSkills...)
	for _, opt := range opts {
		opt(&derived)
	}
	return derived
}

// EnableValidation toggles the validation pass.
func EnableValidation(enabled bool) ConfigOption {
	return func(c *Config) { c.EnableValidation = enabled }
}

// StrictMode toggles the critical-abort gate. Enabling it also enables
// validation, since the gate is meaningless without a report.
func StrictMode(strict bool) ConfigOption {
	return func(c *Config) {
		c.StrictMode = strict
		if strict {
			c.EnableValidation = true
		}
	}
}

// TRPGSystem selects the ruleset for the default validators.
func TRPGSystem(system string) ConfigOption {
	return func(c *Config) { c.TRPGSystem = system }
}

// CustomSkills appends skill names to the active skill dictionary.
func CustomSkills(skills ...string) ConfigOption {
	return func(c *Config) { c.CustomSkills = append(c.CustomSkills, skills...) }
}

// BeginnerMode toggles more explanatory validator suggestions.
func BeginnerMode(enabled bool) ConfigOption {
	return func(c *Config) { c.BeginnerMode = enabled }
}

// HTMLTitle sets the document title.
func HTMLTitle(title string) ConfigOption {
	return func(c *Config) { c.HTMLTitle = title }
}

// IncludeTOC toggles the table of contents block.
func IncludeTOC(include bool) ConfigOption {
	return func(c *Config) { c.IncludeTOC = include }
}

// TOCTitle sets the visible heading of the table of contents.
func TOCTitle(title string) ConfigOption {
	return func(c *Config) { c.TOCTitle = title }
}

// HeadingLimits sets the heading length and depth thresholds.
// Non-positive values keep the current setting.
func HeadingLimits(length, depth int) ConfigOption {
	return func(c *Config) {
		if length > 0 {
			c.HeadingLengthLimit = length
		}
		if depth > 0 {
			c.HeadingDepthLimit = depth
		}
	}
}

// Style selects a CSS style by asset name.
func Style(name string) ConfigOption {
	return func(c *Config) { c.Style = name }
}
