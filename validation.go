package scriptweaver

// Level ranks the importance of a validation result.
type Level int

// Severity levels, most severe first.
const (
	LevelCritical Level = iota
	LevelWarning
	LevelInfo
	LevelSuggestion
)

func (l Level) String() string {
	switch l {
	case LevelCritical:
		return "critical"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelSuggestion:
		return "suggestion"
	}
	return "unknown"
}

// ValidationResult is one diagnostic produced by a validator. It is
// immutable once produced.
type ValidationResult struct {
	Level      Level
	Message    string
	Suggestion string

	// LineNumber is 1-based; zero means the result applies to the whole
	// document and sorts after all line-scoped results.
	LineNumber int

	Code         string
	OriginalText string
	ProposedFix  string
}

// ValidationReport aggregates ordered validation results. Summary always
// equals the per-level count of Results; it is maintained on insertion,
// never recomputed from a snapshot that could drift.
type ValidationReport struct {
	Results []ValidationResult
	Summary map[Level]int
}

// NewValidationReport returns an empty report with all level counts at zero.
func NewValidationReport() *ValidationReport {
	return &ValidationReport{
		Summary: map[Level]int{
			LevelCritical:   0,
			LevelWarning:    0,
			LevelInfo:       0,
			LevelSuggestion: 0,
		},
	}
}

// Add appends a result and updates the summary counts.
func (r *ValidationReport) Add(result ValidationResult) {
	r.Results = append(r.Results, result)
	r.Summary[result.Level]++
}

// HasCritical reports whether the document cannot be converted in strict
// mode.
func (r *ValidationReport) HasCritical() bool {
	return r.Summary[LevelCritical] > 0
}

// ResultsByLevel returns the results of one severity level, in report order.
func (r *ValidationReport) ResultsByLevel(level Level) []ValidationResult {
	var out []ValidationResult
	for _, res := range r.Results {
		if res.Level == level {
			out = append(out, res)
		}
	}
	return out
}

// sortLine maps the absent line number (zero) past every real line.
func sortLine(n int) int {
	if n == 0 {
		return int(^uint(0) >> 1)
	}
	return n
}
