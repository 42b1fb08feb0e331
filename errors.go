package scriptweaver

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	ErrEmptyContent       = errors.New("scenario content cannot be empty")
	ErrValidationDisabled = errors.New("validation is disabled in configuration")
	ErrCriticalValidation = errors.New("critical validation errors found")

	// ErrRender indicates an internal structural invariant was violated
	// during assembly or rendering. It is never caused by malformed input
	// and always signals a defect in the pipeline itself.
	ErrRender = errors.New("internal render invariant violated")
)

// CriticalValidationError aborts conversion in strict mode when the
// document contains at least one CRITICAL validation result. The report
// that triggered the abort is attached for inspection.
//
// It matches ErrCriticalValidation via errors.Is.
type CriticalValidationError struct {
	Report *ValidationReport
}

func (e *CriticalValidationError) Error() string {
	n := 0
	if e.Report != nil {
		n = e.Report.Summary[LevelCritical]
	}
	return fmt.Sprintf("critical validation errors found: %d", n)
}

func (e *CriticalValidationError) Unwrap() error {
	return ErrCriticalValidation
}
