package scriptweaver

import (
	"sort"
	"strings"
)

// ValidationEngine runs an ordered registry of validators over a document
// and aggregates their diagnostics into a sorted report.
//
// Registration order is significant: it is the final tie-breaker when
// results share a line number and severity. Registering a custom validator
// is a pure registry append; the engine never needs modification.
type ValidationEngine struct {
	cfg        Config
	validators []Validator
}

// NewValidationEngine creates an engine with the built-in validators
// registered in their canonical order.
func NewValidationEngine(cfg Config) *ValidationEngine {
	e := &ValidationEngine{cfg: cfg}
	e.Register(NewHeadingValidator(cfg))
	e.Register(NewSkillValidator(cfg))
	e.Register(NewDiceValidator())
	e.Register(NewTableValidator())
	e.Register(NewNPCValidator())
	e.Register(NewStructureValidator())
	e.Register(NewDocumentSizeValidator())
	return e
}

// Register appends a validator to the registry.
func (e *ValidationEngine) Register(v Validator) {
	e.validators = append(e.validators, v)
}

// Validators returns the registered validator names in registration order.
func (e *ValidationEngine) Validators() []string {
	names := make([]string, len(e.validators))
	for i, v := range e.validators {
		names[i] = v.Name()
	}
	return names
}

// indexedResult tags a result with the registration index of the validator
// that produced it, for the deterministic tie-break.
type indexedResult struct {
	result ValidationResult
	reg    int
}

// ValidateDocument splits content into validation units — every line with
// its original 1-based number, plus the whole document for document-scoped
// validators — runs each registered validator over the applicable units,
// and returns the sorted report.
func (e *ValidationEngine) ValidateDocument(content string) *ValidationReport {
	var collected []indexedResult

	lines := strings.Split(content, "\n")
	for lineIdx, line := range lines {
		for reg, v := range e.validators {
			for _, res := range v.Validate(line, lineIdx+1) {
				collected = append(collected, indexedResult{result: res, reg: reg})
			}
		}
	}

	for reg, v := range e.validators {
		dv, ok := v.(DocumentValidator)
		if !ok {
			continue
		}
		for _, res := range dv.ValidateDocument(content) {
			collected = append(collected, indexedResult{result: res, reg: reg})
		}
	}

	// Order: line number ascending with document-scoped results last,
	// then severity rank, then registration order.
	sort.SliceStable(collected, func(i, j int) bool {
		ri, rj := collected[i].result, collected[j].result
		if li, lj := sortLine(ri.LineNumber), sortLine(rj.LineNumber); li != lj {
			return li < lj
		}
		if ri.Level != rj.Level {
			return ri.Level < rj.Level
		}
		return collected[i].reg < collected[j].reg
	})

	report := NewValidationReport()
	for _, ir := range collected {
		report.Add(ir.result)
	}
	return report
}
