package scriptweaver

import (
	"encoding/json"
	"fmt"
	"time"
)

// reportExport is the persisted JSON shape of a validation report.
type reportExport struct {
	DocumentPath   string              `json:"document_path"`
	ValidationTime string              `json:"validation_time"`
	Summary        reportSummaryExport `json:"summary"`
	Results        []resultExport      `json:"results"`
}

type reportSummaryExport struct {
	Critical   int `json:"critical"`
	Warning    int `json:"warning"`
	Info       int `json:"info"`
	Suggestion int `json:"suggestion"`
}

type resultExport struct {
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Level      string `json:"level"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Code       string `json:"code,omitempty"`
}

// ExportJSON serializes the report in its persisted form. documentPath
// names the validated file; at stamps the validation time.
func (r *ValidationReport) ExportJSON(documentPath string, at time.Time) ([]byte, error) {
	export := reportExport{
		DocumentPath:   documentPath,
		ValidationTime: at.Format(time.RFC3339),
		Summary: reportSummaryExport{
			Critical:   r.Summary[LevelCritical],
			Warning:    r.Summary[LevelWarning],
			Info:       r.Summary[LevelInfo],
			Suggestion: r.Summary[LevelSuggestion],
		},
		Results: make([]resultExport, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		export.Results = append(export.Results, resultExport{
			Line:       res.LineNumber,
			Level:      res.Level.String(),
			Message:    res.Message,
			Suggestion: res.Suggestion,
			Code:       res.Code,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("exporting validation report: %w", err)
	}
	return data, nil
}
