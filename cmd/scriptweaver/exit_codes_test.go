package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/ykonishi/scriptweaver"
	"github.com/ykonishi/scriptweaver/internal/config"
	"github.com/ykonishi/scriptweaver/internal/textread"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"critical validation", &scriptweaver.CriticalValidationError{Report: scriptweaver.NewValidationReport()}, ExitValidation},
		{"validation disabled", scriptweaver.ErrValidationDisabled, ExitUsage},
		{"empty content", scriptweaver.ErrEmptyContent, ExitUsage},
		{"config not found", fmt.Errorf("wrapped: %w", config.ErrConfigNotFound), ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"unsupported format", textread.ErrUnsupportedFormat, ExitIO},
		{"size limit", textread.ErrSizeLimit, ExitIO},
		{"encoding detection", textread.ErrEncodingDetection, ExitIO},
		{"file missing", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},
		{"anything else", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
