package scriptweaver

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestService_Convert(t *testing.T) {
	t.Parallel()

	svc := New()
	result, err := svc.Convert(context.Background(), Input{Text: "# 導入\n\n本文。\n"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(result.HTML, "<!DOCTYPE html>") {
		t.Error("output is not a complete HTML document")
	}
	if result.Report != nil {
		t.Error("Report non-nil with validation disabled")
	}
}

func TestService_Convert_EmptyContent(t *testing.T) {
	t.Parallel()

	svc := New()
	for _, text := range []string{"", "   ", "\n\n\n"} {
		_, err := svc.Convert(context.Background(), Input{Text: text})
		if !errors.Is(err, ErrEmptyContent) {
			t.Errorf("Convert(%q) error = %v, want ErrEmptyContent", text, err)
		}
	}
}

func TestService_Convert_StrictModeAbortsOnCritical(t *testing.T) {
	t.Parallel()

	svc := New(WithConfig(DefaultConfig().With(StrictMode(true))))

	// An empty heading is a CRITICAL result.
	result, err := svc.Convert(context.Background(), Input{Text: "#\n\n本文。\n"})
	if result != nil {
		t.Error("strict mode produced output despite critical results")
	}
	if !errors.Is(err, ErrCriticalValidation) {
		t.Fatalf("error = %v, want ErrCriticalValidation", err)
	}

	var critical *CriticalValidationError
	if !errors.As(err, &critical) {
		t.Fatalf("error %T does not unwrap to CriticalValidationError", err)
	}
	if critical.Report == nil || !critical.Report.HasCritical() {
		t.Error("CriticalValidationError carries no critical report")
	}
}

func TestService_Convert_StrictModePassesCleanDocument(t *testing.T) {
	t.Parallel()

	svc := New(WithConfig(DefaultConfig().With(StrictMode(true))))
	result, err := svc.Convert(context.Background(), Input{Text: "# 導入\n\n【目星】\n"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if result.Report == nil {
		t.Error("strict mode did not produce a report")
	}
}

func TestService_Convert_NonStrictToleratesCritical(t *testing.T) {
	t.Parallel()

	svc := New(WithConfig(DefaultConfig().With(EnableValidation(true))))
	result, err := svc.Convert(context.Background(), Input{Text: "#\n\n本文。\n"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !result.Report.HasCritical() {
		t.Error("report misses the critical result")
	}
	if result.HTML == "" {
		t.Error("no HTML produced in non-strict mode")
	}
}

func TestService_Convert_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := New()
	_, err := svc.Convert(ctx, Input{Text: "# 導入\n"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestService_ValidateOnly(t *testing.T) {
	t.Parallel()

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		svc := New()
		_, err := svc.ValidateOnly(context.Background(), "本文。")
		if !errors.Is(err, ErrValidationDisabled) {
			t.Errorf("error = %v, want ErrValidationDisabled", err)
		}
	})

	t.Run("enabled", func(t *testing.T) {
		t.Parallel()

		svc := New(WithConfig(DefaultConfig().With(EnableValidation(true))))
		report, err := svc.ValidateOnly(context.Background(), "【目だま】\n")
		if err != nil {
			t.Fatalf("ValidateOnly() error = %v", err)
		}
		if report.Summary[LevelWarning] != 1 {
			t.Errorf("warnings = %d, want 1", report.Summary[LevelWarning])
		}
	})

	t.Run("empty content is reported, not rejected", func(t *testing.T) {
		t.Parallel()

		svc := New(WithConfig(DefaultConfig().With(EnableValidation(true))))
		report, err := svc.ValidateOnly(context.Background(), "")
		if err != nil {
			t.Fatalf("ValidateOnly() error = %v", err)
		}
		found := false
		for _, res := range report.Results {
			if res.Code == "DOC_EMPTY" {
				found = true
			}
		}
		if !found {
			t.Error("empty document not flagged")
		}
	})
}

func TestService_WithValidator(t *testing.T) {
	t.Parallel()

	banned := stubValidator{name: "BannedWordValidator", results: []ValidationResult{
		{Level: LevelSuggestion, Message: "custom", LineNumber: 1, Code: "CUSTOM"},
	}}

	svc := New(
		WithConfig(DefaultConfig().With(EnableValidation(true))),
		WithValidator(banned),
	)

	names := svc.Engine().Validators()
	if names[len(names)-1] != "BannedWordValidator" {
		t.Errorf("custom validator not registered last: %v", names)
	}

	report, err := svc.ValidateOnly(context.Background(), "x")
	if err != nil {
		t.Fatalf("ValidateOnly() error = %v", err)
	}
	found := false
	for _, res := range report.Results {
		if res.Code == "CUSTOM" {
			found = true
		}
	}
	if !found {
		t.Error("custom validator did not run")
	}
}

func TestService_WithAssetLoader(t *testing.T) {
	t.Parallel()

	loader := &stubAssetLoader{
		css:   "body { background: pink; }",
		shell: `<html><head><title>{{.Title}}</title><style>{{.CSS}}</style></head><body>{{.Body}}</body></html>`,
	}

	svc := New(WithAssetLoader(loader))
	result, err := svc.Convert(context.Background(), Input{Text: "本文。"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(result.HTML, "background: pink") {
		t.Error("custom style not used")
	}
}

func TestService_Convert_CRLFInput(t *testing.T) {
	t.Parallel()

	svc := New()
	result, err := svc.Convert(context.Background(), Input{Text: "# 導入\r\n\r\n本文。\r\n"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(result.HTML, `<h1 id="導入">導入</h1>`) {
		t.Error("CRLF input not normalized before assembly")
	}
}

type stubAssetLoader struct {
	css   string
	shell string
}

func (l *stubAssetLoader) LoadStyle(string) (string, error)    { return l.css, nil }
func (l *stubAssetLoader) LoadTemplate(string) (string, error) { return l.shell, nil }
