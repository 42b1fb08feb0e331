package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	scriptweaver "github.com/ykonishi/scriptweaver"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.Title != "TRPGシナリオ" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if !cfg.TOC.Enabled || cfg.TOC.Title != "目次" {
		t.Errorf("TOC = %+v", cfg.TOC)
	}
	if cfg.Validation.Enabled || cfg.Validation.Strict {
		t.Errorf("Validation = %+v", cfg.Validation)
	}
	if cfg.Validation.System != "CoC6" {
		t.Errorf("System = %q", cfg.Validation.System)
	}
	if cfg.Output.Suffix != ".html" || cfg.Output.ReportSuffix != ".report.json" {
		t.Errorf("Output = %+v", cfg.Output)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	content := `title: 悪霊の家
style: scenario
toc:
  enabled: false
  title: 章立て
validation:
  enabled: true
  strict: true
  customSkills:
    - 古文書解読
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Title != "悪霊の家" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if cfg.TOC.Enabled {
		t.Error("TOC.Enabled = true, want overridden to false")
	}
	if cfg.TOC.Title != "章立て" {
		t.Errorf("TOC.Title = %q", cfg.TOC.Title)
	}
	if !cfg.Validation.Enabled || !cfg.Validation.Strict {
		t.Errorf("Validation = %+v", cfg.Validation)
	}
	if len(cfg.Validation.CustomSkills) != 1 {
		t.Errorf("CustomSkills = %v", cfg.Validation.CustomSkills)
	}

	// Fields absent from the file keep their defaults.
	if cfg.Output.Suffix != ".html" {
		t.Errorf("Output.Suffix = %q, want default", cfg.Output.Suffix)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		if _, err := Load(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing.yaml")
		if _, err := Load(path); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("unknownField: true\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "broken.yaml")
		if err := os.WriteFile(path, []byte("title: [unclosed\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Title = "往復テスト"
	cfg.Validation.Enabled = true

	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Title != cfg.Title {
		t.Errorf("Title = %q, want %q", loaded.Title, cfg.Title)
	}
	if loaded.Validation.Enabled != cfg.Validation.Enabled {
		t.Errorf("Validation.Enabled = %v", loaded.Validation.Enabled)
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Title = "タイトル"
	cfg.TOC.Enabled = false
	cfg.Validation.Enabled = true
	cfg.Validation.Strict = true
	cfg.Validation.CustomSkills = []string{"古文書解読"}
	cfg.Style = "custom"

	effective := scriptweaver.DefaultConfig().With(cfg.Options()...)

	if effective.HTMLTitle != "タイトル" {
		t.Errorf("HTMLTitle = %q", effective.HTMLTitle)
	}
	if effective.IncludeTOC {
		t.Error("IncludeTOC = true, want false")
	}
	if !effective.EnableValidation || !effective.StrictMode {
		t.Errorf("validation flags = %v/%v", effective.EnableValidation, effective.StrictMode)
	}
	if len(effective.CustomSkills) != 1 {
		t.Errorf("CustomSkills = %v", effective.CustomSkills)
	}
	if effective.Style != "custom" {
		t.Errorf("Style = %q", effective.Style)
	}
}
