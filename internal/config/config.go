// Package config loads CLI configuration files for scriptweaver.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	scriptweaver "github.com/ykonishi/scriptweaver"
	"github.com/ykonishi/scriptweaver/internal/fileutil"
	"github.com/ykonishi/scriptweaver/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Config holds all file-configurable options for document generation.
type Config struct {
	Title      string           `yaml:"title"`
	Style      string           `yaml:"style"`
	AssetPath  string           `yaml:"assetPath"`
	TOC        TOCConfig        `yaml:"toc"`
	Validation ValidationConfig `yaml:"validation"`
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled bool   `yaml:"enabled"`
	Title   string `yaml:"title"`
}

// ValidationConfig defines validation options.
type ValidationConfig struct {
	Enabled      bool     `yaml:"enabled"`
	Strict       bool     `yaml:"strict"`
	System       string   `yaml:"system"`
	BeginnerMode bool     `yaml:"beginnerMode"`
	CustomSkills []string `yaml:"customSkills"`
}

// InputConfig defines loader options.
type InputConfig struct {
	MaxFileSize int64    `yaml:"maxFileSize"` // bytes, 0 = default
	Encodings   []string `yaml:"encodings"`   // fallback chain, empty = default
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Suffix       string `yaml:"suffix"`       // default ".html"
	ReportSuffix string `yaml:"reportSuffix"` // default ".report.json"
}

// Default returns the configuration used when no file is loaded.
func Default() *Config {
	base := scriptweaver.DefaultConfig()
	return &Config{
		Title: base.HTMLTitle,
		Style: "",
		TOC:   TOCConfig{Enabled: base.IncludeTOC, Title: base.TOCTitle},
		Validation: ValidationConfig{
			Enabled: base.EnableValidation,
			Strict:  base.StrictMode,
			System:  base.TRPGSystem,
		},
		Output: OutputConfig{Suffix: ".html", ReportSuffix: ".report.json"},
	}
}

// Load loads configuration from a file path or a config name. A string
// containing a path separator is treated as a file path; otherwise it is
// searched in the standard locations. There is no silent fallback: a
// missing file is an error.
func Load(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var path string
	if fileutil.IsFilePath(nameOrPath) {
		path = nameOrPath
		if !fileutil.FileExists(path) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
	} else {
		found, searched := findConfig(nameOrPath)
		if found == "" {
			return nil, fmt.Errorf("%w: %q (searched %v)", ErrConfigNotFound, nameOrPath, searched)
		}
		path = found
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-supplied config path
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	return cfg, nil
}

// findConfig searches the standard locations for a named config.
func findConfig(name string) (found string, searched []string) {
	candidates := []string{name + ".yaml", name + ".yml"}
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "scriptweaver"))
	}
	for _, dir := range dirs {
		for _, candidate := range candidates {
			path := filepath.Join(dir, candidate)
			searched = append(searched, path)
			if fileutil.FileExists(path) {
				return path, searched
			}
		}
	}
	return "", searched
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yamlutil.Marshal(c)
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Options translates the file configuration into library config overrides.
func (c *Config) Options() []scriptweaver.ConfigOption {
	opts := []scriptweaver.ConfigOption{
		scriptweaver.HTMLTitle(c.Title),
		scriptweaver.IncludeTOC(c.TOC.Enabled),
		scriptweaver.TOCTitle(c.TOC.Title),
		scriptweaver.EnableValidation(c.Validation.Enabled),
		scriptweaver.TRPGSystem(c.Validation.System),
		scriptweaver.BeginnerMode(c.Validation.BeginnerMode),
	}
	if c.Validation.Strict {
		opts = append(opts, scriptweaver.StrictMode(true))
	}
	if len(c.Validation.CustomSkills) > 0 {
		opts = append(opts, scriptweaver.CustomSkills(c.Validation.CustomSkills...))
	}
	if c.Style != "" {
		opts = append(opts, scriptweaver.Style(c.Style))
	}
	return opts
}
