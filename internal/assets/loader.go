package assets

import (
	"fmt"
	"strings"
)

// Loader defines the contract for loading CSS styles and HTML templates.
// Implementations may load from embedded assets, the filesystem, or any
// other backend.
type Loader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html
	// extension). Returns ErrTemplateNotFound if it doesn't exist.
	LoadTemplate(name string) (string, error)
}

// NewLoader creates a Loader for the given base path. An empty base path
// returns the embedded loader; otherwise custom assets take precedence
// with fallback to the embedded defaults.
func NewLoader(basePath string) (Loader, error) {
	if basePath == "" {
		return NewEmbeddedLoader(), nil
	}
	fs, err := NewFilesystemLoader(basePath)
	if err != nil {
		return nil, err
	}
	return &fallbackLoader{primary: fs, fallback: NewEmbeddedLoader()}, nil
}

// fallbackLoader tries the primary loader and falls back to the secondary
// when the asset is not found.
type fallbackLoader struct {
	primary  Loader
	fallback Loader
}

func (l *fallbackLoader) LoadStyle(name string) (string, error) {
	content, err := l.primary.LoadStyle(name)
	if err == nil {
		return content, nil
	}
	return l.fallback.LoadStyle(name)
}

func (l *fallbackLoader) LoadTemplate(name string) (string, error) {
	content, err := l.primary.LoadTemplate(name)
	if err == nil {
		return content, nil
	}
	return l.fallback.LoadTemplate(name)
}

// ValidateAssetName checks that an asset name is safe for use as a file
// name: non-empty, no path separators, no dots.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
