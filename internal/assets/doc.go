// Package assets provides CSS styles and HTML templates for generated
// scenario documents, loaded from embedded defaults with optional
// filesystem overrides.
package assets
