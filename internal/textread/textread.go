// Package textread loads scenario files as normalized Unicode text. It
// enforces the size gate before any content reaches the conversion core and
// decodes the configured encoding fallback chain.
package textread

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

// Sentinel errors for file loading.
var (
	// ErrUnsupportedFormat indicates the file extension is not supported.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrSizeLimit indicates the file exceeds the configured maximum size.
	ErrSizeLimit = errors.New("file exceeds maximum size")

	// ErrEncodingDetection indicates no configured encoding could decode
	// the file.
	ErrEncodingDetection = errors.New("could not detect file encoding")
)

// DefaultMaxFileSize caps input files at 50MB.
const DefaultMaxFileSize = 50 * 1024 * 1024

// DefaultEncodings is the fallback chain tried in order.
var DefaultEncodings = []string{"utf-8", "shift_jis", "cp932", "euc-jp", "iso-2022-jp"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Options configures file loading.
type Options struct {
	// MaxFileSize rejects larger files before reading content.
	// Zero means DefaultMaxFileSize.
	MaxFileSize int64

	// Encodings is the decoding fallback chain. Empty means
	// DefaultEncodings.
	Encodings []string
}

// SupportedFormats returns the file extensions the loader accepts.
func SupportedFormats() []string {
	return []string{".txt"}
}

// decoders maps encoding names to their decoders. UTF-8 is handled by
// validation instead of transformation.
var decoders = map[string]encoding.Encoding{
	"shift_jis":   japanese.ShiftJIS,
	"cp932":       japanese.ShiftJIS,
	"euc-jp":      japanese.EUCJP,
	"iso-2022-jp": japanese.ISO2022JP,
}

// ReadFile loads path and returns its content as UTF-8 text. The extension
// must be supported, the size gate is checked against file metadata before
// reading, and the encoding chain is tried in configured order.
func ReadFile(path string, opts Options) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	supported := false
	for _, s := range SupportedFormats() {
		if ext == s {
			supported = true
			break
		}
	}
	if !supported {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if info.Size() > maxSize {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrSizeLimit, info.Size(), maxSize)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- caller-supplied input path
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	return Decode(data, opts.Encodings)
}

// Decode converts raw bytes to UTF-8 text using the encoding fallback
// chain. The first encoding that decodes without replacement characters
// wins.
func Decode(data []byte, encodings []string) (string, error) {
	if len(encodings) == 0 {
		encodings = DefaultEncodings
	}

	data = bytes.TrimPrefix(data, utf8BOM)

	for _, name := range encodings {
		normalized := strings.ToLower(strings.ReplaceAll(name, "-", "_"))
		if normalized == "utf_8" || normalized == "utf8" {
			if utf8.Valid(data) {
				return string(data), nil
			}
			continue
		}

		enc, ok := decoders[normalized]
		if !ok {
			enc, ok = decoders[strings.ReplaceAll(normalized, "_", "-")]
		}
		if !ok {
			continue
		}
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil || !utf8.Valid(decoded) {
			continue
		}
		if bytes.ContainsRune(decoded, utf8.RuneError) {
			// The decoder substituted replacement characters; the
			// bytes were not this encoding.
			continue
		}
		return string(decoded), nil
	}

	return "", ErrEncodingDetection
}
