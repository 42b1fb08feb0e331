package textread

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.txt")
	if err := os.WriteFile(path, []byte("# 導入\n本文。\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(path, Options{})
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(got, "導入") {
		t.Errorf("content = %q", got)
	}
}

func TestReadFile_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"doc.md", "doc.html", "doc"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadFile(path, Options{}); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("ReadFile(%q) error = %v, want ErrUnsupportedFormat", name, err)
		}
	}
}

func TestReadFile_SizeLimit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "big.txt")
	if err := os.WriteFile(path, []byte(strings.Repeat("a", 100)), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadFile(path, Options{MaxFileSize: 10}); !errors.Is(err, ErrSizeLimit) {
		t.Errorf("error = %v, want ErrSizeLimit", err)
	}
	if _, err := ReadFile(path, Options{MaxFileSize: 1000}); err != nil {
		t.Errorf("error = %v, want nil under the limit", err)
	}
}

func TestReadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"), Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestDecode_UTF8(t *testing.T) {
	t.Parallel()

	got, err := Decode([]byte("探索者"), nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got != "探索者" {
		t.Errorf("decoded = %q", got)
	}
}

func TestDecode_StripsBOM(t *testing.T) {
	t.Parallel()

	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("導入")...)
	got, err := Decode(data, nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got != "導入" {
		t.Errorf("decoded = %q, want BOM stripped", got)
	}
}

func TestDecode_ShiftJISFallback(t *testing.T) {
	t.Parallel()

	sjis, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte("クトゥルフ神話"))
	if err != nil {
		t.Fatal(err)
	}

	got, err := Decode(sjis, nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got != "クトゥルフ神話" {
		t.Errorf("decoded = %q", got)
	}
}

func TestDecode_EUCJP(t *testing.T) {
	t.Parallel()

	eucjp, err := japanese.EUCJP.NewEncoder().Bytes([]byte("探索者"))
	if err != nil {
		t.Fatal(err)
	}

	got, err := Decode(eucjp, []string{"euc-jp"})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got != "探索者" {
		t.Errorf("decoded = %q", got)
	}
}

func TestDecode_DetectionFailure(t *testing.T) {
	t.Parallel()

	// Bytes no encoding in the chain can decode cleanly.
	if _, err := Decode([]byte{0xFF, 0xFE, 0xFD}, []string{"utf-8"}); !errors.Is(err, ErrEncodingDetection) {
		t.Errorf("error = %v, want ErrEncodingDetection", err)
	}
}

func TestDecode_EncodingNameVariants(t *testing.T) {
	t.Parallel()

	sjis, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte("目星"))
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"shift_jis", "Shift-JIS", "SHIFT_JIS", "cp932"} {
		if _, err := Decode(sjis, []string{name}); err != nil {
			t.Errorf("Decode with %q error = %v", name, err)
		}
	}
}

func TestSupportedFormats(t *testing.T) {
	t.Parallel()

	formats := SupportedFormats()
	if len(formats) == 0 {
		t.Fatal("no supported formats")
	}
	for _, f := range formats {
		if !strings.HasPrefix(f, ".") {
			t.Errorf("format %q misses the dot prefix", f)
		}
	}
}
