package resume

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing test file: %v", err)
	}
	return path
}

func TestLoadCollapsesWhitespace(t *testing.T) {
	path := writeTempFile(t, "resume.txt", "Go  developer\n\nwith\tKubernetes   experience\n")

	text, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "Go developer with Kubernetes experience"
	if text != expected {
		t.Fatalf("expected %q, got %q", expected, text)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeTempFile(t, "resume.txt", "  \n\t ")

	_, err := Load(path)
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadBrokenPDF(t *testing.T) {
	path := writeTempFile(t, "resume.pdf", "this is not a pdf")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed pdf")
	}
}
