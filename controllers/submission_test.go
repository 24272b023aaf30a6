package controllers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscardUploadRemovesStoredFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "20240101120000_3_abcd1234.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	discardUpload(path)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still present after discard: %v", err)
	}
}

func TestDiscardUploadIgnoresMissingFile(t *testing.T) {
	// A rejected request may race its own cleanup; a second discard of the
	// same path must stay quiet.
	discardUpload(filepath.Join(t.TempDir(), "missing.pdf"))
}
