package utils

import (
	"strings"
	"testing"
)

func TestStoredFilenameKeepsExtension(t *testing.T) {
	name := StoredFilename(3, 0, "My Paper.PDF")
	if !strings.HasSuffix(name, ".pdf") {
		t.Errorf("stored name %q does not keep the lowercased extension", name)
	}
	if strings.Contains(name, " ") {
		t.Errorf("stored name %q contains spaces", name)
	}
}

func TestStoredFilenameMarksRevisionRound(t *testing.T) {
	initial := StoredFilename(3, 0, "paper.pdf")
	if strings.Contains(initial, "_r0_") {
		t.Errorf("initial upload %q carries a round marker", initial)
	}

	revised := StoredFilename(3, 2, "paper.pdf")
	if !strings.Contains(revised, "_r2_") {
		t.Errorf("revision upload %q missing round marker", revised)
	}
}

func TestStoredFilenameIsUnique(t *testing.T) {
	first := StoredFilename(3, 0, "paper.pdf")
	second := StoredFilename(3, 0, "paper.pdf")
	if first == second {
		t.Error("two stored names for the same upload were identical")
	}
}
