package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.org", "first.last@sub.domain.ac.uk", "a@b.co"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false", email)
		}
	}

	invalid := []string{"", "user", "user@", "@example.org", "user@@example.org", "user @example.org"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("longenough"); !ok {
		t.Error("ValidatePassword rejected an 8+ character password")
	}
	if ok, reason := ValidatePassword("short"); ok || reason == "" {
		t.Error("ValidatePassword accepted a short password")
	}
}

func TestAllowedManuscriptFile(t *testing.T) {
	allowed := []string{"paper.pdf", "paper.DOCX", "notes.txt", "old.rtf", "draft.doc"}
	for _, name := range allowed {
		if !AllowedManuscriptFile(name) {
			t.Errorf("AllowedManuscriptFile(%q) = false", name)
		}
	}

	rejected := []string{"", "paper", "paper.exe", "archive.zip", "image.png"}
	for _, name := range rejected {
		if AllowedManuscriptFile(name) {
			t.Errorf("AllowedManuscriptFile(%q) = true", name)
		}
	}
}
