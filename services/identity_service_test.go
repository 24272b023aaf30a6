package services

import (
	"regexp"
	"testing"

	"journal-submission-api/models"
)

func TestAnonymizeScrubsPersonalData(t *testing.T) {
	steps := []*queryStep{
		{
			kind: kindExec,
			// The consent timestamp lives in column consent_timestamp, not
			// consent_at; the scrub must target the real column.
			pattern: regexp.MustCompile("UPDATE `users` SET .*`consent_given`=.*`consent_timestamp`=.*WHERE"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()
	svc := NewIdentityService(db)

	user := models.User{UserID: 9, Name: "Reviewer", Email: "reviewer@example.org", Role: models.RoleReviewer}
	if err := svc.Anonymize(&user); err != nil {
		t.Fatalf("anonymize failed: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unexpected remaining steps: %v", err)
	}
}
