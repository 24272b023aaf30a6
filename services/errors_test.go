package services

import (
	"errors"
	"fmt"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

func TestKindOfTypedErrors(t *testing.T) {
	cases := []struct {
		err  error
		kind ErrorKind
		code string
	}{
		{forbidden(CodeSelfReviewForbidden, "x"), KindForbidden, CodeSelfReviewForbidden},
		{invalidState(CodeCannotWithdraw, "x"), KindInvalidState, CodeCannotWithdraw},
		{conflict(CodeDuplicateAssignment, "x"), KindConflict, CodeDuplicateAssignment},
		{notFound("x"), KindNotFound, CodeNotFound},
		{storageUnavailable(errors.New("boom")), KindStorage, CodeStorageUnavailable},
	}

	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.kind {
			t.Errorf("KindOf(%v) = %q, want %q", tc.err, got, tc.kind)
		}
		if got := CodeOf(tc.err); got != tc.code {
			t.Errorf("CodeOf(%v) = %q, want %q", tc.err, got, tc.code)
		}
		if !IsKind(tc.err, tc.kind) {
			t.Errorf("IsKind(%v, %q) = false", tc.err, tc.kind)
		}
	}
}

func TestUntypedErrorsTreatedAsStorage(t *testing.T) {
	err := errors.New("connection reset")
	if got := KindOf(err); got != KindStorage {
		t.Errorf("KindOf(untyped) = %q, want %q", got, KindStorage)
	}
	if got := CodeOf(err); got != CodeStorageUnavailable {
		t.Errorf("CodeOf(untyped) = %q, want %q", got, CodeStorageUnavailable)
	}
}

func TestKindOfWrappedWorkflowError(t *testing.T) {
	inner := conflict(CodeAlreadyPublished, "already out")
	wrapped := fmt.Errorf("publish article 31: %w", inner)

	if got := KindOf(wrapped); got != KindConflict {
		t.Errorf("KindOf(wrapped) = %q, want %q", got, KindConflict)
	}
	if got := CodeOf(wrapped); got != CodeAlreadyPublished {
		t.Errorf("CodeOf(wrapped) = %q, want %q", got, CodeAlreadyPublished)
	}
}

func TestStorageErrorUnwraps(t *testing.T) {
	cause := errors.New("deadlock")
	err := storageUnavailable(cause)
	if !errors.Is(err, cause) {
		t.Errorf("storage error does not unwrap to its cause")
	}
}

func TestIsDuplicateKey(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"mysql duplicate entry", &mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"}, true},
		{"mysql unknown column", &mysqldriver.MySQLError{Number: 1054, Message: "Unknown column"}, false},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"wrapped mysql", fmt.Errorf("insert: %w", &mysqldriver.MySQLError{Number: 1062}), true},
		{"plain error", errors.New("boom"), false},
	}

	for _, tc := range cases {
		if got := isDuplicateKey(tc.err); got != tc.want {
			t.Errorf("%s: isDuplicateKey = %v, want %v", tc.name, got, tc.want)
		}
	}
}
