package services

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrorKind partitions workflow failures so callers can tell "wrong actor"
// from "wrong state" from "uniqueness violation" without string matching.
type ErrorKind string

const (
	KindForbidden    ErrorKind = "forbidden"
	KindInvalidState ErrorKind = "invalid_state"
	KindConflict     ErrorKind = "conflict"
	KindNotFound     ErrorKind = "not_found"
	KindStorage      ErrorKind = "storage_unavailable"
)

// Stable failure codes surfaced to API clients.
const (
	CodeForbidden           = "forbidden"
	CodeSelfReviewForbidden = "self_review_forbidden"
	CodeDuplicateAssignment = "duplicate_assignment"
	CodeAlreadyCompleted    = "already_completed"
	CodeNotReadyForDecision = "not_ready_for_decision"
	CodeIllegalTransition   = "illegal_transition"
	CodeInvalidDecision     = "invalid_decision"
	CodeNotOpenForRevision  = "not_open_for_revision"
	CodeCannotWithdraw      = "cannot_withdraw"
	CodeCannotRevert        = "cannot_revert"
	CodeNotAccepted         = "not_accepted"
	CodeAlreadyScheduled    = "already_scheduled"
	CodeAlreadyPublished    = "already_published"
	CodeNotScheduled        = "not_scheduled"
	CodeNotPublished        = "not_published"
	CodeNotFound            = "not_found"
	CodeStorageUnavailable  = "storage_unavailable"
)

// WorkflowError is the typed failure every lifecycle and scheduling operation
// returns. It is never swallowed inside the services; controllers map Kind to
// an HTTP status and Code to a client-facing error identifier.
type WorkflowError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *WorkflowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *WorkflowError) Unwrap() error {
	return e.Err
}

func forbidden(code, message string) *WorkflowError {
	return &WorkflowError{Kind: KindForbidden, Code: code, Message: message}
}

func invalidState(code, message string) *WorkflowError {
	return &WorkflowError{Kind: KindInvalidState, Code: code, Message: message}
}

func conflict(code, message string) *WorkflowError {
	return &WorkflowError{Kind: KindConflict, Code: code, Message: message}
}

func notFound(message string) *WorkflowError {
	return &WorkflowError{Kind: KindNotFound, Code: CodeNotFound, Message: message}
}

func storageUnavailable(err error) *WorkflowError {
	return &WorkflowError{Kind: KindStorage, Code: CodeStorageUnavailable, Message: "storage operation failed", Err: err}
}

// KindOf returns the error's kind, or KindStorage for untyped errors so that
// unexpected persistence failures never masquerade as client mistakes.
func KindOf(err error) ErrorKind {
	var wf *WorkflowError
	if errors.As(err, &wf) {
		return wf.Kind
	}
	return KindStorage
}

// CodeOf returns the stable failure code for the error.
func CodeOf(err error) string {
	var wf *WorkflowError
	if errors.As(err, &wf) {
		return wf.Code
	}
	return CodeStorageUnavailable
}

// IsKind reports whether the error carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// isDuplicateKey reports whether the error is a unique index violation. The
// guarded Count checks race between concurrent transactions; the storage
// error from the losing insert must still surface as a conflict.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
