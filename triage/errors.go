package triage

import (
	"errors"
	"fmt"
)

// Kind classifies a triage failure for the transport layer
type Kind int

// Failure kinds
const (
	KindInternal Kind = iota
	KindBadRequest
	KindNotFound
	KindForbidden
	KindConflict
	KindInvalidStatus
	KindNotResolved
	KindNoJurisdiction
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindInvalidStatus:
		return "invalid_status"
	case KindNotResolved:
		return "not_resolved"
	case KindNoJurisdiction:
		return "no_jurisdiction"
	}
	return "internal"
}

// Error is a failure with a user presentable message. Errors with the same
// Code match under errors.Is.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code != "" && t.Code == e.Code
}

// Sentinel errors returned by the triage operations
var (
	ErrNotFound         = &Error{Kind: KindNotFound, Code: "not_found", Message: "report not found"}
	ErrForbidden        = &Error{Kind: KindForbidden, Code: "forbidden", Message: "not allowed to modify this report"}
	ErrAlreadyVoted     = &Error{Kind: KindConflict, Code: "already_voted", Message: "you have already upvoted this report"}
	ErrReportResolved   = &Error{Kind: KindConflict, Code: "report_resolved", Message: "cannot upvote a resolved report"}
	ErrTerminalStatus   = &Error{Kind: KindConflict, Code: "terminal_status", Message: "report is closed and cannot change status"}
	ErrConcurrentUpdate = &Error{Kind: KindConflict, Code: "concurrent_update", Message: "report was modified concurrently, try again"}
	ErrInvalidStatus    = &Error{Kind: KindInvalidStatus, Code: "invalid_status", Message: "invalid status transition"}
	ErrNotResolved      = &Error{Kind: KindNotResolved, Code: "not_resolved", Message: "feedback is only accepted on resolved reports"}
	ErrBadRating        = &Error{Kind: KindBadRequest, Code: "bad_rating", Message: "rating must be between 1 and 5"}
	ErrNoJurisdiction   = &Error{Kind: KindNoJurisdiction, Code: "no_jurisdiction", Message: "no municipality found for this location"}
)

func badRequest(format string, args ...interface{}) error {
	return &Error{Kind: KindBadRequest, Code: "bad_request", Message: fmt.Sprintf(format, args...)}
}

func notFound(what string) error {
	return &Error{Kind: KindNotFound, Code: "not_found", Message: what + " not found"}
}

func forbidden(message string) error {
	return &Error{Kind: KindForbidden, Code: "forbidden", Message: message}
}

func invalidStatus(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidStatus, Code: "invalid_status", Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or KindInternal for anything that is not a
// triage error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the user presentable message of err
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
