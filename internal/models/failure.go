package models

import (
	"errors"
	"fmt"
)

// FailureKind classifies pipeline failures. Configuration failures are fatal
// before any network call; the rest are local to one file and never abort
// the run.
type FailureKind int

const (
	// FailureConfiguration means required configuration is missing.
	FailureConfiguration FailureKind = iota
	// FailureUnavailable means the review backend stayed unreachable after
	// the bounded retry count.
	FailureUnavailable
	// FailureMalformedResponse means the backend returned 2xx with a body
	// that matches none of the known shapes. Not retried.
	FailureMalformedResponse
	// FailureUnauthorized means the backend rejected the session credential.
	// Not retried; the caller owns session refresh.
	FailureUnauthorized
	// FailurePublishRejected means the hosting API rejected the review
	// payload. Not retried by the publisher.
	FailurePublishRejected
)

func (k FailureKind) String() string {
	switch k {
	case FailureConfiguration:
		return "configuration"
	case FailureUnavailable:
		return "unavailable"
	case FailureMalformedResponse:
		return "malformed_response"
	case FailureUnauthorized:
		return "unauthorized"
	case FailurePublishRejected:
		return "publish_rejected"
	}
	return "unknown"
}

// Failure is a classified error. It crosses component boundaries instead of
// panics or sentinel strings.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Kind.String()
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// NewFailure wraps err with a failure kind.
func NewFailure(kind FailureKind, err error) *Failure {
	return &Failure{Kind: kind, Err: err}
}

// Failuref builds a classified failure from a format string.
func Failuref(kind FailureKind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// FailureKindOf extracts the kind from an error chain. The second return is
// false when the chain carries no Failure.
func FailureKindOf(err error) (FailureKind, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return 0, false
}

// IsFailureKind reports whether err carries the given kind.
func IsFailureKind(err error, kind FailureKind) bool {
	k, ok := FailureKindOf(err)
	return ok && k == kind
}
