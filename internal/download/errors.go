package download

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies download failures for callers that need more than a
// message. All kinds surface the same way: a terminal Failed or Cancelled
// state on the job.
type ErrorKind string

const (
	// KindValidation means the job spec was rejected before the download started
	KindValidation ErrorKind = "validation"

	// KindNetwork means the transfer itself failed
	KindNetwork ErrorKind = "network"

	// KindStorage means the destination could not be created or written
	KindStorage ErrorKind = "storage"

	// KindCancelled means the user cancelled the job; not a true failure
	KindCancelled ErrorKind = "cancelled"

	// KindResourceExhausted means the scheduler could not start an execution context
	KindResourceExhausted ErrorKind = "resource_exhausted"
)

// Error is a classified download error.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return string(e.Kind)
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a classified error with a formatted message
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Classify maps an arbitrary error to a classified one. Context cancellation
// becomes KindCancelled; anything unrecognized is treated as a network error,
// the dominant failure mode of a transfer.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var dlErr *Error
	if errors.As(err, &dlErr) {
		return dlErr
	}

	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindCancelled, Message: "download cancelled", Cause: err}
	}

	return &Error{Kind: KindNetwork, Message: err.Error(), Cause: err}
}
