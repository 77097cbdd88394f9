package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a failure so callers can tell the expected business
// rejections apart from the failures that end a run.
type Kind uint8

const (
	// KindUnexpected is any failure that does not fit another kind.
	KindUnexpected Kind = iota
	// KindBootstrap is a failure building the wallet or enrolling identities.
	KindBootstrap
	// KindConnect is a failure opening the gateway or resolving the channel and contract.
	KindConnect
	// KindBusiness is a rejection by the contract logic, such as updating an asset that does not exist.
	KindBusiness
)

func (k Kind) String() string {
	switch k {
	case KindBootstrap:
		return "bootstrap"
	case KindConnect:
		return "connect"
	case KindBusiness:
		return "business"
	default:
		return "unexpected"
	}
}

// Error is a failure of one operation of the runner or the listener
type Error struct {
	Kind Kind   // What kind of failure
	Op   string // Operation that failed, e.g. "enroll admin" or "submit UpdateAsset"
	Err  error  // Underlying cause
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s failure: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s failure: %s: %s", e.Kind, e.Op, e.Err.Error())
}

// Cause returns the underlying error, for errors.Cause
func (e *Error) Cause() error {
	return e.Err
}

// Unwrap returns the underlying error, for the standard errors package
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err as a failure of kind during op.
func NewError(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Bootstrapf returns a bootstrap failure with a formatted cause.
func Bootstrapf(op string, format string, args ...interface{}) error {
	return NewError(KindBootstrap, op, errors.Errorf(format, args...))
}

// KindOf returns the kind of the outermost *Error in the chain of err,
// KindUnexpected if there is none.
func KindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		cause, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		err = cause.Cause()
	}
	return KindUnexpected
}

// IsRecoverable reports whether a run can go on after err.
// Only business rejections are recoverable.
func IsRecoverable(err error) bool {
	return err != nil && KindOf(err) == KindBusiness
}
