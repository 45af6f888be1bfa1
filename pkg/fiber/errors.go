package fiber

import (
	"errors"
	"fmt"
)

// Category represents the type of engine error.
type Category string

const (
	CategoryClassify Category = "classify"
	CategoryPairing  Category = "pairing"
	CategoryPass     Category = "pass"
)

// Error codes.
const (
	CodeInvalidElementType = "E001"
	CodeMissingPairing     = "E002"
)

// Error is a structured engine error with a code, a category, and an
// optional fix suggestion. Classification errors are developer-facing and
// fatal to the in-flight pass; pairing errors are internal invariant
// violations and should stop reconciliation rather than attempt recovery.
type Error struct {
	Code       string
	Category   Category
	Message    string
	Suggestion string

	// Owner is the name of the nearest enclosing composite, when known.
	Owner string

	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// IsInvalidElementType reports whether err is an unrecognized-description
// error from the classifier.
func IsInvalidElementType(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeInvalidElementType
}

// IsMissingPairing reports whether err is a builder invariant violation.
func IsMissingPairing(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeMissingPairing
}

// newInvalidElementType builds the classifier error surface: a diagnostic
// naming the offending value and the nearest enclosing composite.
func newInvalidElementType(got any, owner *Fiber) *Error {
	e := &Error{
		Code:     CodeInvalidElementType,
		Category: CategoryClassify,
		Message: fmt.Sprintf(
			"element type is invalid: expected a string, a marker, or a component but got: %s.",
			describeType(got)),
	}
	if got == nil {
		e.Suggestion = "You likely forgot to export your component from the file " +
			"it's defined in, or you might have mixed up default and named imports."
	}
	if name := NearestOwnerName(owner); name != "" {
		e.Owner = name
		e.Message += fmt.Sprintf(" Check the render method of %q.", name)
	}
	if e.Suggestion != "" {
		e.Message += " " + e.Suggestion
	}
	return e
}

// newMissingPairing reports WorkInProgress being invoked without a previous
// fiber to pair against.
func newMissingPairing() *Error {
	return &Error{
		Code:     CodeMissingPairing,
		Category: CategoryPairing,
		Message:  "cannot pair for update without a previous fiber; first-generation fibers use the classifier",
	}
}

func describeType(got any) string {
	switch got.(type) {
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%T", got)
	}
}
