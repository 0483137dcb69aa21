package engine

import (
	"errors"
	"fmt"

	"github.com/plus3/tetris/board"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeInvalidConfig reports options the engine cannot run with.
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// CodeCorruptSnapshot reports a persisted game that cannot be restored.
	CodeCorruptSnapshot Code = "CORRUPT_SNAPSHOT"

	// CodeInvalidLineCount reports a line clear outside 1..4 rows.
	CodeInvalidLineCount Code = "INVALID_LINE_COUNT"

	// CodeIllegalMove marks a rejected intent in logs. Intents never return it.
	CodeIllegalMove Code = "ILLEGAL_MOVE"

	// CodeOutOfBounds wraps board.ErrOutOfBounds.
	CodeOutOfBounds Code = "OUT_OF_BOUNDS"
)

// Error is the engine's structured error.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// NewError creates an error with a code and message.
func NewError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError creates an error with a code that wraps cause. Board bounds
// violations are always reported as CodeOutOfBounds.
func WrapError(code Code, message string, cause error) *Error {
	if errors.Is(cause, board.ErrOutOfBounds) {
		code = CodeOutOfBounds
	}
	return &Error{Code: code, Message: message, Cause: cause}
}

// WithMetadata attaches a key/value pair and returns e.
func (e *Error) WithMetadata(key, value string) *Error {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

// ErrorCode extracts the code of the first *Error in err's chain.
func ErrorCode(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

// IsCode reports whether err's chain holds an *Error with code.
func IsCode(err error, code Code) bool {
	return errors.Is(err, &Error{Code: code})
}
