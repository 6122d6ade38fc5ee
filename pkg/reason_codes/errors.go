package reasoncodes

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks. Every *Error matches the sentinel of its code.
var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrRecordNotFound     = errors.New("record not found")
	ErrNoFields           = errors.New("no fields provided")
	ErrStoreFailed        = errors.New("store operation failed")
	ErrAborted            = errors.New("connection aborted")
	ErrServiceUnavailable = errors.New("service unavailable")
)

var sentinels = map[ReasonCode]error{
	ErrValidation:        ErrValidationFailed,
	ErrNotFound:          ErrRecordNotFound,
	ErrNoFieldsProvided:  ErrNoFields,
	ErrStore:             ErrStoreFailed,
	ErrConnectionAborted: ErrAborted,
	ErrUnavailable:       ErrServiceUnavailable,
}

// Error carries a reason code, a client facing message and optional details.
type Error struct {
	Code    ReasonCode
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return t.Code == e.Code
	}
	return sentinels[e.Code] == target
}

func Validation(message string, details any) *Error {
	return &Error{Code: ErrValidation, Message: message, Details: details}
}

func NotFound(message string) *Error {
	return &Error{Code: ErrNotFound, Message: message}
}

func NoFieldsProvided(message string) *Error {
	return &Error{Code: ErrNoFieldsProvided, Message: message}
}

func Store(message string, err error) *Error {
	return &Error{Code: ErrStore, Message: message, Err: err}
}

func Aborted(message string, err error) *Error {
	return &Error{Code: ErrConnectionAborted, Message: message, Err: err}
}

func Unavailable(message string, err error) *Error {
	return &Error{Code: ErrUnavailable, Message: message, Err: err}
}

// CodeOf returns the reason code carried anywhere in err's chain, or "" if none.
func CodeOf(err error) ReasonCode {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}
