package errors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalid      = errors.New("invalid")
	ErrConflict     = errors.New("conflict")
	ErrConfig       = errors.New("misconfigured")
	ErrDelivery     = errors.New("delivery failed")
)

var (
	ErrUserExists         = New(ErrConflict, "user with this email already exists")
	ErrInvalidCredentials = New(ErrUnauthorized, "invalid email or password")
	ErrTokenRequired      = New(ErrUnauthorized, "authentication token required")
	ErrInvalidToken       = New(ErrUnauthorized, "invalid token")
	ErrTokenExpired       = New(ErrUnauthorized, "token expired")
	ErrReminderNotFound   = New(ErrNotFound, "reminder not found")
	ErrMailNotConfigured  = New(ErrConfig, "SMTP configuration is incomplete")
)

// Error is a classified failure. errors.Is matches both the Error itself and
// its kind sentinel.
type Error struct {
	kind  error
	msg   string
	field string
	cause error
}

func New(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func Wrap(kind error, msg string, cause error) *Error {
	return &Error{kind: kind, msg: msg, cause: cause}
}

// Invalid reports a validation failure. field may be empty when the problem is
// not tied to a single input.
func Invalid(field, msg string) *Error {
	return &Error{kind: ErrInvalid, msg: msg, field: field}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Message() string {
	return e.msg
}

func (e *Error) Field() string {
	return e.field
}

func (e *Error) Kind() error {
	return e.kind
}

func (e *Error) Is(target error) bool {
	return target == e.kind
}

func (e *Error) Unwrap() error {
	return e.cause
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
