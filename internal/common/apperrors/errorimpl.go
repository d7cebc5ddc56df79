package apperrors

import (
	"errors"
	"strings"
)

// AppError is the concrete normalized error. Matchers construct a fresh AppError
// per classification; the With* mutators update the receiver in place and return
// it so construction can be chained.
type AppError struct {
	msg             string           // user-displayable message
	formikError     FormikErrors     // per-field messages
	validationError *ValidationError // parsed validation payload
	base            error            // base error for errors.Is/As compatibility
	wrappedErrors   []error          // underlying causes
	statuscode      int              // HTTP status code
	expandError     bool             // controls ErrorAll expansion
}

// NewAppError creates an AppError with an empty field map and no validation payload.
func NewAppError(msg string) *AppError {
	return &AppError{
		msg:         msg,
		formikError: FormikErrors{},
	}
}

// New creates a root-level AppError with the given message. It is used for
// package-level error templates.
func New(msg string) *AppError {
	return NewAppError(msg)
}

// Error returns the message.
func (e *AppError) Error() string {
	return e.msg
}

// Message returns the user-displayable message.
func (e *AppError) Message() string {
	return e.msg
}

// FormikError returns the per-field messages. Never nil.
func (e *AppError) FormikError() FormikErrors {
	if e.formikError == nil {
		e.formikError = FormikErrors{}
	}
	return e.formikError
}

// ValidationError returns the preserved validation payload, or nil.
func (e *AppError) ValidationError() *ValidationError {
	return e.validationError
}

// WithFormikError replaces the per-field messages and returns the receiver.
func (e *AppError) WithFormikError(f FormikErrors) *AppError {
	if f == nil {
		f = FormikErrors{}
	}
	e.formikError = f
	return e
}

// WithValidationError replaces the validation payload and returns the receiver.
// A nil payload clears it.
func (e *AppError) WithValidationError(ve *ValidationError) *AppError {
	e.validationError = ve
	return e
}

// StatusCode returns the HTTP status code, 0 when unset.
func (e *AppError) StatusCode() int {
	return e.statuscode
}

// Unwrap returns the base error for compatibility with errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.base
}

// UnwrapAll returns all wrapped errors in the order they were added.
func (e *AppError) UnwrapAll() []error {
	return e.wrappedErrors
}

// ErrorAll returns the message followed by wrapped errors when expansion is
// enabled. Otherwise it returns the same as Error().
func (e *AppError) ErrorAll() string {
	if !e.expandError {
		return e.Error()
	}
	var b strings.Builder
	b.WriteString(e.Error())
	for _, err := range e.wrappedErrors {
		if err == nil || err == error(e.base) {
			continue
		}
		b.WriteString("; ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// New creates a fresh error using the receiver as a template. The new error
// inherits the status code and expansion flag.
func (e *AppError) New(msg string) *AppError {
	return &AppError{
		msg:         msg,
		formikError: FormikErrors{},
		base:        e,
		statuscode:  e.statuscode,
		expandError: e.expandError,
	}
}

// Msg creates a new error with a new message that wraps the receiver.
func (e *AppError) Msg(msg string) *AppError {
	cp := e.New(msg)
	cp.wrappedErrors = append([]error{e}, e.wrappedErrors...)
	return cp
}

// Err creates a new error with the receiver's message that additionally wraps errs.
func (e *AppError) Err(errs ...error) *AppError {
	cp := e.New(e.msg)
	cp.wrappedErrors = append([]error{e}, errs...)
	return cp
}

// SetStatusCode returns a shallow copy with an updated status code.
func (e *AppError) SetStatusCode(code int) *AppError {
	cp := *e
	cp.statuscode = code
	return &cp
}

// SetExpandError returns a shallow copy with an updated expansion flag.
func (e *AppError) SetExpandError(flag bool) *AppError {
	cp := *e
	cp.expandError = flag
	return &cp
}

// Is checks the base error and all wrapped errors.
func (e *AppError) Is(target error) bool {
	if target == nil {
		return false
	}
	if e.base != nil && errors.Is(e.base, target) {
		return true
	}
	for _, err := range e.wrappedErrors {
		if err == nil {
			continue
		}
		if err == target || errors.Is(err, target) {
			return true
		}
	}
	return false
}

var _ Error = (*AppError)(nil)
