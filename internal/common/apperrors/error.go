// Package apperrors defines the normalized application error. Every value the
// classifier hands back to a caller satisfies Error: it carries a user-facing
// message, optional per-field form errors and, when the failure came from
// server-side validation, the structured validation payload.
package apperrors

// Error defines the interface for normalized application errors. It extends the
// standard error interface with accessors used by the presentation layer.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	Message() string                   // user-displayable text
	FormikError() FormikErrors         // field key to message, empty when not field scoped
	ValidationError() *ValidationError // parsed validation payload, nil when absent
	StatusCode() int                   // HTTP status code, 0 when not applicable
}

// FormikErrors maps a form field key to the message displayed next to it.
type FormikErrors map[string]string

// Has reports whether a message is set for field.
func (f FormikErrors) Has(field string) bool {
	_, ok := f[field]
	return ok
}

// Clone returns a copy of f. A nil map clones to an empty map.
func (f FormikErrors) Clone() FormikErrors {
	cp := make(FormikErrors, len(f))
	for k, v := range f {
		cp[k] = v
	}
	return cp
}
