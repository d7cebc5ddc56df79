package parseerror

import (
	"errors"

	"github.com/tansive/walleterrors/internal/common/apperrors"
	"github.com/tansive/walleterrors/internal/common/httpx"
)

// Kinds of normalized errors reported by Describe.
const (
	KindHTTP   = "http"
	KindLedger = "ledger"
	KindApp    = "app"
)

// Description is the serializable view of a normalized error.
type Description struct {
	Message         string                     `json:"message"`
	FormikError     apperrors.FormikErrors     `json:"formikError"`
	ValidationError *apperrors.ValidationError `json:"validationError,omitempty"`
	Kind            string                     `json:"kind"`
	Code            any                        `json:"code,omitempty"`
}

// Describe flattens e for output. HTTP errors report their status code and
// Ledger errors their code name.
func Describe(e apperrors.Error) Description {
	d := Description{
		Message:         e.Message(),
		FormikError:     e.FormikError(),
		ValidationError: e.ValidationError(),
		Kind:            KindApp,
	}
	var se httpx.StatusError
	var le *LedgerError
	switch {
	case errors.As(e, &le):
		d.Kind = KindLedger
		d.Code = le.Code.String()
	case errors.As(e, &se):
		d.Kind = KindHTTP
		d.Code = se.HTTPStatus()
	}
	return d
}
