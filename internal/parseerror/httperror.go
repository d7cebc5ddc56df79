package parseerror

import (
	"errors"

	"github.com/tansive/walleterrors/internal/common/apperrors"
	"github.com/tansive/walleterrors/internal/common/httpx"
	"github.com/tansive/walleterrors/internal/thrown"
)

// matchHTTPError passes HTTP errors through unchanged; they already carry a
// message and a status code. An HTTP error without a message keeps its status
// and takes the default message.
func matchHTTPError(v *thrown.Value, defaultError string) apperrors.Error {
	err, ok := v.AsError()
	if !ok {
		return nil
	}
	var se httpx.StatusError
	if !errors.As(err, &se) {
		return nil
	}
	if se.Message() == "" {
		return httpx.NewHTTPError(se.HTTPStatus(), defaultError)
	}
	return se
}
