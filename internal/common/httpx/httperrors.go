package httpx

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/tansive/walleterrors/internal/common/apperrors"
)

// HTTPError is a normalized error that carries the HTTP status code of the
// response that produced it.
type HTTPError struct {
	*apperrors.AppError
	Code int `json:"http_status_code"`
}

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, msg string) *HTTPError {
	return &HTTPError{
		AppError: apperrors.NewAppError(msg),
		Code:     code,
	}
}

// StatusCode returns the HTTP status code.
func (e *HTTPError) StatusCode() int {
	return e.Code
}

// HTTPStatus returns the HTTP status code. It marks the value as carrying an
// HTTP status for the classifier.
func (e *HTTPError) HTTPStatus() int {
	return e.Code
}

// AuthorizationError is an HTTPError fixed at 401.
type AuthorizationError struct {
	*HTTPError
}

// NewAuthorizationError creates an AuthorizationError with the given message.
func NewAuthorizationError(msg string) *AuthorizationError {
	return &AuthorizationError{
		HTTPError: NewHTTPError(http.StatusUnauthorized, msg),
	}
}

// StatusError is satisfied by HTTPError and every type embedding it.
type StatusError interface {
	apperrors.Error
	HTTPStatus() int
}

var (
	_ StatusError = (*HTTPError)(nil)
	_ StatusError = (*AuthorizationError)(nil)
)

type errorRsp struct {
	Result int    `json:"result"`
	Error  string `json:"error"`
}

// Failure represents the error result code in error responses.
const Failure int = 0

// Send writes the error response to the provided ResponseWriter.
// If the writer is nil, no action is taken.
func (e *HTTPError) Send(w http.ResponseWriter) {
	if w == nil {
		return
	}
	rsp := &errorRsp{
		Result: Failure,
		Error:  e.ErrorAll(),
	}
	rspJson, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(rsp)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Unable to parse error"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Code)
	w.Write(rspJson)
}

// SendError sends an application error as an HTTP error response.
// If the error is nil, no action is taken.
func SendError(w http.ResponseWriter, err apperrors.Error) {
	if err == nil {
		return
	}
	if se, ok := err.(StatusError); ok {
		NewHTTPError(se.HTTPStatus(), se.Message()).Send(w)
		return
	}
	statusCode := err.StatusCode()
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}
	desc := err.Error()
	if ae, ok := err.(*apperrors.AppError); ok {
		desc = ae.ErrorAll()
	}
	NewHTTPError(statusCode, desc).Send(w)
}

// Common Errors

// ErrReqMethodNotSupported returns an error for unsupported HTTP methods.
func ErrReqMethodNotSupported() *HTTPError {
	return NewHTTPError(http.StatusMethodNotAllowed, "request method not supported")
}

// ErrUnableToParseReqData returns an error when request data cannot be parsed.
func ErrUnableToParseReqData() *HTTPError {
	return NewHTTPError(http.StatusBadRequest, "unable to parse request data")
}

// ErrApplicationError returns an error for application-level failures.
// If no message is provided, a default message is used.
func ErrApplicationError(err ...string) *HTTPError {
	s := "unable to process request"
	if len(err) > 0 {
		s = err[0]
	}
	return NewHTTPError(http.StatusInternalServerError, s)
}

// ErrUnAuthorized returns an error for unauthorized requests.
// If no message is provided, a default message is used.
func ErrUnAuthorized(str ...string) *AuthorizationError {
	s := "unable to authenticate request"
	if len(str) > 0 {
		s = str[0]
	}
	return NewAuthorizationError(s)
}

// ErrInvalidRequest returns an error for invalid request data.
// If no message is provided, a default message is used.
func ErrInvalidRequest(str ...string) *HTTPError {
	s := "invalid request data or empty request values"
	if len(str) > 0 {
		s = str[0]
	}
	return NewHTTPError(http.StatusBadRequest, s)
}

// ErrRequestTimeout returns an error for request timeout.
func ErrRequestTimeout() *HTTPError {
	return NewHTTPError(http.StatusRequestTimeout, "request timed out")
}

// ErrRequestTooLarge returns an error when request body exceeds size limit.
func ErrRequestTooLarge(limit int64) *HTTPError {
	return NewHTTPError(http.StatusRequestEntityTooLarge, fmt.Sprintf("request body too large (limit: %d bytes)", limit))
}
