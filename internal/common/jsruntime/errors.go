package jsruntime

import (
	"net/http"

	"github.com/tansive/walleterrors/internal/common/apperrors"
)

var (
	ErrJSRuntime        = apperrors.New("jsruntime error")
	ErrJSRuntimeTimeout = ErrJSRuntime.New("jsruntime timeout").SetStatusCode(http.StatusRequestTimeout)
	ErrInvalidScript    = ErrJSRuntime.New("invalid javascript").SetStatusCode(http.StatusBadRequest).SetExpandError(true)
	ErrInvalidGlobal    = ErrJSRuntime.New("invalid global value").SetStatusCode(http.StatusBadRequest).SetExpandError(true)
	ErrJSExecutionError = ErrJSRuntime.New("js execution error").SetStatusCode(http.StatusUnprocessableEntity).SetExpandError(true)
)
