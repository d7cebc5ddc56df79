package parseerror

import (
	"errors"

	"github.com/tansive/walleterrors/internal/common/apperrors"
	"github.com/tansive/walleterrors/internal/thrown"
	"github.com/tansive/walleterrors/pkg/liberrors"
)

// evmMessagePaths are probed in order. ethers-style errors put the display text
// in shortMessage; RPC errors nest it under error or info.error.
var evmMessagePaths = []string{
	"shortMessage",
	"error.message",
	"info.error.message",
}

func matchEVMShape(v *thrown.Value, _ string) apperrors.Error {
	if !v.IsObject() {
		return nil
	}
	for _, path := range evmMessagePaths {
		if m, ok := v.String(path); ok {
			return apperrors.NewAppError(m)
		}
	}
	return nil
}

func matchViemError(v *thrown.Value, _ string) apperrors.Error {
	err, ok := v.AsError()
	if !ok {
		return nil
	}
	var viemErr *liberrors.ViemBaseError
	if !errors.As(err, &viemErr) {
		return nil
	}
	msg := viemErr.ShortMessage
	if msg == "" {
		msg = viemErr.Details
	}
	if msg == "" {
		return nil
	}
	return apperrors.NewAppError(msg)
}
