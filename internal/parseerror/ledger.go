package parseerror

import (
	"errors"
	"strings"

	"github.com/tansive/walleterrors/internal/common/apperrors"
	"github.com/tansive/walleterrors/internal/thrown"
	"github.com/tansive/walleterrors/pkg/liberrors"
)

// LedgerErrorCode tells callers which device action to ask the user for.
type LedgerErrorCode int

const (
	LedgerUnknownError LedgerErrorCode = iota
	LedgerNotRunningEthApp
	LedgerLocked
	LedgerUserRejected
	LedgerDisconnected
	LedgerBlindSigningDisabled
)

var ledgerCodeNames = map[LedgerErrorCode]string{
	LedgerUnknownError:         "LedgerUnknownError",
	LedgerNotRunningEthApp:     "LedgerNotRunningEthApp",
	LedgerLocked:               "LedgerLocked",
	LedgerUserRejected:         "LedgerUserRejected",
	LedgerDisconnected:         "LedgerDisconnected",
	LedgerBlindSigningDisabled: "LedgerBlindSigningDisabled",
}

var ledgerMessages = map[LedgerErrorCode]string{
	LedgerUnknownError:         "Unknown error - please reconnect your Ledger",
	LedgerNotRunningEthApp:     "Please open the correct app on your Ledger and try again",
	LedgerLocked:               "Please unlock your Ledger and try again",
	LedgerUserRejected:         "User rejected the transaction",
	LedgerDisconnected:         "Please connect your Ledger",
	LedgerBlindSigningDisabled: "Please enable blind signing in your Ethereum app",
}

func (c LedgerErrorCode) String() string {
	if s, ok := ledgerCodeNames[c]; ok {
		return s
	}
	return "LedgerUnknownError"
}

// MarshalText encodes the code by name.
func (c LedgerErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// LedgerError is the normalized error for hardware signer failures.
type LedgerError struct {
	*apperrors.AppError
	Code LedgerErrorCode
}

// NewLedgerError creates the LedgerError for code with its fixed message.
func NewLedgerError(code LedgerErrorCode) *LedgerError {
	msg, ok := ledgerMessages[code]
	if !ok {
		code = LedgerUnknownError
		msg = ledgerMessages[LedgerUnknownError]
	}
	return &LedgerError{
		AppError: apperrors.NewAppError(msg),
		Code:     code,
	}
}

var wrongAppStatuses = []int{
	liberrors.StatusCLANotSupported,
	liberrors.StatusUnknownAPDU,
	liberrors.StatusINSNotSupported,
	liberrors.StatusAppNotOpen,
}

const failedToOpenDevice = "Failed to open the device"

// ledgerShape is the decoded object form of a transport error.
type ledgerShape struct {
	StatusCode *int   `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

type ledgerInfo struct {
	shape ledgerShape
	err   error
}

func inspectLedger(v *thrown.Value) ledgerInfo {
	var info ledgerInfo
	_ = v.Decode(&info.shape)
	if err, ok := v.AsError(); ok {
		info.err = err
		var tse *liberrors.TransportStatusError
		if info.shape.StatusCode == nil && errors.As(err, &tse) {
			code := tse.StatusCode
			info.shape.StatusCode = &code
		}
	}
	return info
}

func (i ledgerInfo) statusIn(codes ...int) bool {
	if i.shape.StatusCode == nil {
		return false
	}
	for _, c := range codes {
		if *i.shape.StatusCode == c {
			return true
		}
	}
	return false
}

// is matches either a Go error of the target type or a decoded object whose
// name is the library class name.
func (i ledgerInfo) is(name string, target any) bool {
	if i.shape.Name == name {
		return true
	}
	return i.err != nil && errors.As(i.err, target)
}

func matchLedgerError(v *thrown.Value, _ string) apperrors.Error {
	if !v.IsObject() {
		return nil
	}
	info := inspectLedger(v)
	msg, _ := v.Message()

	switch {
	case info.statusIn(wrongAppStatuses...):
		return NewLedgerError(LedgerNotRunningEthApp)
	case info.is("LockedDeviceError", new(*liberrors.LockedDeviceError)) ||
		info.statusIn(liberrors.StatusSecurityStatusNotSatisfied, liberrors.StatusLockedDevice):
		return NewLedgerError(LedgerLocked)
	case info.statusIn(liberrors.StatusConditionsOfUseNotSatisfied):
		return NewLedgerError(LedgerUserRejected)
	case strings.Contains(msg, failedToOpenDevice) ||
		info.is("TransportOpenUserCancelled", new(*liberrors.TransportOpenUserCancelled)) ||
		info.is("DisconnectedDevice", new(*liberrors.DisconnectedDevice)):
		return NewLedgerError(LedgerDisconnected)
	case info.is("EthAppPleaseEnableContractData", new(*liberrors.EthAppPleaseEnableContractData)):
		return NewLedgerError(LedgerBlindSigningDisabled)
	case info.is("TransportStatusError", new(*liberrors.TransportStatusError)):
		return NewLedgerError(LedgerUnknownError)
	}
	return nil
}
