package liberrors

import "fmt"

// APDU status words returned by Ledger devices.
const (
	StatusOK                          = 0x9000
	StatusAppNotOpen                  = 0x6511
	StatusSecurityStatusNotSatisfied  = 0x6982
	StatusConditionsOfUseNotSatisfied = 0x6985
	StatusINSNotSupported             = 0x6d00
	StatusUnknownAPDU                 = 0x6d02
	StatusCLANotSupported             = 0x6e00
	StatusLockedDevice                = 0x5515
)

// TransportStatusError is raised by the Ledger transport when the device answers
// with a non-OK status word.
type TransportStatusError struct {
	StatusCode int    `json:"statusCode"`
	StatusText string `json:"statusText,omitempty"`
}

func (e *TransportStatusError) Error() string {
	if e.StatusText != "" {
		return fmt.Sprintf("Ledger device: %s (0x%04x)", e.StatusText, e.StatusCode)
	}
	return fmt.Sprintf("Ledger device: UNKNOWN_ERROR (0x%04x)", e.StatusCode)
}

// Status returns the status word.
func (e *TransportStatusError) Status() int {
	return e.StatusCode
}

// LockedDeviceError is raised when the device is locked.
type LockedDeviceError struct {
	Message string
}

func (e *LockedDeviceError) Error() string {
	if e.Message == "" {
		return "Ledger device is locked"
	}
	return e.Message
}

// TransportOpenUserCancelled is raised when the user dismisses the device picker.
type TransportOpenUserCancelled struct{}

func (e *TransportOpenUserCancelled) Error() string {
	return "user cancelled the device selection"
}

// DisconnectedDevice is raised when the device is unplugged during an exchange.
type DisconnectedDevice struct{}

func (e *DisconnectedDevice) Error() string {
	return "Ledger device was disconnected"
}

// EthAppPleaseEnableContractData is raised by the Ethereum app when blind
// signing is disabled.
type EthAppPleaseEnableContractData struct{}

func (e *EthAppPleaseEnableContractData) Error() string {
	return "please enable blind signing or contract data in the Ethereum app settings"
}
