package parseerror

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/tansive/walleterrors/internal/common/apperrors"
	"github.com/tansive/walleterrors/internal/thrown"
	"github.com/tansive/walleterrors/pkg/liberrors"
)

const simulationFailed = "Transaction simulation failed"

// Custom program error codes with a display message.
const (
	ProgramErrorInsufficientFunds uint32 = 0x1
	ProgramErrorSlippageExceeded  uint32 = 0x1771
)

var hexCodePattern = regexp.MustCompile(`0x[0-9a-fA-F]+\b`)

var (
	programErrorsMu sync.RWMutex
	programErrors   = map[uint32]string{
		ProgramErrorInsufficientFunds: "Insufficient funds for transaction",
		ProgramErrorSlippageExceeded:  "Slippage tolerance exceeded",
	}
)

// RegisterProgramError maps a custom program error code to a display text.
// The last registration for a code wins.
func RegisterProgramError(code uint32, text string) {
	programErrorsMu.Lock()
	defer programErrorsMu.Unlock()
	programErrors[code] = text
}

func programErrorText(code uint32) (string, bool) {
	programErrorsMu.RLock()
	defer programErrorsMu.RUnlock()
	text, ok := programErrors[code]
	return text, ok
}

func simulationError(text string) apperrors.Error {
	return apperrors.NewAppError(simulationFailed + ": " + text)
}

func matchSolanaError(v *thrown.Value, _ string) apperrors.Error {
	if res := matchSimulationMessage(v); res != nil {
		return res
	}
	return matchInstructionError(v)
}

// matchSimulationMessage looks for a known program error code in a simulation
// failure message.
func matchSimulationMessage(v *thrown.Value) apperrors.Error {
	msg, ok := v.Message()
	if !ok || !strings.Contains(msg, simulationFailed) {
		return nil
	}
	for _, hex := range hexCodePattern.FindAllString(msg, -1) {
		code, err := strconv.ParseUint(hex[2:], 16, 32)
		if err != nil {
			continue
		}
		if text, ok := programErrorText(uint32(code)); ok {
			return simulationError(text)
		}
	}
	return nil
}

// instructionErrorPaths locate an InstructionError tuple [index, {Custom: code}].
var instructionErrorPaths = []string{
	"InstructionError",
	"err.InstructionError",
}

func matchInstructionError(v *thrown.Value) apperrors.Error {
	if err, ok := v.AsError(); ok {
		var ie *liberrors.InstructionError
		if errors.As(err, &ie) {
			if code, ok := ie.CustomCode(); ok {
				if text, ok := programErrorText(code); ok {
					return simulationError(text)
				}
			}
			return nil
		}
	}
	if !v.IsObject() {
		return nil
	}
	for _, path := range instructionErrorPaths {
		tuple := v.Get(path)
		if !tuple.IsArray() {
			continue
		}
		parts := tuple.Array()
		if len(parts) < 2 || parts[0].Type != gjson.Number {
			continue
		}
		custom := parts[1].Get("Custom")
		if custom.Type != gjson.Number {
			continue
		}
		// Program error codes are u32; fractions, negatives and wider values
		// are not codes.
		code, err := strconv.ParseUint(custom.Raw, 10, 32)
		if err != nil {
			continue
		}
		if text, ok := programErrorText(uint32(code)); ok {
			return simulationError(text)
		}
	}
	return nil
}
