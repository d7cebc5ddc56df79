package liberrors

import "fmt"

// InstructionError is the Solana transaction error raised when an instruction
// of the transaction fails. Custom is set when the failing program returned a
// program-specific error code.
type InstructionError struct {
	Index  int
	Custom *uint32
}

// NewCustomInstructionError creates an InstructionError with a custom program code.
func NewCustomInstructionError(index int, code uint32) *InstructionError {
	return &InstructionError{Index: index, Custom: &code}
}

func (e *InstructionError) Error() string {
	if e.Custom != nil {
		return fmt.Sprintf("instruction %d: custom program error: %#x", e.Index, *e.Custom)
	}
	return fmt.Sprintf("instruction %d failed", e.Index)
}

// CustomCode returns the custom program error code, if any.
func (e *InstructionError) CustomCode() (uint32, bool) {
	if e.Custom == nil {
		return 0, false
	}
	return *e.Custom, true
}
