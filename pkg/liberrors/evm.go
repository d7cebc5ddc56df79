package liberrors

// ViemBaseError is the base error of the viem EVM library. Every viem error
// carries a short, user-appropriate message next to a verbose one.
type ViemBaseError struct {
	Name         string   `json:"name"`
	ShortMessage string   `json:"shortMessage"`
	Details      string   `json:"details,omitempty"`
	MetaMessages []string `json:"metaMessages,omitempty"`
	Cause        error    `json:"-"`
}

func (e *ViemBaseError) Error() string {
	msg := e.ShortMessage
	if e.Details != "" {
		msg += "\n\nDetails: " + e.Details
	}
	return msg
}

func (e *ViemBaseError) Unwrap() error {
	return e.Cause
}
