package thrown

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/anand-gl/jsoncanonicalizer"
)

// Fingerprint returns a stable identifier for the value: the SHA-256 of its
// canonical JSON form (RFC 8785), so equal documents hash equally regardless of
// key order. Go errors also mix in their type and text, and values without a
// JSON form hash only their type and text. Self-referencing values hash their
// type, plus the error text for Go errors.
func Fingerprint(v *Value) string {
	var input []byte
	if doc := v.JSON(); doc != nil {
		if canonical, err := jsoncanonicalizer.Transform(doc); err == nil {
			input = canonical
		}
	}
	switch {
	case input == nil && v.cyclic:
		input = []byte(fmt.Sprintf("%T", v.raw))
		if err, ok := v.AsError(); ok {
			input = append(input, ":"+err.Error()...)
		}
	case input == nil:
		input = []byte(fmt.Sprintf("%T:%v", v.raw, v.raw))
	default:
		if err, ok := v.AsError(); ok {
			input = append(input, fmt.Sprintf("\x00%T:%s", err, err.Error())...)
		}
	}
	sum := sha256.Sum256(input)
	return hex.EncodeToString(sum[:])
}
