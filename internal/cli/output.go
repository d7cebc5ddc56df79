package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/tidwall/sjson"
	"sigs.k8s.io/yaml"

	"github.com/tansive/walleterrors/internal/common/apperrors"
	"github.com/tansive/walleterrors/internal/parseerror"
)

// readInput returns the thrown value source: the positional argument, stdin
// for "-", or the named file.
func readInput(in io.Reader, file string, args []string) ([]byte, error) {
	switch {
	case len(args) > 0:
		return []byte(args[0]), nil
	case file == "-":
		return io.ReadAll(in)
	case file != "":
		return os.ReadFile(file)
	}
	return nil, fmt.Errorf("no input: pass a value or use -f <file>")
}

// toJSON converts a JSON or YAML document to JSON.
func toJSON(data []byte) (json.RawMessage, error) {
	j, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("input is neither JSON nor YAML: %w", err)
	}
	return j, nil
}

// printClassification prints the normalized error. Extra fields are added to
// the JSON output only.
func printClassification(w io.Writer, res apperrors.Error, fingerprint string, extra map[string]any) error {
	desc := parseerror.Describe(res)
	if jsonOutput {
		body, err := json.Marshal(desc)
		if err != nil {
			return err
		}
		if body, err = sjson.SetBytes(body, "fingerprint", fingerprint); err != nil {
			return err
		}
		for k, v := range extra {
			if body, err = sjson.SetBytes(body, k, v); err != nil {
				return err
			}
		}
		printJSON(w, json.RawMessage(body))
		return nil
	}

	label := okLabel
	if desc.Kind != parseerror.KindApp {
		label = errorLabel
	}
	label.Fprintf(w, "%s\n", desc.Message)

	fields := make([]string, 0, len(desc.FormikError))
	for f := range desc.FormikError {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fieldLabel.Fprintf(w, "  %s: ", f)
		fmt.Fprintln(w, desc.FormikError[f])
	}

	if desc.Code != nil {
		fmt.Fprintf(w, "kind: %s (%v)\n", desc.Kind, desc.Code)
	} else {
		fmt.Fprintf(w, "kind: %s\n", desc.Kind)
	}
	if ve := desc.ValidationError; ve != nil {
		fmt.Fprintf(w, "validation: %s\n", ve.Key())
	}
	fmt.Fprintf(w, "fingerprint: %s\n", fingerprint)
	return nil
}
