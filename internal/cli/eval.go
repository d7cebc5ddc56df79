package cli

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tansive/walleterrors/internal/common/jsruntime"
	"github.com/tansive/walleterrors/internal/parseerror"
	"github.com/tansive/walleterrors/internal/thrown"
)

type evalOptions struct {
	script       string
	file         string
	inputFile    string
	defaultError string
	timeout      time.Duration
}

// newEvalCmd creates the eval command
func newEvalCmd() *cobra.Command {
	opts := &evalOptions{}
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Run a JavaScript snippet and classify what it throws",
		Long: `Run a JavaScript snippet and classify the value it throws, or its
completion value when it does not throw. Rejected promises count as thrown.

Examples:
  walleterrors eval -e 'throw new Error("Failed to open the device")'
  walleterrors eval -e 'throw input' --input error.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.script, "expr", "e", "", "JavaScript to run")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "File holding the JavaScript to run")
	cmd.Flags().StringVarP(&opts.inputFile, "input", "i", "", "JSON or YAML file bound to the global 'input'")
	cmd.Flags().StringVarP(&opts.defaultError, "default", "d", "", "Message used when the value is not recognized")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", jsruntime.DefaultTimeout, "Maximum run time")
	cmd.MarkFlagsMutuallyExclusive("expr", "file")
	cmd.MarkFlagsOneRequired("expr", "file")
	return cmd
}

func runEval(cmd *cobra.Command, opts *evalOptions) error {
	script := opts.script
	if opts.file != "" {
		b, err := os.ReadFile(opts.file)
		if err != nil {
			return err
		}
		script = string(b)
	}

	jsOpts := jsruntime.Options{Timeout: opts.timeout}
	if opts.inputFile != "" {
		data, err := os.ReadFile(opts.inputFile)
		if err != nil {
			return err
		}
		doc, err := toJSON(data)
		if err != nil {
			return err
		}
		jsOpts.Globals = map[string]json.RawMessage{"input": doc}
	}

	res, jsErr := jsruntime.Eval(cmd.Context(), script, jsOpts)
	if jsErr != nil {
		return jsErr
	}

	value := thrown.New(res.Value)
	classified := parseerror.Parse(value.Raw(), opts.defaultError)
	return printClassification(cmd.OutOrStdout(), classified, thrown.Fingerprint(value), map[string]any{
		"thrown": res.Thrown,
	})
}
