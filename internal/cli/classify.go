package cli

import (
	"github.com/spf13/cobra"

	"github.com/tansive/walleterrors/internal/parseerror"
	"github.com/tansive/walleterrors/internal/thrown"
)

type classifyOptions struct {
	file         string
	defaultError string
}

// newClassifyCmd creates the classify command
func newClassifyCmd() *cobra.Command {
	opts := &classifyOptions{}
	cmd := &cobra.Command{
		Use:   "classify [value]",
		Short: "Classify a thrown value given as JSON or YAML",
		Long: `Classify a thrown value and print the normalized error.
The value is read from the argument, from a file (-f) or from stdin (-f -).

Examples:
  # Ledger app not open
  walleterrors classify '{"statusCode": 25873}'

  # From a YAML file, with a custom default message
  walleterrors classify -f error.yaml --default "Something went wrong"

  # From stdin, JSON output
  cat error.json | walleterrors classify -f - -j`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "File holding the thrown value, - for stdin")
	cmd.Flags().StringVarP(&opts.defaultError, "default", "d", "", "Message used when the value is not recognized")
	return cmd
}

func runClassify(cmd *cobra.Command, opts *classifyOptions, args []string) error {
	data, err := readInput(cmd.InOrStdin(), opts.file, args)
	if err != nil {
		return err
	}
	doc, err := toJSON(data)
	if err != nil {
		return err
	}
	value := thrown.New(doc)
	res := parseerror.Parse(value.Raw(), opts.defaultError)
	return printClassification(cmd.OutOrStdout(), res, thrown.Fingerprint(value), nil)
}
