package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tansive/walleterrors/internal/parseerror"
)

// newHandlersCmd creates the handlers command
func newHandlersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "handlers",
		Short: "List registered validation error keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := parseerror.DefaultRegistry().Keys()
			w := cmd.OutOrStdout()
			if jsonOutput {
				printJSON(w, map[string]any{"keys": keys})
				return nil
			}

			title := cases.Title(language.English)
			current := ""
			for _, key := range keys {
				domain, name, _ := strings.Cut(key, ":")
				if domain != current {
					current = domain
					okLabel.Fprintf(w, "%s:\n", title.String(domain))
				}
				fmt.Fprintf(w, "  %s\n", name)
			}
			return nil
		},
	}
}
