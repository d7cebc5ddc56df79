package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tansive/walleterrors/internal/common/logtrace"
	"github.com/tansive/walleterrors/internal/config"
	"github.com/tansive/walleterrors/internal/parseerror"
)

var (
	// Global flags
	jsonOutput bool
	configFile string
	logLevel   string
)

var ErrAlreadyHandled = errors.New("already handled")

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)
var fieldLabel = color.New(color.FgCyan)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "walleterrors [command] [flags]",
		Short: "Classify errors raised by wallet clients into displayable messages",
		Long: `walleterrors turns errors raised by wallet client libraries (GraphQL API,
EVM libraries, Ledger transport, Solana RPC) into a short message and
per-field form errors.

Examples:
  # Classify a thrown value stored as JSON or YAML
  walleterrors classify -f error.json

  # Classify what a JavaScript snippet throws
  walleterrors eval -e 'throw { statusCode: 0x6511 }'

  # List the registered validation error keys
  walleterrors handlers

  # Run the classification service
  walleterrors serve --config walleterrors.toml`,
		PersistentPreRunE: preRunHandlePersistents,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "", "", "Path to configuration file")
	cmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	cmd.PersistentFlags().StringVarP(&logLevel, "log-level", "", "", "Log level (overrides the configuration)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newClassifyCmd())
	cmd.AddCommand(newEvalCmd())
	cmd.AddCommand(newHandlersCmd())
	cmd.AddCommand(newServeCmd())
	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true // Prevent Cobra from printing the error
	rootCmd.SilenceUsage = true  // Prevent Cobra from printing usage on error

	err := rootCmd.Execute()
	if err != nil {
		if errors.Is(err, ErrAlreadyHandled) {
			os.Exit(1)
		}
		if jsonOutput {
			printJSON(os.Stdout, map[string]string{
				"error": err.Error(),
			})
		} else {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// preRunHandlePersistents loads the configuration, sets up logging and installs
// the configured default message and message catalog.
func preRunHandlePersistents(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		if err := config.LoadConfig(configFile); err != nil {
			return err
		}
	} else if err := config.LoadDefaultConfig(); err != nil {
		return err
	}
	cfg := config.Config()

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logtrace.InitLogger(level)

	parseerror.SetDefaultMessage(cfg.DefaultError)
	return config.RegisterMessages(parseerror.DefaultRegistry())
}

// newVersionCmd creates and returns a new version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of walleterrors",
		Run: func(cmd *cobra.Command, args []string) {
			if jsonOutput {
				printJSON(cmd.OutOrStdout(), map[string]string{
					"version":        getCLIVersion(),
					"config_version": config.ConfigFormatVersion,
				})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "walleterrors %s\n", getCLIVersion())
			}
		},
	}
}

// printJSON prints the given value as indented JSON to w
func printJSON(w io.Writer, data any) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintln(w, string(jsonData))
}

// getCLIVersion returns the current CLI version
func getCLIVersion() string {
	return "v0.1.0"
}
