package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tansive/walleterrors/internal/config"
	"github.com/tansive/walleterrors/internal/parseerror"
	"github.com/tansive/walleterrors/internal/server"
)

// newServeCmd creates the serve command
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the classification service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx)
		},
	}
}

func runServer(ctx context.Context) error {
	cfg := config.Config()
	p := parseerror.NewParser(parseerror.WithDefaultMessage(cfg.DefaultError))
	s, err := server.CreateNewServer(p, cfg.Server)
	if err != nil {
		return err
	}
	s.MountHandlers()
	log.Info().
		Int("validation_handlers", p.Registry().Len()).
		Bool("cors", cfg.Server.HandleCORS).
		Msg("starting classification service")
	return s.ListenAndServe(ctx)
}
