package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mediashelf/internal/daemon"
	"mediashelf/internal/importer"
	"mediashelf/internal/library"
	"mediashelf/internal/logging"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if bind != "" {
				cfg.Paths.APIBind = bind
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			store, err := library.Open(cfg, logger)
			if err != nil {
				return fmt.Errorf("open library: %w", err)
			}
			svc, err := importer.NewFromConfig(cfg, logger)
			if err != nil {
				store.Close()
				return err
			}
			d, err := daemon.New(cfg, store, svc, logger)
			if err != nil {
				store.Close()
				return err
			}
			defer d.Close()

			runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if err := d.Start(runCtx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", d.Addr())

			<-runCtx.Done()
			logger.Info("mediashelf shutting down")
			return nil
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Override paths.api_bind")
	return cmd
}
