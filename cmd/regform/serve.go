package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/internal/app"
	"github.com/goliatone/go-regform/internal/metrics"
	"github.com/goliatone/go-regform/internal/server"
	"github.com/goliatone/go-regform/internal/tracing"
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form page and the session API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := c.cfg

			formOptions, err := app.FormOptions(cfg)
			if err != nil {
				return err
			}
			themeConfig, err := app.Theme(cfg)
			if err != nil {
				return err
			}
			traces, err := tracing.NewProvider(tracing.Config{
				Enabled:  cfg.Tracing.Enabled,
				Exporter: cfg.Tracing.Exporter,
				Writer:   cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			defer func() {
				if err := traces.Shutdown(ctx); err != nil {
					c.logger.Warn("trace shutdown", "error", err)
				}
			}()

			srv, err := server.New(ctx, server.Options{
				Logger:          c.logger,
				Metrics:         metrics.New(),
				Tracer:          traces.Tracer(),
				FormOptions:     formOptions,
				SessionTTL:      cfg.Session.TTL,
				CleanupInterval: cfg.Session.CleanupInterval,
				Theme:           themeConfig,
			})
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.ShutdownGrace)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8383)")
	_ = c.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
