package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/internal/app"
	"github.com/goliatone/go-regform/internal/server"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
)

func newRenderCmd(c *cli) *cobra.Command {
	var (
		rendererName string
		output       string
		fragment     bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an empty form with one of the renderers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := server.DefaultRenderers()
			if err != nil {
				return err
			}
			renderer, err := registry.Get(rendererName)
			if err != nil {
				return fmt.Errorf("%w (available: %v)", err, registry.List())
			}
			formOptions, err := app.FormOptions(c.cfg)
			if err != nil {
				return err
			}
			themeConfig, err := app.Theme(c.cfg)
			if err != nil {
				return err
			}

			body, err := renderer.Render(cmd.Context(), orchestrator.New(formOptions...).Snapshot(), render.RenderOptions{
				Fragment: fragment,
				Theme:    themeConfig,
			})
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			if err := os.WriteFile(output, body, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", output)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&rendererName, "renderer", "r", "vanilla", "renderer to use")
	flags.StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	flags.BoolVar(&fragment, "fragment", false, "emit the form without the page wrapper")
	return cmd
}
