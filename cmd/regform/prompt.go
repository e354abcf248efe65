package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/internal/app"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
)

func newPromptCmd(c *cli) *cobra.Command {
	var (
		format   string
		attempts int
		confirm  bool
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the form interactively in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputFormat := tui.OutputFormat(format)
			switch outputFormat {
			case tui.OutputFormatJSON, tui.OutputFormatPrettyText:
			default:
				return fmt.Errorf("unsupported --format %q", format)
			}

			formOptions, err := app.FormOptions(c.cfg)
			if err != nil {
				return err
			}
			session := tui.NewSession(
				tui.WithForm(orchestrator.New(formOptions...)),
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
				tui.WithOutput(cmd.OutOrStdout()),
				tui.WithOutputFormat(outputFormat),
				tui.WithMaxAttempts(attempts),
				tui.WithConfirmSubmit(confirm),
			)
			reg, err := session.Run(cmd.Context())
			if err != nil {
				return err
			}
			c.logger.Debug("registration captured", "country", reg.Country)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&format, "format", "f", string(tui.OutputFormatJSON), "output format: json or pretty")
	flags.IntVar(&attempts, "attempts", tui.DefaultMaxAttempts, "correction rounds before giving up")
	flags.BoolVar(&confirm, "confirm", false, "ask for confirmation before submitting")
	return cmd
}
