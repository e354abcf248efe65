package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/apidoc"
)

func newOpenAPICmd(_ *cli) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the HTTP API description",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := apidoc.Load(cmd.Context())
			if err != nil {
				return err
			}
			if !list {
				_, err := cmd.OutOrStdout().Write(doc.Raw())
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, op := range doc.Operations() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", op.Method, op.Path, op.ID, op.Summary)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list operations instead of printing the document")
	return cmd
}
