package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/internal/app"
	"github.com/goliatone/go-regform/pkg/location"
)

func newCatalogCmd(c *cli) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the location catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := app.LoadCatalog(c.cfg.Catalog.Path)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(catalog.Entries())
			}
			return printCatalog(cmd.OutOrStdout(), catalog)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func printCatalog(w io.Writer, catalog *location.Catalog) error {
	for _, country := range catalog.Countries() {
		code, _ := catalog.DialingCode(country)
		if _, err := fmt.Fprintf(w, "%s (%s)\n", country, code); err != nil {
			return err
		}
		for _, state := range catalog.StatesOf(country) {
			fmt.Fprintf(w, "  %s\n", state)
			for _, city := range catalog.CitiesOf(country, state) {
				fmt.Fprintf(w, "    - %s\n", city)
			}
		}
	}
	return nil
}
