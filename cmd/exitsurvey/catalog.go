package main

import (
	"github.com/spf13/cobra"

	"github.com/dgallion1/exitsurvey/internal/catalog"
)

func newCatalogCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the category catalog as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Default()
			if file != "" {
				loaded, err := catalog.LoadFile(file)
				if err != nil {
					return err
				}
				cat = loaded
			}
			return catalog.WriteYAML(cmd.OutOrStdout(), cat)
		},
	}
	cmd.Flags().StringVar(&file, "catalog", "", "validate and print this YAML catalog instead of the built-in one")
	return cmd
}
