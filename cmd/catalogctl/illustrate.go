package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"catalog-backend/pkg/container"
)

func illustrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "illustrate",
		Short: "Backfill missing author portraits and book covers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := container.NewContainer()
			if err != nil {
				return err
			}
			defer c.Cleanup()

			report, err := c.GenerationService.IllustrateCatalog(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "generated=%d skipped=%d failed=%d\n",
				report.Generated, report.Skipped, report.Failed)
			return nil
		},
	}
}
