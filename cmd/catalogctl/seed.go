package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"catalog-backend/internal/domains/generation/model"
	"catalog-backend/internal/domains/generation/repository"
	"catalog-backend/internal/domains/generation/service"
	"catalog-backend/pkg/container"
)

func seedCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "seed <file.json>",
		Short: "Import authors and books from a seed file",
		Long: "Import authors and books from a JSON seed file.\n" +
			"Existing authors (by name) and books (by title) are left untouched.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := readSeedFile(args[0])
			if err != nil {
				return err
			}

			var catalog repository.CatalogInterface
			if dryRun {
				catalog = repository.NewMemoryCatalog()
			} else {
				c, err := container.NewContainer()
				if err != nil {
					return err
				}
				defer c.Cleanup()
				catalog = c.Catalog
			}

			report, err := service.NewSeeder(catalog).Seed(cmd.Context(), entries)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "authors created=%d found=%d, books created=%d found=%d, failed=%d\n",
				report.AuthorsCreated, report.AuthorsFound, report.BooksCreated, report.BooksFound, report.Failed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "import into an in-memory catalog and only print the counts")
	return cmd
}

func readSeedFile(path string) ([]model.SeedAuthor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var entries []model.SeedAuthor
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return entries, nil
}
