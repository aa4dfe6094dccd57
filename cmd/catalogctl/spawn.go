package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"catalog-backend/internal/config"
	"catalog-backend/internal/domains/generation/model"
	"catalog-backend/internal/domains/generation/repository"
	"catalog-backend/internal/domains/generation/service"
	"catalog-backend/internal/infrastructure/artifact"
	"catalog-backend/internal/infrastructure/generative"
	"catalog-backend/internal/infrastructure/metrics"
	"catalog-backend/pkg/container"
)

func spawnCommand() *cobra.Command {
	var (
		dryRun bool
		atomic bool
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "spawn <author name>",
		Short: "Generate an author with all books and characters",
		Long: "Generate an author with all books and characters.\n" +
			"With --dry-run the tree is kept in memory and printed; only images are written.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")

			var (
				svc     service.ServiceInterface
				cleanup = func() {}
			)
			if dryRun {
				s, err := dryRunService(outDir, atomic)
				if err != nil {
					return err
				}
				svc = s
			} else {
				c, err := container.NewContainer()
				if err != nil {
					return err
				}
				cleanup = c.Cleanup
				svc = c.GenerationService
			}
			defer cleanup()

			tree, err := svc.SpawnAuthorByName(cmd.Context(), name)
			if err != nil {
				return err
			}
			return printTree(cmd, tree)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "keep generated rows in memory instead of Postgres")
	cmd.Flags().BoolVar(&atomic, "atomic", false, "abort the whole cascade on the first child failure (dry-run only)")
	cmd.Flags().StringVar(&outDir, "out", "", "artifact directory for --dry-run (default ARTIFACT_DIR)")
	return cmd
}

// dryRunService wires the pipeline against an in-memory catalog and the filesystem store.
func dryRunService(outDir string, atomic bool) (service.ServiceInterface, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if outDir == "" {
		outDir = cfg.Artifact.Dir
	}

	m, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		return nil, err
	}
	client, err := generative.New(generative.Config{
		ChatProvider:    cfg.Generation.ChatProvider,
		OpenAIAPIKey:    cfg.Generation.OpenAIAPIKey,
		OpenAIBaseURL:   cfg.Generation.OpenAIBaseURL,
		ChatModel:       cfg.Generation.ChatModel,
		ImageModel:      cfg.Generation.ImageModel,
		ImageSize:       cfg.Generation.ImageSize,
		AnthropicAPIKey: cfg.Generation.AnthropicAPIKey,
		AnthropicModel:  cfg.Generation.AnthropicModel,
		Timeout:         cfg.Generation.Timeout,
	}, m)
	if err != nil {
		return nil, err
	}

	return service.NewGenerationService(
		client,
		repository.NewMemoryCatalog(),
		artifact.NewFileStore(outDir, m),
		m,
		service.Options{Atomic: atomic},
	), nil
}

func printTree(cmd *cobra.Command, tree *model.AuthorTree) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(tree); err != nil {
		return err
	}

	for _, f := range tree.AllFailures() {
		fmt.Fprintf(cmd.ErrOrStderr(), "failed %s %q: %v\n", f.Kind, f.Seed, f.Err)
	}
	return nil
}
