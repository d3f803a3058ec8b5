// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/wikidata-graph/internal/extract"
	"github.com/pdiddy/wikidata-graph/internal/graphdb"
	"github.com/pdiddy/wikidata-graph/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Flatten filtered records into node, edge and description tables",
	Long: `Extract reads every JSON record in the input directory and writes three
CSV tables: one node per entity, one edge per entity-valued claim and one
description per literal-valued claim. Missing or malformed fields are
counted and reported but never stop the run. A run.yaml report is written
next to the tables.

With --database the tables are also loaded into a SQLite database.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("input-dir", "", "directory of filtered records (default shorter_json_files)")
	extractCmd.Flags().String("output-dir", "", "directory for the tables and run.yaml (default .)")
	extractCmd.Flags().String("database", "", "also load the tables into this SQLite database")
	extractCmd.Flags().Bool("lifespan-descriptions", false, "also write birth and death claims to the description table")

	bindFlags(viper.GetViper(), extractCmd.Flags(), map[string]string{
		"input-dir":             keyExtractInputDir,
		"output-dir":            keyExtractOutputDir,
		"database":              keyExtractDatabase,
		"lifespan-descriptions": keyExtractLifespan,
	})

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(viper.GetViper(), loadedSecrets).Extract
	return extractStage(cmd.Context(), cfg, os.Stdout)
}

func extractStage(ctx context.Context, cfg types.ExtractConfig, w io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("extract config: %w", err)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	res, err := extract.ExtractAll(ctx, cfg, w)
	if err != nil {
		return err
	}

	if cfg.DatabasePath != "" {
		return loadDatabase(ctx, cfg.DatabasePath, res.Tables, w)
	}
	return nil
}

func loadDatabase(ctx context.Context, path string, t types.Tables, w io.Writer) error {
	store, err := graphdb.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Load(ctx, t); err != nil {
		return err
	}
	counts, err := store.Counts(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "database %s: %d nodes, %d edges, %d descriptions\n",
		path, counts.Nodes, counts.Edges, counts.Descriptions)
	return nil
}
