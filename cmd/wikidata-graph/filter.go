// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/wikidata-graph/internal/filter"
	"github.com/pdiddy/wikidata-graph/pkg/types"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Keep only the configured properties in downloaded records",
	Long: `Filter rewrites every Q*.json record in the input directory into the
output directory with each entity's claims reduced to the property
allow-list. Labels, descriptions and all other entity fields are kept.`,
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().String("input-dir", "", "directory of downloaded records (default json_files)")
	filterCmd.Flags().String("output-dir", "", "directory for filtered records (default shorter_json_files)")
	filterCmd.Flags().StringSlice("properties", nil, "property ids to keep (default: lifespan, education, citizenship, occupation and influence properties)")

	bindFlags(viper.GetViper(), filterCmd.Flags(), map[string]string{
		"input-dir":  keyFilterInputDir,
		"output-dir": keyFilterOutputDir,
		"properties": keyFilterProperties,
	})

	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(viper.GetViper(), loadedSecrets).Filter
	return filterStage(cmd.Context(), cfg, os.Stdout)
}

func filterStage(ctx context.Context, cfg types.FilterConfig, w io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("filter config: %w", err)
	}

	summary, err := filter.FilterDir(ctx, cfg, w)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed filtering", summary.Failed)
	}
	return nil
}
