// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/wikidata-graph/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run fetch, filter and extract in sequence",
	Long: `Run executes the three stages with one configuration. Stage settings come
from the config file and environment; see the fetch, filter and extract
subcommands for the keys. A fetch with failed downloads does not stop the
later stages; its failures are reported at the end.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipelineConfig(viper.GetViper(), loadedSecrets)
		return runPipeline(cmd.Context(), cfg, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runPipeline(ctx context.Context, cfg types.PipelineConfig, w io.Writer) error {
	fmt.Fprintln(w, "== fetch")
	fetchErr := fetchStage(ctx, cfg.Fetch, w)
	if fetchErr != nil && !errors.Is(fetchErr, errDownloadFailures) {
		return fetchErr
	}

	fmt.Fprintln(w, "== filter")
	if err := filterStage(ctx, cfg.Filter, w); err != nil {
		return err
	}

	fmt.Fprintln(w, "== extract")
	if err := extractStage(ctx, cfg.Extract, w); err != nil {
		return err
	}
	return fetchErr
}
