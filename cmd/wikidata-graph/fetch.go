// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/wikidata-graph/internal/fetch"
	"github.com/pdiddy/wikidata-graph/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download one JSON record per entity listed in the input file",
	Long: `Fetch reads entity URLs from the first column of a tab-separated file
and downloads each entity's JSON record from Special:EntityData into the
output directory. Entities that already have a file are skipped, so an
interrupted run can simply be repeated.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("input", "", "tab-separated file of entity URLs (default query.tsv)")
	fetchCmd.Flags().String("output-dir", "", "directory for downloaded records (default json_files)")
	fetchCmd.Flags().String("url-template", "", "retrieval URL with an {id} placeholder")
	fetchCmd.Flags().Duration("interval", 0, "minimum delay between downloads")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().String("user-agent", "", "User-Agent header")

	bindFlags(viper.GetViper(), fetchCmd.Flags(), map[string]string{
		"input":        keyFetchInputFile,
		"output-dir":   keyFetchOutputDir,
		"url-template": keyFetchURLTemplate,
		"interval":     keyFetchInterval,
		"timeout":      keyFetchTimeout,
		"user-agent":   keyFetchUserAgent,
	})

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(viper.GetViper(), loadedSecrets).Fetch
	return fetchStage(cmd.Context(), cfg, os.Stdout)
}

// errDownloadFailures marks a fetch batch that finished with failed items.
var errDownloadFailures = errors.New("downloads failed")

func fetchStage(ctx context.Context, cfg types.FetchConfig, w io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("fetch config: %w", err)
	}

	ids, err := fetch.ReadIdentifiersFile(cfg.InputFile)
	if err != nil {
		return err
	}
	ids = fetch.SelectValid(ids, w)
	fmt.Fprintf(w, "%d identifiers in %s\n", len(ids), cfg.InputFile)

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	result, err := fetch.FetchBatch(ctx, client, ids, cfg, w)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%w: %d entit(ies)", errDownloadFailures, result.Failed)
	}
	return nil
}
