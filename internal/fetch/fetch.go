// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads Wikidata entity records, one JSON file per
// identifier. Identifiers whose file already exists are skipped, so an
// interrupted batch can be rerun and resumes where it stopped.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/time/rate"

	"github.com/pdiddy/wikidata-graph/internal/httputil"
	"github.com/pdiddy/wikidata-graph/pkg/types"
)

// BatchResult holds the outcome of a batch fetch run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
}

// Total returns the total number of identifiers processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any identifiers failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FetchEntity downloads the record for id into cfg.OutputDir unless a file
// for id is already present. The skipped return value indicates whether the
// download was skipped. The response body is stored verbatim.
func FetchEntity(ctx context.Context, client *http.Client, id string, cfg types.FetchConfig, w io.Writer) (skipped bool, err error) {
	if !ValidID(id) {
		return false, fmt.Errorf("unrecognized entity identifier %q", id)
	}

	destPath := filepath.Join(cfg.OutputDir, FileName(id))
	if _, err := os.Stat(destPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", id)
		return true, nil
	}

	url := EntityURL(cfg.URLTemplate, id)
	if err := downloadFile(ctx, client, url, destPath, cfg.HTTPConfig); err != nil {
		return false, fmt.Errorf("downloading %s: %w", id, err)
	}
	return false, nil
}

// FetchBatch processes ids in order, printing per-item status and progress,
// and returns a summary. It continues after individual failures. Downloads
// are spaced by cfg.RequestInterval when it is positive. A cancelled context
// stops the batch before the next item.
func FetchBatch(ctx context.Context, client *http.Client, ids []string, cfg types.FetchConfig, w io.Writer) (BatchResult, error) {
	var result BatchResult

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return result, fmt.Errorf("creating directory %s: %w", cfg.OutputDir, err)
	}

	limit := rate.Inf
	if cfg.RequestInterval > 0 {
		limit = rate.Every(cfg.RequestInterval)
	}
	limiter := rate.NewLimiter(limit, 1)

	progress := NewProgress(len(ids))
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			printSummary(w, result)
			return result, err
		}

		if !exists(cfg.OutputDir, id) {
			if err := limiter.Wait(ctx); err != nil {
				printSummary(w, result)
				return result, err
			}
		}

		wasSkipped, err := FetchEntity(ctx, client, id, cfg, w)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
			result.Failed++
		case wasSkipped:
			result.Skipped++
			continue
		default:
			result.Downloaded++
		}
		progress.Report(w, i+1, id)
	}

	printSummary(w, result)
	return result, nil
}

func printSummary(w io.Writer, result BatchResult) {
	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
}

func exists(dir, id string) bool {
	_, err := os.Stat(filepath.Join(dir, FileName(id)))
	return err == nil
}

// downloadFile fetches url to destPath using a temporary file so that a
// partial download never leaves a file that a later run would skip.
func downloadFile(ctx context.Context, client *http.Client, url, destPath string, cfg types.HTTPConfig) error {
	resp, err := httputil.Get(ctx, client, url, cfg)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, httputil.Body(resp, cfg.MaxBytes))
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
