//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Pipeline groups the stage targets. Each one builds the CLI first and
// runs the matching subcommand with the default layout, honouring
// wikidata-graph.yaml and WIKIDATA_GRAPH_* settings.
type Pipeline mg.Namespace

func cli(args ...string) error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// Fetch downloads one JSON record per entity listed in query.tsv.
func (Pipeline) Fetch() error {
	return cli("fetch")
}

// Filter trims downloaded records to the property allow-list.
func (Pipeline) Filter() error {
	return cli("filter")
}

// Extract writes node_list.csv, edge_list.csv and desc_list.csv. Set
// GRAPH_DB to also load the tables into a SQLite database.
func (Pipeline) Extract() error {
	if db := os.Getenv("GRAPH_DB"); db != "" {
		return cli("extract", "--database", db)
	}
	return cli("extract")
}

// All runs fetch, filter and extract in order.
func (Pipeline) All() {
	mg.SerialDeps(Init, Pipeline.Fetch, Pipeline.Filter, Pipeline.Extract)
}
