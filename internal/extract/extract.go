// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract flattens filtered Wikidata entities into node, edge and
// description rows.
//
// Each step reading a field returns a value and a Reason instead of
// failing: a missing or malformed field degrades to an empty value and a
// counter in Stats, and never stops the entity, the file or the run.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/wikidata-graph/internal/table"
	"github.com/pdiddy/wikidata-graph/pkg/types"
)

// Options controls row emission.
type Options struct {
	// LifespanDescriptions also writes P569/P570 claims to the description
	// table. By default they only feed the birth and death node columns.
	LifespanDescriptions bool
}

// Record holds the rows produced by one entity.
type Record struct {
	Node         types.Node
	Edges        []types.Edge
	Descriptions []types.Description

	// Tags lists the properties whose value was a literal, including
	// birth and death when they are not written as description rows.
	Tags []string

	// Stats is what extracting this entity counted.
	Stats Stats
}

// ExtractEntity turns one raw entity into a Record. ok is false when the
// entity has no usable id, in which case nothing is emitted for it.
// Warnings for unknown value types and malformed claims go to w.
func ExtractEntity(raw json.RawMessage, opts Options, w io.Writer) (rec Record, stats Stats, ok bool) {
	stats.Entities = 1

	e, err := ParseEntity(raw)
	if err != nil {
		stats.MissingID = 1
		return rec, stats, false
	}

	id, reason := ExtractID(e)
	if reason != ReasonOK {
		stats.MissingID = 1
		return rec, stats, false
	}

	name, reason := ExtractName(e, id)
	if reason != ReasonOK {
		stats.NoEnglishName = 1
	}
	desc, reason := ExtractDescription(e)
	if reason != ReasonOK {
		stats.NoDescription = 1
	}
	birth, reason := ExtractTime(e.Claims, PropertyBirth)
	if reason != ReasonOK {
		stats.NoBirth = 1
	}
	death, reason := ExtractTime(e.Claims, PropertyDeath)
	if reason != ReasonOK {
		stats.NoDeath = 1
	}

	rec.Node = types.Node{ID: id, Name: name, Description: desc, Birth: birth, Death: death}

	if len(e.Claims) == 0 {
		stats.NoEdge = 1
	}

	for _, prop := range e.Claims.Properties() {
		stats.Claims++

		v := ExtractClaim(e.Claims[prop])
		switch v.Reason {
		case ReasonMalformed:
			stats.ClaimFailures++
			fmt.Fprintf(w, "warning: %s %s: malformed claim (%s)\n", id, prop, v.Detail)
		case ReasonUnknownType:
			stats.UnknownTypes++
			fmt.Fprintf(w, "warning: %s %s: unrecognized value type %q\n", id, prop, v.Type)
		}

		switch v.Kind {
		case KindEdge:
			rec.Edges = append(rec.Edges, types.Edge{Source: id, Property: prop, Target: v.Value})
		case KindDescription:
			rec.Tags = append(rec.Tags, prop)
			if !opts.LifespanDescriptions && (prop == PropertyBirth || prop == PropertyDeath) {
				continue
			}
			rec.Descriptions = append(rec.Descriptions, types.Description{Source: id, Property: prop, Value: v.Value})
		}
	}

	stats.Nodes = 1
	stats.Edges = len(rec.Edges)
	stats.Descriptions = len(rec.Descriptions)
	rec.Stats = stats
	return rec, stats, true
}

// ExtractDocument extracts every entity of a document in key order.
func ExtractDocument(data []byte, opts Options, w io.Writer) ([]Record, Stats, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, Stats{}, err
	}

	var stats Stats
	var records []Record
	for _, key := range doc.Keys() {
		rec, s, ok := ExtractEntity(doc.Entities[key], opts, w)
		stats.Add(s)
		if ok {
			records = append(records, rec)
		}
	}
	return records, stats, nil
}

// Result is the outcome of an extraction run over a directory.
type Result struct {
	Tables types.Tables
	Stats  Stats

	// Tags is the sorted set of properties that had literal values.
	Tags []string
}

// Collector accumulates records across documents, keeping the first node
// for each id. A later duplicate is counted in DuplicateIDs and contributes
// neither rows nor any other counter.
type Collector struct {
	tables types.Tables
	stats  Stats
	seen   map[string]bool
	tags   map[string]bool
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{seen: make(map[string]bool), tags: make(map[string]bool)}
}

// Add merges the records and stats of one document.
func (c *Collector) Add(records []Record, stats Stats) {
	for _, rec := range records {
		if c.seen[rec.Node.ID] {
			stats.sub(rec.Stats)
			stats.DuplicateIDs++
			continue
		}
		c.seen[rec.Node.ID] = true
		c.tables.Nodes = append(c.tables.Nodes, rec.Node)
		c.tables.Edges = append(c.tables.Edges, rec.Edges...)
		c.tables.Descriptions = append(c.tables.Descriptions, rec.Descriptions...)
		for _, tag := range rec.Tags {
			c.tags[tag] = true
		}
	}
	c.stats.Add(stats)
}

// Result returns the accumulated tables, stats and description tags.
func (c *Collector) Result() Result {
	tags := make([]string, 0, len(c.tags))
	for t := range c.tags {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return Result{Tables: c.tables, Stats: c.stats, Tags: tags}
}

// ExtractDir extracts every *.json file in dir, in name order. A file that
// cannot be read or parsed is reported, counted in Stats.FilesFailed and
// skipped.
func ExtractDir(ctx context.Context, dir string, opts Options, w io.Writer) (Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Result{}, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	c := NewCollector()
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		select {
		case <-ctx.Done():
			return c.Result(), ctx.Err()
		default:
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Name(), err)
			c.Add(nil, Stats{Files: 1, FilesFailed: 1})
			continue
		}

		records, stats, err := ExtractDocument(data, opts, w)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Name(), err)
			c.Add(nil, Stats{Files: 1, FilesFailed: 1})
			continue
		}
		stats.Files = 1
		c.Add(records, stats)
	}

	return c.Result(), nil
}

// ExtractAll runs ExtractDir over cfg.InputDir, writes the three tables and
// run.yaml into cfg.OutputDir, and prints the diagnostics.
func ExtractAll(ctx context.Context, cfg types.ExtractConfig, w io.Writer) (Result, error) {
	report := NewReport(cfg)

	res, err := ExtractDir(ctx, cfg.InputDir, Options{LifespanDescriptions: cfg.LifespanDescriptions}, w)
	if err != nil {
		return res, err
	}

	if err := table.WriteAll(cfg, res.Tables); err != nil {
		return res, fmt.Errorf("writing tables: %w", err)
	}

	fmt.Fprintf(w, "processed files in %s\n", cfg.InputDir)
	res.Stats.Report(w)

	report.Finish(res)
	if err := report.Write(filepath.Join(cfg.OutputDir, ReportFile)); err != nil {
		fmt.Fprintf(w, "warning: %s write failed: %v\n", ReportFile, err)
	}
	return res, nil
}
