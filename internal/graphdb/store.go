// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graphdb loads the extracted node, edge and description tables
// into a SQLite database.
package graphdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/wikidata-graph/pkg/types"
)

// Store manages the graph SQLite database.
type Store struct {
	db *sql.DB
}

// Counts holds the number of rows in each table.
type Counts struct {
	Nodes        int
	Edges        int
	Descriptions int
}

// Open opens or creates the database at path and creates the schema if it
// does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			birth TEXT NOT NULL,
			death TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS edges (
			start_node TEXT NOT NULL REFERENCES nodes(id),
			edge_type TEXT NOT NULL,
			end_node TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS descriptions (
			start_node TEXT NOT NULL REFERENCES nodes(id),
			edge_type TEXT NOT NULL,
			end_node TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_start ON edges(start_node)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_end ON edges(end_node)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_type ON edges(edge_type)`,
		`CREATE INDEX IF NOT EXISTS idx_descriptions_start ON descriptions(start_node)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Load replaces the contents of all three tables with t in one transaction.
// Edge targets are not required to be nodes; descriptions and edge sources are.
func (s *Store) Load(ctx context.Context, t types.Tables) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"edges", "descriptions", "nodes"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	nodeStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO nodes (id, name, description, birth, death) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing node insert: %w", err)
	}
	defer nodeStmt.Close()
	for _, n := range t.Nodes {
		if _, err := nodeStmt.ExecContext(ctx, n.ID, n.Name, n.Description, n.Birth, n.Death); err != nil {
			return fmt.Errorf("inserting node %s: %w", n.ID, err)
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO edges (start_node, edge_type, end_node) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing edge insert: %w", err)
	}
	defer edgeStmt.Close()
	for _, e := range t.Edges {
		if _, err := edgeStmt.ExecContext(ctx, e.Source, e.Property, e.Target); err != nil {
			return fmt.Errorf("inserting edge %s %s: %w", e.Source, e.Property, err)
		}
	}

	descStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO descriptions (start_node, edge_type, end_node) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing description insert: %w", err)
	}
	defer descStmt.Close()
	for _, d := range t.Descriptions {
		if _, err := descStmt.ExecContext(ctx, d.Source, d.Property, d.Value); err != nil {
			return fmt.Errorf("inserting description %s %s: %w", d.Source, d.Property, err)
		}
	}

	return tx.Commit()
}

// Counts returns the number of rows in each table.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	for _, q := range []struct {
		table string
		dest  *int
	}{
		{"nodes", &c.Nodes},
		{"edges", &c.Edges},
		{"descriptions", &c.Descriptions},
	} {
		if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM `+q.table).Scan(q.dest); err != nil {
			return c, fmt.Errorf("counting %s: %w", q.table, err)
		}
	}
	return c, nil
}
