// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"io"
)

// Stats counts what an extraction pass saw and where it had to fall back.
// Entity-level counters are relative to Entities; ClaimFailures is
// relative to Claims. Duplicate entities appear only in DuplicateIDs.
type Stats struct {
	Files       int `json:"files" yaml:"files"`
	FilesFailed int `json:"files_failed" yaml:"files_failed"`

	Entities      int `json:"entities" yaml:"entities"`
	MissingID     int `json:"missing_id" yaml:"missing_id"`
	DuplicateIDs  int `json:"duplicate_ids" yaml:"duplicate_ids"`
	NoEnglishName int `json:"no_english_name" yaml:"no_english_name"`
	NoDescription int `json:"no_description" yaml:"no_description"`
	NoBirth       int `json:"no_birth" yaml:"no_birth"`
	NoDeath       int `json:"no_death" yaml:"no_death"`
	NoEdge        int `json:"no_edge" yaml:"no_edge"`

	Claims        int `json:"claims" yaml:"claims"`
	ClaimFailures int `json:"claim_failures" yaml:"claim_failures"`
	UnknownTypes  int `json:"unknown_types" yaml:"unknown_types"`

	Nodes        int `json:"nodes" yaml:"nodes"`
	Edges        int `json:"edges" yaml:"edges"`
	Descriptions int `json:"descriptions" yaml:"descriptions"`
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Files += o.Files
	s.FilesFailed += o.FilesFailed
	s.Entities += o.Entities
	s.MissingID += o.MissingID
	s.DuplicateIDs += o.DuplicateIDs
	s.NoEnglishName += o.NoEnglishName
	s.NoDescription += o.NoDescription
	s.NoBirth += o.NoBirth
	s.NoDeath += o.NoDeath
	s.NoEdge += o.NoEdge
	s.Claims += o.Claims
	s.ClaimFailures += o.ClaimFailures
	s.UnknownTypes += o.UnknownTypes
	s.Nodes += o.Nodes
	s.Edges += o.Edges
	s.Descriptions += o.Descriptions
}

// sub removes o from s.
func (s *Stats) sub(o Stats) {
	s.Add(Stats{
		Files: -o.Files, FilesFailed: -o.FilesFailed,
		Entities: -o.Entities, MissingID: -o.MissingID, DuplicateIDs: -o.DuplicateIDs,
		NoEnglishName: -o.NoEnglishName, NoDescription: -o.NoDescription,
		NoBirth: -o.NoBirth, NoDeath: -o.NoDeath, NoEdge: -o.NoEdge,
		Claims: -o.Claims, ClaimFailures: -o.ClaimFailures, UnknownTypes: -o.UnknownTypes,
		Nodes: -o.Nodes, Edges: -o.Edges, Descriptions: -o.Descriptions,
	})
}

// Report prints the end-of-run diagnostics.
func (s Stats) Report(w io.Writer) {
	fmt.Fprintf(w, "\nfiles: %d (failed: %d), entities: %d, nodes: %d, edges: %d, descriptions: %d\n",
		s.Files, s.FilesFailed, s.Entities, s.Nodes, s.Edges, s.Descriptions)
	fmt.Fprintf(w, "no id = %s, no eng name = %s, no desc = %s\n",
		ratio(s.MissingID, s.Entities), ratio(s.NoEnglishName, s.Entities), ratio(s.NoDescription, s.Entities))
	fmt.Fprintf(w, "no birth = %s, no death = %s\n",
		ratio(s.NoBirth, s.Entities), ratio(s.NoDeath, s.Entities))
	fmt.Fprintf(w, "no edge = %s, no edge end = %s of %d claims\n",
		ratio(s.NoEdge, s.Entities), ratio(s.ClaimFailures, s.Claims), s.Claims)
	if s.DuplicateIDs > 0 {
		fmt.Fprintf(w, "duplicate ids = %d (dropped, not counted above)\n", s.DuplicateIDs)
	}
}

// Percent returns n as a percentage of total, or 0 when total is 0.
func Percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

func ratio(n, total int) string {
	return fmt.Sprintf("%d/%.2f%%", n, Percent(n, total))
}
