// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Node is one row of node_list.csv.
type Node struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`

	// Birth and Death hold the raw Wikidata time strings (e.g.
	// "+1879-03-14T00:00:00Z"), or "" when unknown.
	Birth string `json:"birth" yaml:"birth"`
	Death string `json:"death" yaml:"death"`
}

// Edge is one row of edge_list.csv: an entity-reference claim.
type Edge struct {
	Source   string `json:"start_node" yaml:"start_node"`
	Property string `json:"edge_type" yaml:"edge_type"`
	Target   string `json:"end_node" yaml:"end_node"`
}

// Description is one row of desc_list.csv: a literal-valued claim. The
// literal is stored in the end_node column.
type Description struct {
	Source   string `json:"start_node" yaml:"start_node"`
	Property string `json:"edge_type" yaml:"edge_type"`
	Value    string `json:"end_node" yaml:"end_node"`
}

// Tables holds the three flat outputs of an extraction run.
type Tables struct {
	Nodes        []Node
	Edges        []Edge
	Descriptions []Description
}
