// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"strings"
	"time"
)

// DefaultURLTemplate is the Special:EntityData endpoint. {id} is replaced
// with the entity identifier.
const DefaultURLTemplate = "https://www.wikidata.org/wiki/Special:EntityData/{id}.json"

// DefaultProperties is the allow-list used by the filter stage when none is
// configured: lifespan, education, citizenship, residence, occupation,
// field of work, movement, students and influences.
var DefaultProperties = []string{
	"P569", "P570", "P2348", "P69", "P27", "P551", "P106", "P2959",
	"P101", "P135", "P185", "P802", "P1066", "P737", "P800",
}

// Config validation errors.
var (
	ErrInputFileEmpty     = errors.New("input file must not be empty")
	ErrInputDirEmpty      = errors.New("input directory must not be empty")
	ErrOutputDirEmpty     = errors.New("output directory must not be empty")
	ErrURLTemplate        = errors.New("url template must contain {id}")
	ErrPropertiesEmpty    = errors.New("property allow-list must not be empty")
	ErrIntervalNegative   = errors.New("request interval must not be negative")
	ErrTableFileNameEmpty = errors.New("table file names must not be empty")
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "wikidata-graph/0.1 (mailto:someone@example.org)").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxBytes caps the size of a single response body. Zero means no cap.
	MaxBytes int64 `json:"max_bytes" yaml:"max_bytes"`
}

// FetchConfig holds settings for the fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// InputFile is the tab-separated file whose first column holds entity URLs.
	InputFile string `json:"input_file" yaml:"input_file"`

	// OutputDir receives one <id>.json file per entity.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// URLTemplate is the retrieval URL with an {id} placeholder.
	URLTemplate string `json:"url_template" yaml:"url_template"`

	// RequestInterval is the minimum spacing between downloads (default 0, unpaced).
	RequestInterval time.Duration `json:"request_interval" yaml:"request_interval"`
}

// Validate checks that the FetchConfig is usable.
func (c FetchConfig) Validate() error {
	if c.InputFile == "" {
		return ErrInputFileEmpty
	}
	if c.OutputDir == "" {
		return ErrOutputDirEmpty
	}
	if !strings.Contains(c.URLTemplate, "{id}") {
		return ErrURLTemplate
	}
	if c.RequestInterval < 0 {
		return ErrIntervalNegative
	}
	return nil
}

// FilterConfig holds settings for the property filter stage.
type FilterConfig struct {
	// InputDir holds the raw entity files written by fetch.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives the filtered files under the same names.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Properties is the allow-list of property identifiers to keep.
	Properties []string `json:"properties" yaml:"properties"`
}

// Validate checks that the FilterConfig is usable.
func (c FilterConfig) Validate() error {
	if c.InputDir == "" {
		return ErrInputDirEmpty
	}
	if c.OutputDir == "" {
		return ErrOutputDirEmpty
	}
	if len(c.Properties) == 0 {
		return ErrPropertiesEmpty
	}
	return nil
}

// ExtractConfig holds settings for the extraction stage.
type ExtractConfig struct {
	// InputDir holds the filtered entity files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives the three tables and run.yaml.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	NodeFile string `json:"node_file" yaml:"node_file"`
	EdgeFile string `json:"edge_file" yaml:"edge_file"`
	DescFile string `json:"desc_file" yaml:"desc_file"`

	// DatabasePath, when set, also loads the tables into a SQLite database.
	DatabasePath string `json:"database_path,omitempty" yaml:"database_path,omitempty"`

	// LifespanDescriptions re-emits P569/P570 claims as description rows in
	// addition to the birth and death node columns.
	LifespanDescriptions bool `json:"lifespan_descriptions" yaml:"lifespan_descriptions"`
}

// Validate checks that the ExtractConfig is usable.
func (c ExtractConfig) Validate() error {
	if c.InputDir == "" {
		return ErrInputDirEmpty
	}
	if c.OutputDir == "" {
		return ErrOutputDirEmpty
	}
	if c.NodeFile == "" || c.EdgeFile == "" || c.DescFile == "" {
		return ErrTableFileNameEmpty
	}
	return nil
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Filter  FilterConfig  `json:"filter" yaml:"filter"`
	Extract ExtractConfig `json:"extract" yaml:"extract"`
}

// DefaultPipelineConfig returns the stock layout:
// query.tsv -> json_files/ -> shorter_json_files/ -> the working directory.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Fetch: FetchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   60 * time.Second,
				UserAgent: "wikidata-graph/0.1",
			},
			InputFile:   "query.tsv",
			OutputDir:   "json_files",
			URLTemplate: DefaultURLTemplate,
		},
		Filter: FilterConfig{
			InputDir:   "json_files",
			OutputDir:  "shorter_json_files",
			Properties: append([]string(nil), DefaultProperties...),
		},
		Extract: ExtractConfig{
			InputDir:  "shorter_json_files",
			OutputDir: ".",
			NodeFile:  "node_list.csv",
			EdgeFile:  "edge_list.csv",
			DescFile:  "desc_list.csv",
		},
	}
}
