// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/wikidata-graph/pkg/types"
)

// ReportFile is written next to the tables after each extraction run.
const ReportFile = "run.yaml"

// Report records one extraction run.
type Report struct {
	RunID    string    `yaml:"run_id"`
	Started  time.Time `yaml:"started"`
	Finished time.Time `yaml:"finished"`

	InputDir  string   `yaml:"input_dir"`
	OutputDir string   `yaml:"output_dir"`
	Tables    []string `yaml:"tables"`

	LifespanDescriptions bool `yaml:"lifespan_descriptions"`

	Stats           Stats    `yaml:"stats"`
	DescriptionTags []string `yaml:"description_tags"`
}

// NewReport starts a report for a run configured by cfg.
func NewReport(cfg types.ExtractConfig) *Report {
	return &Report{
		RunID:                uuid.NewString(),
		Started:              time.Now().UTC(),
		InputDir:             cfg.InputDir,
		OutputDir:            cfg.OutputDir,
		Tables:               []string{cfg.NodeFile, cfg.EdgeFile, cfg.DescFile},
		LifespanDescriptions: cfg.LifespanDescriptions,
	}
}

// Finish stamps the report with the result of the run.
func (r *Report) Finish(res Result) {
	r.Finished = time.Now().UTC()
	r.Stats = res.Stats
	r.DescriptionTags = res.Tags
}

// Write stores the report as YAML at path.
func (r *Report) Write(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReport loads a report written by Write.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &r, nil
}
