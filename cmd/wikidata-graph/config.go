// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/wikidata-graph/internal/secrets"
	"github.com/pdiddy/wikidata-graph/pkg/types"
)

// Config keys. Environment variables use the WIKIDATA_GRAPH_ prefix with
// dots replaced by underscores, e.g. WIKIDATA_GRAPH_FETCH_INPUT_FILE.
// List values from the environment are comma- or space-separated.
const (
	keyFetchInputFile   = "fetch.input_file"
	keyFetchOutputDir   = "fetch.output_dir"
	keyFetchURLTemplate = "fetch.url_template"
	keyFetchInterval    = "fetch.request_interval"
	keyFetchTimeout     = "fetch.timeout"
	keyFetchUserAgent   = "fetch.user_agent"
	keyFetchMaxBytes    = "fetch.max_bytes"

	keyFilterInputDir   = "filter.input_dir"
	keyFilterOutputDir  = "filter.output_dir"
	keyFilterProperties = "filter.properties"

	keyExtractInputDir  = "extract.input_dir"
	keyExtractOutputDir = "extract.output_dir"
	keyExtractNodeFile  = "extract.node_file"
	keyExtractEdgeFile  = "extract.edge_file"
	keyExtractDescFile  = "extract.desc_file"
	keyExtractDatabase  = "extract.database_path"
	keyExtractLifespan  = "extract.lifespan_descriptions"
)

func setDefaults(v *viper.Viper) {
	d := types.DefaultPipelineConfig()

	v.SetDefault(keyFetchInputFile, d.Fetch.InputFile)
	v.SetDefault(keyFetchOutputDir, d.Fetch.OutputDir)
	v.SetDefault(keyFetchURLTemplate, d.Fetch.URLTemplate)
	v.SetDefault(keyFetchInterval, d.Fetch.RequestInterval)
	v.SetDefault(keyFetchTimeout, d.Fetch.Timeout)
	v.SetDefault(keyFetchUserAgent, d.Fetch.UserAgent)
	v.SetDefault(keyFetchMaxBytes, d.Fetch.MaxBytes)

	v.SetDefault(keyFilterInputDir, d.Filter.InputDir)
	v.SetDefault(keyFilterOutputDir, d.Filter.OutputDir)
	v.SetDefault(keyFilterProperties, d.Filter.Properties)

	v.SetDefault(keyExtractInputDir, d.Extract.InputDir)
	v.SetDefault(keyExtractOutputDir, d.Extract.OutputDir)
	v.SetDefault(keyExtractNodeFile, d.Extract.NodeFile)
	v.SetDefault(keyExtractEdgeFile, d.Extract.EdgeFile)
	v.SetDefault(keyExtractDescFile, d.Extract.DescFile)
	v.SetDefault(keyExtractDatabase, d.Extract.DatabasePath)
	v.SetDefault(keyExtractLifespan, d.Extract.LifespanDescriptions)
}

// bindFlags binds each named flag of fs to its config key. Only flags the
// user sets override the config file and environment.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for flag, key := range keys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// pipelineConfig resolves the stage configurations from v. The User-Agent
// picks up the contact address from s.
func pipelineConfig(v *viper.Viper, s map[string]string) types.PipelineConfig {
	return types.PipelineConfig{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration(keyFetchTimeout),
				UserAgent: secrets.UserAgent(v.GetString(keyFetchUserAgent), s),
				MaxBytes:  v.GetInt64(keyFetchMaxBytes),
			},
			InputFile:       v.GetString(keyFetchInputFile),
			OutputDir:       v.GetString(keyFetchOutputDir),
			URLTemplate:     v.GetString(keyFetchURLTemplate),
			RequestInterval: v.GetDuration(keyFetchInterval),
		},
		Filter: types.FilterConfig{
			InputDir:   v.GetString(keyFilterInputDir),
			OutputDir:  v.GetString(keyFilterOutputDir),
			Properties: splitList(v.GetStringSlice(keyFilterProperties)),
		},
		Extract: types.ExtractConfig{
			InputDir:             v.GetString(keyExtractInputDir),
			OutputDir:            v.GetString(keyExtractOutputDir),
			NodeFile:             v.GetString(keyExtractNodeFile),
			EdgeFile:             v.GetString(keyExtractEdgeFile),
			DescFile:             v.GetString(keyExtractDescFile),
			DatabasePath:         v.GetString(keyExtractDatabase),
			LifespanDescriptions: v.GetBool(keyExtractLifespan),
		},
	}
}

// splitList splits each element on commas and drops blanks, so a list given
// as "P27,P106" in the environment and one given as a YAML sequence agree.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
