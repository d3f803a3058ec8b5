// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wikidata-graph/internal/table"
	"github.com/pdiddy/wikidata-graph/pkg/types"
)

const earthEntity = `{"id":"Q1","labels":{"en":{"value":"Earth"}},"claims":{
  "P569":[{"mainsnak":{"snaktype":"value","datavalue":{"type":"time","value":{"time":"+1000"}}}}],
  "P40":[{"mainsnak":{"snaktype":"value","datavalue":{"type":"wikibase-entityid","value":{"id":"Q2"}}}}]}}`

func TestExtractEntity_Earth(t *testing.T) {
	var buf bytes.Buffer
	rec, stats, ok := ExtractEntity(json.RawMessage(earthEntity), Options{}, &buf)
	require.True(t, ok)

	assert.Equal(t, types.Node{ID: "Q1", Name: "Earth", Birth: "+1000"}, rec.Node)
	assert.Equal(t, []types.Edge{{Source: "Q1", Property: "P40", Target: "Q2"}}, rec.Edges)
	assert.Empty(t, rec.Descriptions, "P569 feeds the birth column only")
	assert.Equal(t, []string{"P569"}, rec.Tags, "P569 is still a literal-valued property")

	assert.Equal(t, Stats{
		Entities:      1,
		NoDescription: 1,
		NoDeath:       1,
		Claims:        2,
		Nodes:         1,
		Edges:         1,
	}, stats)
	assert.Empty(t, buf.String())
}

func TestExtractEntity_LifespanDescriptions(t *testing.T) {
	rec, stats, ok := ExtractEntity(json.RawMessage(earthEntity), Options{LifespanDescriptions: true}, &bytes.Buffer{})
	require.True(t, ok)
	assert.Equal(t, []types.Description{{Source: "Q1", Property: "P569", Value: "+1000"}}, rec.Descriptions)
	assert.Equal(t, 1, stats.Descriptions)
}

func TestExtractEntity_EmptyLabels(t *testing.T) {
	rec, stats, ok := ExtractEntity(json.RawMessage(`{"id":"Q7","labels":{},"claims":{}}`), Options{}, &bytes.Buffer{})
	require.True(t, ok)
	assert.Equal(t, types.Node{ID: "Q7", Name: "Q7"}, rec.Node)
	assert.Equal(t, 1, stats.NoEnglishName)
	assert.Equal(t, 1, stats.NoDescription)
	assert.Equal(t, 1, stats.NoEdge)
}

func TestExtractEntity_MissingID(t *testing.T) {
	raw := `{"labels":{"en":{"value":"Ghost"}},"claims":{"P40":[{"mainsnak":{"snaktype":"value","datavalue":{"type":"wikibase-entityid","value":{"id":"Q2"}}}}]}}`
	rec, stats, ok := ExtractEntity(json.RawMessage(raw), Options{}, &bytes.Buffer{})
	assert.False(t, ok)
	assert.Equal(t, Record{}, rec)
	assert.Equal(t, Stats{Entities: 1, MissingID: 1}, stats)
}

func TestExtractEntity_NotAnObject(t *testing.T) {
	_, stats, ok := ExtractEntity(json.RawMessage(`[]`), Options{}, &bytes.Buffer{})
	assert.False(t, ok)
	assert.Equal(t, 1, stats.MissingID)
}

func TestExtractEntity_SnakTypesSetHasEdge(t *testing.T) {
	raw := `{"id":"Q3","claims":{
	  "P27":[{"mainsnak":{"snaktype":"somevalue"}}],
	  "P106":[{"mainsnak":{"snaktype":"novalue"}}]}}`
	rec, stats, ok := ExtractEntity(json.RawMessage(raw), Options{}, &bytes.Buffer{})
	require.True(t, ok)
	assert.Empty(t, rec.Edges)
	assert.Empty(t, rec.Descriptions)
	assert.Equal(t, 0, stats.NoEdge, "somevalue/novalue claims still count as edges present")
	assert.Equal(t, 2, stats.Claims)
	assert.Equal(t, 0, stats.ClaimFailures)
}

func TestExtractEntity_OnlyValueSnaksEmitRows(t *testing.T) {
	raw := `{"id":"Q1","claims":{
	  "P27":[{"mainsnak":{"snaktype":"bogus","datavalue":{"type":"wikibase-entityid","value":{"id":"Q2"}}}}],
	  "P106":[{"mainsnak":{"datavalue":{"type":"wikibase-entityid","value":{"id":"Q3"}}}}]}}`

	var buf bytes.Buffer
	rec, stats, ok := ExtractEntity(json.RawMessage(raw), Options{}, &buf)
	require.True(t, ok)

	assert.Empty(t, rec.Edges)
	assert.Equal(t, []types.Description{{Source: "Q1", Property: "P106", Value: ""}}, rec.Descriptions,
		"a mainsnak without snaktype is a malformed claim")
	assert.Equal(t, 2, stats.Claims)
	assert.Equal(t, 1, stats.ClaimFailures)
	assert.Contains(t, buf.String(), "warning: Q1 P106: malformed claim (mainsnak has no snaktype)")
}

func TestExtractEntity_MalformedAndUnknownClaims(t *testing.T) {
	raw := `{"id":"Q4","labels":{"de":{"value":"Vier"}},"claims":{
	  "P27":[],
	  "P69":[{"mainsnak":{"snaktype":"value","datavalue":{"type":"wikibase-entityid","value":{"id":"Q49108"}}}}],
	  "P213":[{"mainsnak":{"snaktype":"value","datavalue":{"type":"string","value":"0000 0001"}}}],
	  "P2348":[{"mainsnak":{"snaktype":"value","datavalue":{"type":"quantity","value":{"unit":"1"}}}}]}}`

	var buf bytes.Buffer
	rec, stats, ok := ExtractEntity(json.RawMessage(raw), Options{}, &buf)
	require.True(t, ok)

	assert.Equal(t, "Vier", rec.Node.Name)
	assert.Equal(t, []types.Edge{{Source: "Q4", Property: "P69", Target: "Q49108"}}, rec.Edges)
	assert.Equal(t, []types.Description{
		{Source: "Q4", Property: "P27", Value: ""},
		{Source: "Q4", Property: "P213", Value: "0000 0001"},
		{Source: "Q4", Property: "P2348", Value: ""},
	}, rec.Descriptions)

	assert.Equal(t, 4, stats.Claims)
	assert.Equal(t, 2, stats.ClaimFailures)
	assert.Equal(t, 1, stats.UnknownTypes)
	assert.Equal(t, 1, stats.NoEnglishName)

	out := buf.String()
	assert.Contains(t, out, "warning: Q4 P27: malformed claim (empty claim list)")
	assert.Contains(t, out, `warning: Q4 P213: unrecognized value type "string"`)
	assert.Contains(t, out, "warning: Q4 P2348: malformed claim (missing amount)")
}

func TestExtractDocument_AllEntitiesInKeyOrder(t *testing.T) {
	doc := `{"entities":{
	  "Q9":{"id":"Q9","labels":{"en":{"value":"Nine"}}},
	  "Q10":{"labels":{"en":{"value":"no id"}}},
	  "Q1":` + earthEntity + `}}`

	records, stats, err := ExtractDocument([]byte(doc), Options{}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Q1", records[0].Node.ID)
	assert.Equal(t, "Q9", records[1].Node.ID)
	assert.Equal(t, 3, stats.Entities)
	assert.Equal(t, 1, stats.MissingID)
	assert.Equal(t, 2, stats.Nodes)
}

func TestExtractDocument_NotJSON(t *testing.T) {
	_, _, err := ExtractDocument([]byte(`{`), Options{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestCollector_DuplicateIDs(t *testing.T) {
	first, firstStats, ok := ExtractEntity(json.RawMessage(`{"id":"Q1","labels":{"en":{"value":"first"}},"claims":{
	  "P2348":[{"mainsnak":{"snaktype":"value","datavalue":{"type":"monolingualtext","value":{"text":"x"}}}}]}}`), Options{}, &bytes.Buffer{})
	require.True(t, ok)
	second, secondStats, ok := ExtractEntity(json.RawMessage(`{"id":"Q1","labels":{"de":{"value":"zweite"}},"claims":{
	  "P40":[{"mainsnak":{"snaktype":"value","datavalue":{"type":"wikibase-entityid","value":{"id":"Q2"}}}}],
	  "P569":[{"mainsnak":{"snaktype":"value","datavalue":{"type":"time","value":{"time":"+1000"}}}}]}}`), Options{}, &bytes.Buffer{})
	require.True(t, ok)

	c := NewCollector()
	c.Add([]Record{first}, firstStats)
	c.Add([]Record{second}, secondStats)

	res := c.Result()
	assert.Equal(t, []types.Node{first.Node}, res.Tables.Nodes)
	assert.Empty(t, res.Tables.Edges)
	assert.Equal(t, []string{"P2348"}, res.Tags, "a dropped duplicate adds no tags")

	want := firstStats
	want.DuplicateIDs = 1
	assert.Equal(t, want, res.Stats, "a dropped duplicate adds no counters besides DuplicateIDs")
	assert.Equal(t, 0, res.Stats.NoEnglishName)
}

func writeInput(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

var sampleInput = map[string]string{
	"Q1.json": `{"entities":{"Q1":` + earthEntity + `}}`,
	"Q2.json": `{"entities":{"Q2":{"id":"Q2","labels":{"en":{"value":"Moon, the"}},
	  "descriptions":{"en":{"value":"natural satellite"}},
	  "claims":{"P2348":[{"mainsnak":{"snaktype":"value","datavalue":{"type":"monolingualtext","value":{"text":"Luna","language":"la"}}}}],
	            "P570":[{"mainsnak":{"snaktype":"value","datavalue":{"type":"time","value":{"time":"+2000"}}}}]}}}}`,
	"Q3.json":   `{"entities":{"Q3":{"id":"Q3","labels":[],"claims":[]}}}`,
	"bad.json":  `{"entities":`,
	"notes.txt": `ignored`,
}

func TestExtractAll(t *testing.T) {
	tmp := t.TempDir()
	cfg := types.DefaultPipelineConfig().Extract
	cfg.InputDir = filepath.Join(tmp, "in")
	cfg.OutputDir = filepath.Join(tmp, "out")
	writeInput(t, cfg.InputDir, sampleInput)

	var buf bytes.Buffer
	res, err := ExtractAll(context.Background(), cfg, &buf)
	require.NoError(t, err)

	nodes, err := table.ReadCSV(filepath.Join(cfg.OutputDir, cfg.NodeFile))
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		table.NodeHeader,
		{"Q1", "Earth", "", "+1000", ""},
		{"Q2", "Moon, the", "natural satellite", "", "+2000"},
		{"Q3", "Q3", "", "", ""},
	}, nodes)

	edges, err := table.ReadCSV(filepath.Join(cfg.OutputDir, cfg.EdgeFile))
	require.NoError(t, err)
	assert.Equal(t, [][]string{table.EdgeHeader, {"Q1", "P40", "Q2"}}, edges)

	descs, err := table.ReadCSV(filepath.Join(cfg.OutputDir, cfg.DescFile))
	require.NoError(t, err)
	assert.Equal(t, [][]string{table.EdgeHeader, {"Q2", "P2348", "Luna"}}, descs)

	assert.Equal(t, 4, res.Stats.Files)
	assert.Equal(t, 1, res.Stats.FilesFailed)
	assert.Equal(t, 3, res.Stats.Entities)
	assert.Equal(t, 1, res.Stats.NoEdge)
	assert.Equal(t, []string{"P2348", "P569", "P570"}, res.Tags)

	out := buf.String()
	assert.Contains(t, out, "failed  bad.json")
	assert.Contains(t, out, "no edge = 1/33.33%")
	assert.Contains(t, out, "no edge end = 0/0.00% of 4 claims")

	report, err := ReadReport(filepath.Join(cfg.OutputDir, ReportFile))
	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, res.Stats, report.Stats)
	assert.Equal(t, []string{"P2348", "P569", "P570"}, report.DescriptionTags)
	assert.False(t, report.Finished.Before(report.Started))
}

func TestExtractAll_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	cfg := types.DefaultPipelineConfig().Extract
	cfg.InputDir = filepath.Join(tmp, "in")
	writeInput(t, cfg.InputDir, sampleInput)

	run := func(out string) map[string][]byte {
		c := cfg
		c.OutputDir = filepath.Join(tmp, out)
		_, err := ExtractAll(context.Background(), c, &bytes.Buffer{})
		require.NoError(t, err)

		files := make(map[string][]byte)
		for _, name := range []string{c.NodeFile, c.EdgeFile, c.DescFile} {
			data, err := os.ReadFile(filepath.Join(c.OutputDir, name))
			require.NoError(t, err)
			files[name] = data
		}
		return files
	}

	assert.Equal(t, run("first"), run("second"))
}

func TestExtractAll_MissingInputDir(t *testing.T) {
	cfg := types.DefaultPipelineConfig().Extract
	cfg.InputDir = filepath.Join(t.TempDir(), "missing")
	cfg.OutputDir = t.TempDir()

	_, err := ExtractAll(context.Background(), cfg, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestExtractDir_CancelledContext(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "in")
	writeInput(t, dir, sampleInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := ExtractDir(ctx, dir, Options{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Tables.Nodes)
}

func TestStatsReport_ZeroTotals(t *testing.T) {
	var buf bytes.Buffer
	Stats{}.Report(&buf)
	assert.Contains(t, buf.String(), "no id = 0/0.00%")
	assert.Equal(t, 50.0, Percent(1, 2))
	assert.Equal(t, 0.0, Percent(1, 0))
}
