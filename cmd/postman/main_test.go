package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/lintang-b-s/Postmanx/pkg/util"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const triangleWithTail = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "Ponce de Leon Ave"},
     "geometry": {"type": "LineString", "coordinates": [[-84.370, 33.770], [-84.360, 33.770], [-84.365, 33.775], [-84.370, 33.770]]}},
    {"type": "Feature", "properties": {"name": "Highland Ave"},
     "geometry": {"type": "LineString", "coordinates": [[-84.360, 33.770], [-84.360, 33.765]]}}
  ]
}`

func testConfig(t *testing.T) util.Config {
	dir := t.TempDir()
	in := filepath.Join(dir, "roads.geojson")
	require.NoError(t, os.WriteFile(in, []byte(triangleWithTail), 0o644))
	return util.Config{
		Input:         in,
		OutputGeoJSON: filepath.Join(dir, "route.geojson"),
		OutputGraph:   filepath.Join(dir, "eulerized.graph"),
		OutputReport:  filepath.Join(dir, "report.json"),
		Mode:          "greedy-weighted",
		Unit:          "kilometers",
		BaseFallback:  true,
		NameProperty:  "name",
		TypeProperty:  "highway",
		Workers:       2,
	}
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, run(context.Background(), zap.NewNop(), cfg))

	var rep struct {
		Report struct {
			EdgeCount           int     `json:"edge_count"`
			DuplicatedEdgeCount int     `json:"duplicated_edge_count"`
			TotalDistance       float64 `json:"total_distance"`
			OldTotalDistance    float64 `json:"old_total_distance"`
			Unit                string  `json:"unit"`
		} `json:"report"`
		Steps []json.RawMessage `json:"steps"`
	}
	js, err := os.ReadFile(cfg.OutputReport)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(js, &rep))
	// the tail is the only odd pair, it is walked twice
	assert.Equal(t, 6, rep.Report.EdgeCount)
	assert.Equal(t, 1, rep.Report.DuplicatedEdgeCount)
	assert.Equal(t, "kilometers", rep.Report.Unit)
	assert.Greater(t, rep.Report.TotalDistance, rep.Report.OldTotalDistance)
	assert.Len(t, rep.Steps, 6)

	js, err = os.ReadFile(cfg.OutputGeoJSON)
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(js)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 6)

	g, err := da.ReadGraphFile(cfg.OutputGraph)
	require.NoError(t, err)
	assert.Equal(t, 6, g.NumberOfEdges())
	assert.Empty(t, g.OddDegreeVertices())
}

func TestRunErrors(t *testing.T) {
	cfg := testConfig(t)
	cfg.Mode = "christofides"
	err := run(context.Background(), zap.NewNop(), cfg)
	require.Error(t, err)
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))

	cfg = testConfig(t)
	cfg.Input = filepath.Join(t.TempDir(), "roads.shp")
	err = run(context.Background(), zap.NewNop(), cfg)
	require.Error(t, err)
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))

	cfg = testConfig(t)
	cfg.Unit = "furlongs"
	require.Error(t, run(context.Background(), zap.NewNop(), cfg))
}

func TestRunSkipsEmptyOutputs(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputGraph = ""
	cfg.OutputReport = ""
	require.NoError(t, run(context.Background(), zap.NewNop(), cfg))

	_, err := os.Stat(cfg.OutputGeoJSON)
	assert.NoError(t, err)
	entries, err := os.ReadDir(filepath.Dir(cfg.OutputGeoJSON))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
