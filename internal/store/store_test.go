package store

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spiralsim/internal/config"
	"spiralsim/internal/engine"
	"spiralsim/internal/gate"
	"spiralsim/internal/kuramoto"
	"spiralsim/internal/trace"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func testResult(n int) *engine.Result {
	res := &engine.Result{}
	for i := 0; i < n; i++ {
		tm := float64(i) * 0.25
		res.Trace = append(res.Trace, trace.Sample{
			T: tm,
			S: math.Sin(tm),
			C: math.Exp(-0.1 * tm),
			R: 1.618,
		})
	}
	return res
}

func TestNewRunID(t *testing.T) {
	id := NewRunID("step")
	require.True(t, strings.HasPrefix(id, "step-"))
	assert.Len(t, strings.TrimPrefix(id, "step-"), 8)
	assert.NotEqual(t, id, NewRunID("step"))
}

func TestSaveRunCreatesArtifacts(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	cfg := config.Default()
	res := testResult(20)

	runID := NewRunID(cfg.Scenario.Name)
	require.NoError(t, st.SaveRun(ctx, runID, cfg, res))

	dir := st.RunDir(runID)
	for _, name := range []string{"config.json", "trace.csv", "figure.svg"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	rec, err := st.Get(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, runID, rec.ID)
	assert.Equal(t, "recorded", rec.Status)
	assert.Equal(t, cfg.Scenario.Name, rec.Scenario)
	assert.Equal(t, 20, rec.Samples)
	assert.Equal(t, res.Trace.Hash(), rec.TraceHash)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestSaveReportPromotesIndex(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	cfg := config.Default()

	runID := NewRunID(cfg.Scenario.Name)
	require.NoError(t, st.SaveRun(ctx, runID, cfg, testResult(20)))

	rep := gate.Run(gate.Inputs{RunID: runID})
	require.NoError(t, st.SaveReport(ctx, runID, rep))

	rec, err := st.Get(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, rep.OverallStatus, rec.Status)
	assert.Equal(t, rep.OverallScore, rec.Score)

	data, err := os.ReadFile(filepath.Join(st.RunDir(runID), "report.json"))
	require.NoError(t, err)
	var decoded gate.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Layers, 5)
}

func TestSaveComparison(t *testing.T) {
	st := newTestStore(t)
	cfg := config.Default()

	runID := NewRunID(cfg.Scenario.Name)
	require.NoError(t, st.SaveRun(context.Background(), runID, cfg, testResult(20)))

	cmp := &kuramoto.ComparisonResult{CPURatio: 1.5, RegulationGain: 0.3}
	require.NoError(t, st.SaveComparison(runID, cmp))

	data, err := os.ReadFile(filepath.Join(st.RunDir(runID), "comparison.json"))
	require.NoError(t, err)
	var decoded kuramoto.ComparisonResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *cmp, decoded)
}

func TestGetMissingRun(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Get(context.Background(), "nope-00000000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListRuns(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	cfg := config.Default()

	idA := NewRunID("constant")
	idB := NewRunID("constant")
	require.NoError(t, st.SaveRun(ctx, idA, cfg, testResult(10)))
	require.NoError(t, st.SaveRun(ctx, idB, cfg, testResult(10)))

	runs, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	ids := []string{runs[0].ID, runs[1].ID}
	assert.Contains(t, ids, idA)
	assert.Contains(t, ids, idB)
}

func TestLoadTraceRoundTrip(t *testing.T) {
	st := newTestStore(t)
	cfg := config.Default()
	res := testResult(20)

	runID := NewRunID(cfg.Scenario.Name)
	require.NoError(t, st.SaveRun(context.Background(), runID, cfg, res))

	tr, err := st.LoadTrace(runID)
	require.NoError(t, err)
	require.Len(t, tr, 20)
	assert.Equal(t, res.Trace.Hash(), tr.Hash())
}

func TestLoadConfigRoundTrip(t *testing.T) {
	st := newTestStore(t)
	cfg := config.Default()
	cfg.N = 9
	cfg.Seed = 1234

	runID := NewRunID(cfg.Scenario.Name)
	require.NoError(t, st.SaveRun(context.Background(), runID, cfg, testResult(10)))

	loaded, err := st.LoadConfig(runID)
	require.NoError(t, err)
	assert.Equal(t, 9, loaded.N)
	assert.Equal(t, int64(1234), loaded.Seed)
}

func TestGoldenRecordLoadMatch(t *testing.T) {
	st := newTestStore(t)

	g, err := st.LoadGolden()
	require.NoError(t, err)
	assert.Nil(t, g)

	cfg := config.Default()
	recorded, err := st.RecordGolden("golden-12ab34cd", "hash-a", "hash-b", cfg)
	require.NoError(t, err)
	require.NotNil(t, recorded)

	g, err = st.LoadGolden()
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "hash-a", g.TraceHash)
	assert.Equal(t, "hash-b", g.FigureHash)
	assert.Equal(t, "golden-12ab34cd", g.RunID)
	assert.True(t, g.Matches("hash-a"))
	assert.False(t, g.Matches("hash-c"))
	assert.False(t, (*Golden)(nil).Matches("hash-a"))
}

func TestReopenKeepsIndex(t *testing.T) {
	base := t.TempDir()

	st, err := Open(base)
	require.NoError(t, err)

	runID := NewRunID("constant")
	require.NoError(t, st.SaveRun(context.Background(), runID, config.Default(), testResult(10)))
	require.NoError(t, st.Close())

	st, err = Open(base)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.List(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
}
