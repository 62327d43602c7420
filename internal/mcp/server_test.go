package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"seistats/internal/seismic"
)

// writeResultTree builds a mininet result file plus one outputs dir with a
// single client that received one alert.
func writeResultTree(t *testing.T, dir string) {
	t.Helper()

	outDir := filepath.Join(dir, "outputs", "run0")
	require.NoError(t, os.MkdirAll(outDir, 0755))

	client := seismic.ClientOutput{
		HostID: "h1",
		Events: []seismic.Event{{ID: "q1", TimeSent: 100, TimeRcvd: 100.3}},
	}
	data, err := json.Marshal(client)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "h1.json"), data, 0644))

	doc := map[string]any{
		"params": map[string]any{
			"experiment_type": "mininet",
			"heuristic":       "steiner",
			"failure_model":   "uniform/0.25",
		},
		"results": []map[string]any{
			{"run": 0, "outputs_dir": filepath.Join("outputs", "run0")},
		},
	}
	data, err = json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "results.json"), data, 0644))
}

func TestLoadThenQuery(t *testing.T) {
	dir := t.TempDir()
	writeResultTree(t, dir)
	s := NewServer()

	_, loadOut, err := s.handleLoadResults(context.Background(), nil, loadResultsInput{Dirs: []string{dir}})
	require.NoError(t, err)
	require.Equal(t, "mininet", loadOut.ExperimentType)
	require.Equal(t, 1, loadOut.Groups)
	require.Equal(t, 1, loadOut.Clients)

	_, reachOut, err := s.handleGetReachability(context.Background(), nil, statsInput{})
	require.NoError(t, err)
	require.Len(t, reachOut.Groups, 1)
	require.Equal(t, 1, reachOut.Groups[0].Reached)
	require.InDelta(t, 1.0, reachOut.Groups[0].Rate, 1e-9)

	_, latOut, err := s.handleGetLatency(context.Background(), nil, statsInput{})
	require.NoError(t, err)
	require.Len(t, latOut.Groups, 1)
	require.InDelta(t, 0.3, latOut.Groups[0].Mean, 1e-9)

	_, paramsOut, err := s.handleGetParams(context.Background(), nil, statsInput{})
	require.NoError(t, err)
	require.Len(t, paramsOut.Groups, 1)
	require.Equal(t, "steiner", paramsOut.Groups[0].Params["const_alg"])
}

func TestQueryBeforeLoad(t *testing.T) {
	s := NewServer()
	_, _, err := s.handleGetReachability(context.Background(), nil, statsInput{})
	require.ErrorContains(t, err, "no results loaded")
}

func TestLoadEmptyDir(t *testing.T) {
	s := NewServer()
	_, out, err := s.handleLoadResults(context.Background(), nil, loadResultsInput{Dirs: []string{t.TempDir()}})
	require.NoError(t, err)
	require.Zero(t, out.Groups)
	require.Empty(t, out.ExperimentType)

	// An empty load still replaces any previous aggregate.
	_, _, err = s.handleGetParams(context.Background(), nil, statsInput{})
	require.ErrorContains(t, err, "no results loaded")
}

func TestLoadBothModesRejected(t *testing.T) {
	s := NewServer()
	_, _, err := s.handleLoadResults(context.Background(), nil, loadResultsInput{
		Dirs:  []string{"a"},
		Files: []string{"b.json"},
	})
	require.Error(t, err)
}
