package seismic

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeClient(t *testing.T, dir, name string, out ClientOutput) {
	t.Helper()
	data, err := json.Marshal(out)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
}

func outputsDir(t *testing.T, clients ...ClientOutput) string {
	t.Helper()
	dir := t.TempDir()
	for _, c := range clients {
		writeClient(t, dir, c.HostID+".json", c)
	}
	return dir
}

func event(id string, sent, rcvd float64) Event {
	return Event{ID: id, TimeSent: sent, TimeRcvd: rcvd}
}

func TestNewAndMerge(t *testing.T) {
	dir1 := outputsDir(t,
		ClientOutput{HostID: "h1", Events: []Event{event("q1", 10, 10.5)}},
		ClientOutput{HostID: "h2", Events: nil},
	)
	dir2 := outputsDir(t,
		ClientOutput{HostID: "h3", Events: []Event{event("q1", 10, 11)}},
	)

	params := map[string]any{"const_alg": "steiner", "fprob": 0.1}
	s, err := New([]string{dir1}, params)
	require.NoError(t, err)
	assert.Len(t, s.Rows(), 2)
	assert.Equal(t, []string{dir1}, s.Dirs())

	require.NoError(t, s.Merge([]string{dir2}, params))
	assert.Len(t, s.Rows(), 3)
	assert.Equal(t, []string{dir1, dir2}, s.Dirs())
	assert.Len(t, s.Groups(), 1)
}

func TestMerge_MissingDirIsError(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "gone")}, map[string]any{"a": 1})
	assert.Error(t, err)
}

func TestMerge_SkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.json"), []byte("not json"), 0644))
	writeClient(t, dir, "h1.json", ClientOutput{HostID: "h1"})

	s, err := New([]string{dir}, map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Len(t, s.Rows(), 1)
}

func TestGroupKey_Stable(t *testing.T) {
	a := GroupKey(map[string]any{"fprob": 0.1, "const_alg": "steiner"})
	b := GroupKey(map[string]any{"const_alg": "steiner", "fprob": 0.1})
	assert.Equal(t, a, b)
	assert.Equal(t, "const_alg=steiner,fprob=0.1", a)
}

func TestReachabilities(t *testing.T) {
	dir := outputsDir(t,
		ClientOutput{HostID: "h1", Events: []Event{event("q1", 10, 10.5)}},
		ClientOutput{HostID: "h2", Events: []Event{event("q1", 10, 10.8)}},
		ClientOutput{HostID: "h3", Events: nil},
		ClientOutput{HostID: "h4", Events: nil},
	)
	s, err := New([]string{dir}, map[string]any{"const_alg": "steiner"})
	require.NoError(t, err)

	views := s.Reachabilities()
	require.Len(t, views, 1)
	assert.Equal(t, 4, views[0].Hosts)
	assert.Equal(t, 2, views[0].Reached)
	assert.InDelta(t, 0.5, views[0].Rate, 1e-12)
	assert.Equal(t, "steiner", views[0].Params["const_alg"])
}

func TestLatencies(t *testing.T) {
	dir := outputsDir(t,
		ClientOutput{HostID: "h1", Events: []Event{
			event("q1", 10, 10.2),
			event("q2", 20, 20.4),
		}},
		ClientOutput{HostID: "h2", Events: []Event{
			event("q1", 10, 10.6),
		}},
	)
	s, err := New([]string{dir}, map[string]any{"const_alg": "steiner"})
	require.NoError(t, err)

	views, err := s.Latencies()
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, 3, v.Count)
	assert.InDelta(t, 0.4, v.Mean, 1e-9)
	assert.InDelta(t, 0.4, v.Median, 1e-9)
	assert.InDelta(t, 0.2, v.Min, 1e-9)
	assert.InDelta(t, 0.6, v.Max, 1e-9)
	assert.Greater(t, v.Stdev, 0.0)
}

func TestLatencies_TwoGroups(t *testing.T) {
	dirA := outputsDir(t, ClientOutput{HostID: "h1", Events: []Event{event("q1", 0, 1)}})
	dirB := outputsDir(t, ClientOutput{HostID: "h2", Events: []Event{event("q1", 0, 2)}})

	s, err := New([]string{dirA}, map[string]any{"const_alg": "steiner"})
	require.NoError(t, err)
	require.NoError(t, s.Merge([]string{dirB}, map[string]any{"const_alg": "red-blue"}))

	views, err := s.Latencies()
	require.NoError(t, err)
	require.Len(t, views, 2)
	// Ordered by group key: red-blue sorts before steiner.
	assert.Equal(t, "const_alg=red-blue", views[0].Group)
	assert.InDelta(t, 2.0, views[0].Mean, 1e-9)
	assert.Equal(t, "const_alg=steiner", views[1].Group)
	assert.InDelta(t, 1.0, views[1].Mean, 1e-9)
}
