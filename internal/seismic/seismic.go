// Package seismic accumulates parsed client outputs from seismic-alert
// experiment runs into one queryable collection.
//
// Each run's outputs directory holds one JSON file per emulated client with
// the host id and every alert event the client observed. All files from all
// runs are merged into a single Stats instance keyed by parameter group, so
// reachability and latency can be compared across parameter settings.
package seismic

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"seistats/internal/logging"
)

// parseWorkers caps concurrent outputs-dir parsing. Rows are appended only
// after the group finishes, so merge order stays deterministic.
const parseWorkers = 8

// Event is one seismic alert receipt (or emission) recorded by a client.
// Times are unix seconds with fractional precision.
type Event struct {
	ID       string  `json:"id"`
	TimeSent float64 `json:"time_sent"`
	TimeRcvd float64 `json:"time_rcvd"`
}

// Latency returns the propagation delay for the event in seconds.
func (e Event) Latency() float64 {
	return e.TimeRcvd - e.TimeSent
}

// ClientOutput is the decoded content of one client's output file.
type ClientOutput struct {
	HostID string  `json:"host_id"`
	Role   string  `json:"role,omitempty"`
	Events []Event `json:"events"`
}

// Row is one client's parsed record, tagged with the parameter group of the
// result file it came from.
type Row struct {
	Group  string
	HostID string
	Events []Event
}

// Stats is the single shared aggregate for one invocation. Build it with
// New on the first extraction and grow it with Merge afterwards; it is never
// recreated within a run.
type Stats struct {
	rows   []Row
	groups map[string]map[string]any // group key -> normalized params
	dirs   []string                  // every outputs dir parsed, in merge order
}

// New constructs the aggregate from the first file's resolved output
// directories and normalized parameters.
func New(dirs []string, params map[string]any) (*Stats, error) {
	s := &Stats{groups: make(map[string]map[string]any)}
	if err := s.Merge(dirs, params); err != nil {
		return nil, err
	}
	return s, nil
}

// Merge parses another file's output directories under its normalized
// parameters and appends the rows to the existing aggregate.
func (s *Stats) Merge(dirs []string, params map[string]any) error {
	log := logging.New("seismic")

	group := GroupKey(params)
	if _, ok := s.groups[group]; !ok {
		s.groups[group] = params
	}

	// Directories parse in parallel; perDir keeps each directory's rows at
	// its own index so the appended order matches the input order.
	perDir := make([][]Row, len(dirs))
	var g errgroup.Group
	g.SetLimit(parseWorkers)
	for i, dir := range dirs {
		g.Go(func() error {
			rows, err := parseOutputsDir(dir, group)
			if err != nil {
				return err
			}
			perDir[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, rows := range perDir {
		log.Debug("merged outputs dir", "dir", dirs[i], "clients", len(rows))
		s.rows = append(s.rows, rows...)
	}
	s.dirs = append(s.dirs, dirs...)
	return nil
}

// parseOutputsDir decodes every client output file in dir. Files that are
// not JSON client outputs are skipped with a diagnostic; a missing directory
// is an error since the result file explicitly referenced it.
func parseOutputsDir(dir, group string) ([]Row, error) {
	log := logging.New("seismic")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list outputs dir: %w", err)
	}

	var rows []Row
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read client output: %w", err)
		}
		var out ClientOutput
		if err := json.Unmarshal(data, &out); err != nil || out.HostID == "" {
			log.Debug("skipping non-client-output file", "path", path)
			continue
		}
		rows = append(rows, Row{Group: group, HostID: out.HostID, Events: out.Events})
	}
	return rows, nil
}

// GroupKey renders a normalized parameter mapping as a canonical string,
// stable across map iteration order.
func GroupKey(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, params[k]))
	}
	return strings.Join(parts, ",")
}

// Rows returns every parsed client row in merge order.
func (s *Stats) Rows() []Row {
	return s.rows
}

// Dirs returns every outputs directory parsed so far, in merge order.
func (s *Stats) Dirs() []string {
	return s.dirs
}

// Groups returns the group keys seen so far, sorted.
func (s *Stats) Groups() []string {
	keys := make([]string, 0, len(s.groups))
	for k := range s.groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Params returns the normalized parameter mapping recorded for a group key.
func (s *Stats) Params(group string) map[string]any {
	return s.groups[group]
}
