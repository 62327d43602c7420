package seismic

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Reachability summarizes alert delivery for one parameter group: how many
// client hosts recorded at least one event out of all hosts observed.
type Reachability struct {
	Group   string
	Params  map[string]any
	Hosts   int
	Reached int
	Rate    float64
}

// Reachabilities computes the per-group reachability view, ordered by group
// key so output is stable.
func (s *Stats) Reachabilities() []Reachability {
	type tally struct {
		hosts   map[string]bool
		reached map[string]bool
	}
	byGroup := make(map[string]*tally)
	for _, r := range s.rows {
		t, ok := byGroup[r.Group]
		if !ok {
			t = &tally{hosts: make(map[string]bool), reached: make(map[string]bool)}
			byGroup[r.Group] = t
		}
		t.hosts[r.HostID] = true
		if len(r.Events) > 0 {
			t.reached[r.HostID] = true
		}
	}

	var views []Reachability
	for _, group := range s.Groups() {
		t, ok := byGroup[group]
		if !ok {
			continue
		}
		v := Reachability{
			Group:   group,
			Params:  s.groups[group],
			Hosts:   len(t.hosts),
			Reached: len(t.reached),
		}
		if v.Hosts > 0 {
			v.Rate = float64(v.Reached) / float64(v.Hosts)
		}
		views = append(views, v)
	}
	return views
}

// Latency summarizes alert propagation delay for one parameter group.
type Latency struct {
	Group  string
	Params map[string]any
	Count  int
	Mean   float64
	Stdev  float64
	Median float64
	P95    float64
	Min    float64
	Max    float64
}

// Latencies computes the per-group latency view over every recorded event,
// ordered by group key. Groups with no events are omitted.
func (s *Stats) Latencies() ([]Latency, error) {
	byGroup := make(map[string][]float64)
	for _, r := range s.rows {
		for _, e := range r.Events {
			byGroup[r.Group] = append(byGroup[r.Group], e.Latency())
		}
	}

	var views []Latency
	for _, group := range s.Groups() {
		samples := byGroup[group]
		if len(samples) == 0 {
			continue
		}
		v := Latency{Group: group, Params: s.groups[group], Count: len(samples)}

		var err error
		if v.Mean, err = stats.Mean(samples); err != nil {
			return nil, fmt.Errorf("latency mean for %s: %w", group, err)
		}
		if v.Stdev, err = stats.StandardDeviation(samples); err != nil {
			return nil, fmt.Errorf("latency stdev for %s: %w", group, err)
		}
		if v.Median, err = stats.Median(samples); err != nil {
			return nil, fmt.Errorf("latency median for %s: %w", group, err)
		}
		if v.P95, err = stats.Percentile(samples, 95); err != nil {
			return nil, fmt.Errorf("latency p95 for %s: %w", group, err)
		}
		if v.Min, err = stats.Min(samples); err != nil {
			return nil, fmt.Errorf("latency min for %s: %w", group, err)
		}
		if v.Max, err = stats.Max(samples); err != nil {
			return nil, fmt.Errorf("latency max for %s: %w", group, err)
		}
		views = append(views, v)
	}
	return views, nil
}
