// Package report renders the aggregate's read-side views as tables for the
// CLI. It sits outside the aggregation core: it only queries the aggregate,
// never mutates it.
package report

import (
	"fmt"
	"strings"

	"seistats/internal/format"
	"seistats/internal/seismic"
)

// Reachability renders the per-group reachability table.
func Reachability(s *seismic.Stats, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Header("Parameters", "Hosts", "Reached", "Rate")

	totalHosts, totalReached := 0, 0
	for _, v := range s.Reachabilities() {
		tb.Row(v.Group, v.Hosts, v.Reached, format.Percent(v.Rate))
		totalHosts += v.Hosts
		totalReached += v.Reached
	}
	totalRate := 0.0
	if totalHosts > 0 {
		totalRate = float64(totalReached) / float64(totalHosts)
	}
	tb.Footer("TOTAL", totalHosts, totalReached, format.Percent(totalRate))
	tb.AlignRight(2, 3, 4)
	return tb.String()
}

// Latency renders the per-group latency table (seconds).
func Latency(s *seismic.Stats, mode format.Mode) (string, error) {
	views, err := s.Latencies()
	if err != nil {
		return "", fmt.Errorf("latency view: %w", err)
	}

	tb := format.NewTable(mode)
	tb.Header("Parameters", "Events", "Mean", "Stdev", "Median", "P95", "Min", "Max")
	for _, v := range views {
		tb.Row(v.Group, v.Count,
			format.Float(v.Mean), format.Float(v.Stdev), format.Float(v.Median),
			format.Float(v.P95), format.Float(v.Min), format.Float(v.Max))
	}
	tb.AlignRight(2, 3, 4, 5, 6, 7, 8)
	return tb.String(), nil
}

// Params renders one row per parameter group with its normalized parameters
// spelled out, for the inspect command.
func Params(s *seismic.Stats, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Header("Group", "Parameters")
	for _, group := range s.Groups() {
		tb.Row(group, formatParams(s.Params(group)))
	}
	return tb.String()
}

func formatParams(p map[string]any) string {
	// GroupKey is already the sorted canonical rendering; reuse it so the
	// two columns can never disagree.
	return strings.ReplaceAll(seismic.GroupKey(p), ",", ", ")
}
