// Package mcp exposes the aggregation pipeline as MCP tools over stdio, so
// an IDE agent can load result files and query the computed statistics
// without shelling out to the CLI.
package mcp

import (
	"context"
	"fmt"
	"sync"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"seistats/internal/ingest"
	"seistats/internal/logging"
	"seistats/internal/params"
	"seistats/internal/results"
	"seistats/internal/seismic"
)

// Server wraps the MCP SDK server and holds the most recently loaded
// aggregate. Tools that read statistics operate on whatever load_results
// produced last.
type Server struct {
	MCPServer *sdkmcp.Server

	mu      sync.Mutex
	current *seismic.Stats
	expType params.ExperimentType
}

// NewServer creates an MCP server with the result-loading and statistics
// query tools registered.
func NewServer() *Server {
	s := &Server{}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "seistats", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

// Shutdown drops the loaded aggregate.
func (s *Server) Shutdown() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "load_results",
		Description: "Parse experiment result files from directories or explicit paths and build the statistics aggregate. Replaces any previously loaded aggregate.",
	}, s.handleLoadResults)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_reachability",
		Description: "Per parameter group: how many client hosts received at least one alert, out of all hosts observed.",
	}, s.handleGetReachability)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_latency",
		Description: "Per parameter group: alert propagation delay statistics (mean, stdev, median, p95, min, max) in seconds.",
	}, s.handleGetLatency)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_params",
		Description: "List the normalized parameter mapping of every loaded group.",
	}, s.handleGetParams)
}

// --- Tool input/output types ---

type loadResultsInput struct {
	Dirs  []string `json:"dirs,omitempty" jsonschema:"directories to scan for result files (mutually exclusive with files)"`
	Files []string `json:"files,omitempty" jsonschema:"explicit result file paths (mutually exclusive with dirs)"`
	Sort  bool     `json:"sort,omitempty" jsonschema:"sort directory entries lexically before parsing"`
}

type loadResultsOutput struct {
	ExperimentType string `json:"experiment_type,omitempty"`
	Groups         int    `json:"groups"`
	Clients        int    `json:"clients"`
	OutputDirs     int    `json:"output_dirs"`
}

type statsInput struct{}

type reachabilityGroup struct {
	Group   string         `json:"group"`
	Params  map[string]any `json:"params"`
	Hosts   int            `json:"hosts"`
	Reached int            `json:"reached"`
	Rate    float64        `json:"rate"`
}

type getReachabilityOutput struct {
	Groups []reachabilityGroup `json:"groups"`
}

type latencyGroup struct {
	Group  string         `json:"group"`
	Params map[string]any `json:"params"`
	Count  int            `json:"count"`
	Mean   float64        `json:"mean"`
	Stdev  float64        `json:"stdev"`
	Median float64        `json:"median"`
	P95    float64        `json:"p95"`
	Min    float64        `json:"min"`
	Max    float64        `json:"max"`
}

type getLatencyOutput struct {
	Groups []latencyGroup `json:"groups"`
}

type paramsGroup struct {
	Group  string         `json:"group"`
	Params map[string]any `json:"params"`
}

type getParamsOutput struct {
	Groups []paramsGroup `json:"groups"`
}

// --- Tool handlers ---

func (s *Server) handleLoadResults(_ context.Context, _ *sdkmcp.CallToolRequest, input loadResultsInput) (*sdkmcp.CallToolResult, loadResultsOutput, error) {
	log := logging.New("mcp")
	log.Info("loading results", "dirs", input.Dirs, "files", input.Files)

	c := ingest.NewCoordinator(results.Sources{
		Dirs:   input.Dirs,
		Files:  input.Files,
		Sorted: input.Sort,
	})
	st, err := c.Run()
	if err != nil {
		return nil, loadResultsOutput{}, fmt.Errorf("load_results: %w", err)
	}

	s.mu.Lock()
	s.current = st
	s.expType, _ = c.ExperimentType()
	s.mu.Unlock()

	out := loadResultsOutput{}
	if et, set := c.ExperimentType(); set {
		out.ExperimentType = string(et)
	}
	if st != nil {
		out.Groups = len(st.Groups())
		out.Clients = len(st.Rows())
		out.OutputDirs = len(st.Dirs())
	}
	return nil, out, nil
}

func (s *Server) handleGetReachability(_ context.Context, _ *sdkmcp.CallToolRequest, _ statsInput) (*sdkmcp.CallToolResult, getReachabilityOutput, error) {
	st, err := s.loaded()
	if err != nil {
		return nil, getReachabilityOutput{}, err
	}

	var out getReachabilityOutput
	for _, v := range st.Reachabilities() {
		out.Groups = append(out.Groups, reachabilityGroup{
			Group:   v.Group,
			Params:  v.Params,
			Hosts:   v.Hosts,
			Reached: v.Reached,
			Rate:    v.Rate,
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetLatency(_ context.Context, _ *sdkmcp.CallToolRequest, _ statsInput) (*sdkmcp.CallToolResult, getLatencyOutput, error) {
	st, err := s.loaded()
	if err != nil {
		return nil, getLatencyOutput{}, err
	}

	views, err := st.Latencies()
	if err != nil {
		return nil, getLatencyOutput{}, fmt.Errorf("get_latency: %w", err)
	}
	var out getLatencyOutput
	for _, v := range views {
		out.Groups = append(out.Groups, latencyGroup{
			Group:  v.Group,
			Params: v.Params,
			Count:  v.Count,
			Mean:   v.Mean,
			Stdev:  v.Stdev,
			Median: v.Median,
			P95:    v.P95,
			Min:    v.Min,
			Max:    v.Max,
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetParams(_ context.Context, _ *sdkmcp.CallToolRequest, _ statsInput) (*sdkmcp.CallToolResult, getParamsOutput, error) {
	st, err := s.loaded()
	if err != nil {
		return nil, getParamsOutput{}, err
	}

	var out getParamsOutput
	for _, group := range st.Groups() {
		out.Groups = append(out.Groups, paramsGroup{Group: group, Params: st.Params(group)})
	}
	return nil, out, nil
}

func (s *Server) loaded() (*seismic.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, fmt.Errorf("no results loaded; call load_results first")
	}
	return s.current, nil
}
