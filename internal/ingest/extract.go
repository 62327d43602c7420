package ingest

import (
	"fmt"
	"path/filepath"

	"seistats/internal/logging"
	"seistats/internal/params"
	"seistats/internal/seismic"
)

// Extractor turns one file's raw results into updates on the shared
// aggregate. The Stats field is the single aggregate for the whole run:
// nil until the first successful extraction, then reused for every file.
type Extractor struct {
	Stats *seismic.Stats
}

// Extract resolves each run's outputs_dir against the result file's own
// directory and feeds the directory sequence plus normalized parameters into
// the shared aggregate — constructing it on the first call, merging into the
// same instance afterwards. filePath may be empty when the results did not
// come from a file; resolution then falls back to the working directory.
func (e *Extractor) Extract(rawResults []map[string]any, filePath string, et params.ExperimentType, normalized map[string]any) (*seismic.Stats, error) {
	log := logging.New("ingest")

	switch {
	case et == params.Mininet:
		if filePath == "" {
			log.Warn("no result file path; resolving outputs_dir against the working directory")
		}
		base := filepath.Dir(filePath)

		dirs := make([]string, 0, len(rawResults))
		for i, run := range rawResults {
			od, ok := run["outputs_dir"].(string)
			if !ok || od == "" {
				return nil, fmt.Errorf("%w: run %d has no outputs_dir", params.ErrMalformed, i)
			}
			dirs = append(dirs, filepath.Join(base, od))
		}

		if e.Stats == nil {
			st, err := seismic.New(dirs, normalized)
			if err != nil {
				return nil, err
			}
			e.Stats = st
		} else if err := e.Stats.Merge(dirs, normalized); err != nil {
			return nil, err
		}
		return e.Stats, nil

	case et == params.Networkx:
		return nil, params.ErrUnsupported

	default:
		log.Error("unrecognized experiment_type, aborting", "experiment_type", string(et))
		return nil, fmt.Errorf("%w: %q", params.ErrUnknownType, string(et))
	}
}
