// Package params canonicalizes the heterogeneous parameter sets found in
// experiment result files. Parameter names drifted across experiment
// generations; Normalize rewrites them into the single schema the aggregate
// views are keyed on.
package params

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"seistats/internal/logging"
)

// ExperimentType tags a result file with the experiment category that
// produced it, which decides the normalization and extraction rules.
type ExperimentType string

const (
	// Mininet experiments emulate the network and write per-client output
	// files referenced through each run's outputs_dir.
	Mininet ExperimentType = "mininet"
	// Networkx experiments are pure simulations. Old files omit the
	// experiment_type field entirely and default to this type.
	Networkx ExperimentType = "networkx"
)

// Known reports whether t is one of the recognized experiment types. Any
// other value is a configuration the tool cannot interpret.
func (t ExperimentType) Known() bool {
	return t == Mininet || t == Networkx
}

// TypeOf reads the experiment type from a raw parameter mapping. Legacy
// files predate the field and default to Networkx.
func TypeOf(raw map[string]any) ExperimentType {
	v, ok := raw["experiment_type"].(string)
	if !ok || v == "" {
		return Networkx
	}
	return ExperimentType(v)
}

var (
	// ErrMalformed marks a producer-side data format violation: a parameter
	// value that cannot be reduced to the canonical shape. Never masked.
	ErrMalformed = errors.New("malformed parameter")
	// ErrUnsupported is returned when a networkx file reaches normalization
	// or extraction; that branch is not implemented.
	ErrUnsupported = errors.New("networkx result parsing not supported")
	// ErrUnknownType is returned for an experiment type outside the known
	// enumeration. Fatal for the whole run, not just the file.
	ErrUnknownType = errors.New("unrecognized experiment type")
)

// Topo is the topology parameter. New generators write a plain file name;
// old ones wrote a [reader, filename] pair. Either shape reduces to File.
type Topo struct {
	Reader string
	File   string
}

// DecodeTopo pattern-matches the raw topo value into a Topo. Anything other
// than a string or a two-element sequence ending in a string is malformed.
func DecodeTopo(v any) (Topo, error) {
	switch t := v.(type) {
	case string:
		return Topo{File: t}, nil
	case []any:
		if len(t) != 2 {
			return Topo{}, fmt.Errorf("%w: topo sequence has %d elements, want 2", ErrMalformed, len(t))
		}
		file, ok := t[1].(string)
		if !ok {
			return Topo{}, fmt.Errorf("%w: topo file name is %T, want string", ErrMalformed, t[1])
		}
		reader, _ := t[0].(string)
		return Topo{Reader: reader, File: file}, nil
	default:
		return Topo{}, fmt.Errorf("%w: topo is %T, want string or [reader, file]", ErrMalformed, v)
	}
}

// failureProb derives the failure probability from a failure_model value of
// the form "<model-name>/<probability>".
func failureProb(v any) (float64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("%w: failure_model is %T, want string", ErrMalformed, v)
	}
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: failure_model %q has no '/' separator", ErrMalformed, s)
	}
	p, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: failure_model probability %q is not numeric", ErrMalformed, parts[1])
	}
	return p, nil
}

// falsy mirrors the producer's notion of an unset numeric option: absent,
// null, zero, empty or false.
func falsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case float64:
		return t == 0
	case int:
		return t == 0
	case string:
		return t == ""
	default:
		return false
	}
}

// Normalize transforms a raw parameter mapping into the canonical one for
// the given experiment type. The input map is not modified. The result never
// contains a null-valued key. Malformed values, the unimplemented networkx
// branch and unknown experiment types are fatal for the run.
func Normalize(raw map[string]any, et ExperimentType) (map[string]any, error) {
	log := logging.New("params")

	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}

	// Common renames across all experiment types, mostly so downstream
	// tables get shorter and more distinct column names.
	if v, ok := out["heuristic"]; ok {
		delete(out, "heuristic")
		out["const_alg"] = v
	}
	delete(out, "experiment_type")
	out["exp_type"] = string(et)

	// The only failure model in use is uniform, so keep just the probability.
	fm, ok := out["failure_model"]
	if !ok {
		return nil, fmt.Errorf("%w: failure_model missing", ErrMalformed)
	}
	fprob, err := failureProb(fm)
	if err != nil {
		return nil, err
	}
	delete(out, "failure_model")
	out["fprob"] = fprob

	if v, ok := out["topo"]; ok {
		topo, err := DecodeTopo(v)
		if err != nil {
			return nil, err
		}
		out["topo"] = topo.File
	}

	// Null params are unset optional settings (e.g. unused random seeds);
	// they must not reach the normalized mapping.
	for k, v := range out {
		if v == nil {
			log.Debug("deleting null parameter", "key", k)
			delete(out, k)
		}
	}

	switch {
	case et == Mininet:
		if v, ok := out["tree_choosing_heuristic"]; ok {
			delete(out, "tree_choosing_heuristic")
			out["select_policy"] = v
		}
		// Traffic generation was replaced by publisher-driven load; drop the
		// legacy knobs whenever they are unset.
		if falsy(out["n_traffic_generators"]) {
			delete(out, "n_traffic_generators")
			delete(out, "traffic_generator_bandwidth")
		}
	case et == Networkx:
		return nil, ErrUnsupported
	default:
		log.Error("unrecognized experiment_type, aborting", "experiment_type", string(et))
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, string(et))
	}

	return out, nil
}
