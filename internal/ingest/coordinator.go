// Package ingest drives the aggregation pipeline: enumerate candidate result
// files, decode each one, normalize its parameters and merge its runs into
// the single shared statistics aggregate.
package ingest

import (
	"errors"
	"fmt"

	"seistats/internal/logging"
	"seistats/internal/params"
	"seistats/internal/results"
	"seistats/internal/seismic"
)

// ErrTypeMismatch is returned when one run mixes result files from different
// experiment types. Merging them would normalize parameters inconsistently
// into the same aggregate, so the mismatch is fatal rather than silent.
var ErrTypeMismatch = errors.New("experiment type changed between result files")

// Coordinator owns one full aggregation run: the traversal order, the
// experiment type observed so far and the shared aggregate. Soft conditions
// (non-JSON files, documents missing params/results) are contained here;
// every other failure aborts the run.
type Coordinator struct {
	Sources results.Sources

	expType   params.ExperimentType
	typeSet   bool
	extractor Extractor
}

// NewCoordinator returns a Coordinator over the given sources.
func NewCoordinator(src results.Sources) *Coordinator {
	return &Coordinator{Sources: src}
}

// Run processes every enumerated file in order and returns the shared
// aggregate. The aggregate is nil when no file parsed successfully — an
// empty run, not an error. A fatal condition from any file aborts the whole
// run and the partial aggregate is not returned.
func (c *Coordinator) Run() (*seismic.Stats, error) {
	files, err := c.Sources.Enumerate()
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		if err := c.parseFile(f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.Path, err)
		}
	}
	return c.extractor.Stats, nil
}

// ExperimentType returns the type recorded from the first parsed file, and
// whether any file has set it yet.
func (c *Coordinator) ExperimentType() (params.ExperimentType, bool) {
	return c.expType, c.typeSet
}

func (c *Coordinator) parseFile(f results.ResultFile) error {
	log := logging.New("ingest")
	log.Debug("parsing result file", "path", f.Path)

	doc, ok, err := results.Load(f)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if !doc.Complete() {
		// Valid JSON without params/results is some other file living next
		// to the results; treat it exactly like a decode failure.
		log.Debug("skipping document without params/results", "path", f.Path)
		return nil
	}

	et := params.TypeOf(doc.Params)
	if c.typeSet && et != c.expType {
		return fmt.Errorf("%w: run is %q, file is %q", ErrTypeMismatch, c.expType, et)
	}
	c.expType = et
	c.typeSet = true

	normalized, err := params.Normalize(doc.Params, et)
	if err != nil {
		return err
	}

	stats, err := c.extractor.Extract(doc.Results, f.Path, et, normalized)
	if err != nil {
		return err
	}

	c.recordFile(f, stats)
	return nil
}

// recordFile is the per-file completion hook. It does nothing today; it
// exists so per-file bookkeeping (e.g. provenance tracking) has a seam to
// attach to without reshaping the pipeline.
func (c *Coordinator) recordFile(results.ResultFile, *seismic.Stats) {}
