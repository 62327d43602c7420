// Package results discovers and decodes experiment result files.
//
// A result file is a JSON document written by one experiment batch. It holds
// the batch's parameter set under "params" and one entry per run under
// "results". Files still being written carry the ProgressSuffix and are never
// picked up by directory enumeration.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"seistats/internal/logging"
)

// ProgressSuffix marks a result file that an experiment is still writing.
const ProgressSuffix = ".progress"

// ResultFile is one candidate file produced by enumeration. It is consumed
// once by Load and not retained afterwards.
type ResultFile struct {
	Path string
}

// Dir returns the directory containing the file. Per-run output directories
// inside the file are resolved relative to it.
func (f ResultFile) Dir() string {
	return filepath.Dir(f.Path)
}

// Sources selects exactly one enumeration mode: Dirs lists the immediate
// entries of each directory, Files is an explicit list used verbatim. Setting
// both is a caller error. Sorted orders the enumerated paths lexically;
// by default files come out in directory-listing order.
type Sources struct {
	Dirs   []string
	Files  []string
	Sorted bool
}

// Enumerate produces the sequence of candidate files to parse. Directory mode
// skips in-progress files and anything that is not a regular file, and never
// recurses. A directory that cannot be listed is an error.
func (s Sources) Enumerate() ([]ResultFile, error) {
	if len(s.Dirs) > 0 && len(s.Files) > 0 {
		return nil, fmt.Errorf("enumerate: dirs and files are mutually exclusive")
	}

	log := logging.New("results")

	if len(s.Dirs) == 0 {
		files := make([]ResultFile, 0, len(s.Files))
		for _, f := range s.Files {
			files = append(files, ResultFile{Path: f})
		}
		return files, nil
	}

	var files []ResultFile
	for _, dir := range s.Dirs {
		log.Debug("enumerating result dir", "dir", dir)
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("list result dir: %w", err)
		}
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ProgressSuffix) {
				log.Debug("skipping in-progress file", "name", e.Name())
				continue
			}
			if !e.Type().IsRegular() {
				continue
			}
			files = append(files, ResultFile{Path: filepath.Join(dir, e.Name())})
		}
	}

	if s.Sorted {
		sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	}
	return files, nil
}

// RawDocument is the decoded content of one result file. Params or Results
// being nil means the corresponding key was missing (or null); the caller
// rejects such documents as non-result files.
type RawDocument struct {
	Params  map[string]any   `json:"params"`
	Results []map[string]any `json:"results"`
}

// Complete reports whether the document carries both required top-level keys.
func (d *RawDocument) Complete() bool {
	return d.Params != nil && d.Results != nil
}

// Load reads and JSON-decodes one result file. Content that is not valid
// JSON is a soft condition: ok is false, a diagnostic is logged and the
// caller moves on to the next file. An unreadable file is a real error.
// Load does not validate that params/results are present; see Complete.
func Load(f ResultFile) (*RawDocument, bool, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, false, fmt.Errorf("read result file: %w", err)
	}

	var doc RawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		logging.New("results").Debug("skipping non-JSON file", "path", f.Path, "err", err)
		return nil, false, nil
	}
	return &doc, true, nil
}
