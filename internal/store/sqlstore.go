// Package store persists per-group summaries of aggregation runs in a local
// SQLite database, so results from past experiment batches can be compared
// without re-reading the raw output trees.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"seistats/internal/seismic"
)

// DefaultDBPath is the conventional on-disk location, relative to the
// working directory.
const DefaultDBPath = ".seistats/seistats.db"

// Summary is one parameter group's persisted statistics snapshot.
type Summary struct {
	ID        int64
	GroupKey  string
	Params    map[string]any
	Hosts     int
	Reached   int
	Rate      float64
	LatCount  int
	LatMean   float64
	LatStdev  float64
	LatMedian float64
	LatP95    float64
	LatMin    float64
	LatMax    float64
	CreatedAt string
}

// SqlStore is the SQLite-backed summary store.
type SqlStore struct {
	db *sql.DB
}

// nowUTC returns the current UTC time as an ISO 8601 string.
func nowUTC() string { return time.Now().UTC().Format(time.RFC3339) }

// Open opens or creates a SQLite DB at path and runs migrations. The parent
// directory (e.g. .seistats) is created if it does not exist.
func Open(path string) (*SqlStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *SqlStore) Close() error {
	return s.db.Close()
}

func (s *SqlStore) migrate() error {
	var tableCount int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableCount == 0 {
		if _, err := s.db.Exec(schemaV1); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", currentSchemaVersion); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return nil
	}

	var v int
	err = s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if v != currentSchemaVersion {
		return fmt.Errorf("unknown schema version %d", v)
	}
	return nil
}

// SaveRun writes one summary row per parameter group of the aggregate and
// returns how many rows were inserted. Groups without latency samples persist
// with lat_count = 0 and null latency columns.
func (s *SqlStore) SaveRun(st *seismic.Stats) (int, error) {
	reach := st.Reachabilities()
	lats, err := st.Latencies()
	if err != nil {
		return 0, err
	}
	latByGroup := make(map[string]seismic.Latency, len(lats))
	for _, l := range lats {
		latByGroup[l.Group] = l
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := nowUTC()
	inserted := 0
	for _, r := range reach {
		paramsJSON, err := json.Marshal(r.Params)
		if err != nil {
			return 0, fmt.Errorf("encode params for %s: %w", r.Group, err)
		}

		var latCols [6]sql.NullFloat64
		latCount := 0
		if l, ok := latByGroup[r.Group]; ok {
			latCount = l.Count
			for i, v := range []float64{l.Mean, l.Stdev, l.Median, l.P95, l.Min, l.Max} {
				latCols[i] = sql.NullFloat64{Float64: v, Valid: true}
			}
		}

		_, err = tx.Exec(`
            INSERT INTO summaries(
                group_key, params_json, hosts, reached, rate,
                lat_count, lat_mean, lat_stdev, lat_median, lat_p95, lat_min, lat_max,
                created_at
            ) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			r.Group, string(paramsJSON), r.Hosts, r.Reached, r.Rate,
			latCount, latCols[0], latCols[1], latCols[2], latCols[3], latCols[4], latCols[5],
			now,
		)
		if err != nil {
			return 0, fmt.Errorf("insert summary for %s: %w", r.Group, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save: %w", err)
	}
	return inserted, nil
}

// List returns every stored summary, newest first.
func (s *SqlStore) List() ([]Summary, error) {
	rows, err := s.db.Query(`
        SELECT id, group_key, params_json, hosts, reached, rate,
               lat_count, lat_mean, lat_stdev, lat_median, lat_p95, lat_min, lat_max,
               created_at
        FROM summaries ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum        Summary
			paramsJSON string
			latCols    [6]sql.NullFloat64
		)
		err := rows.Scan(&sum.ID, &sum.GroupKey, &paramsJSON, &sum.Hosts, &sum.Reached, &sum.Rate,
			&sum.LatCount, &latCols[0], &latCols[1], &latCols[2], &latCols[3], &latCols[4], &latCols[5],
			&sum.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		if err := json.Unmarshal([]byte(paramsJSON), &sum.Params); err != nil {
			return nil, fmt.Errorf("decode params for %s: %w", sum.GroupKey, err)
		}
		sum.LatMean = latCols[0].Float64
		sum.LatStdev = latCols[1].Float64
		sum.LatMedian = latCols[2].Float64
		sum.LatP95 = latCols[3].Float64
		sum.LatMin = latCols[4].Float64
		sum.LatMax = latCols[5].Float64
		out = append(out, sum)
	}
	return out, rows.Err()
}
