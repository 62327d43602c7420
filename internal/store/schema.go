package store

// schemaVersionV1 is the initial and current schema.
const schemaVersionV1 = 1

const currentSchemaVersion = schemaVersionV1

// schemaV1 holds per-group summaries of aggregation runs. Raw client rows are
// not persisted; the result files remain the source of truth and a summary is
// cheap to recompute from them.
const schemaV1 = `
CREATE TABLE schema_version (
    version INTEGER NOT NULL
);

CREATE TABLE summaries (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    group_key   TEXT NOT NULL,
    params_json TEXT NOT NULL,
    hosts       INTEGER NOT NULL,
    reached     INTEGER NOT NULL,
    rate        REAL NOT NULL,
    lat_count   INTEGER NOT NULL,
    lat_mean    REAL,
    lat_stdev   REAL,
    lat_median  REAL,
    lat_p95     REAL,
    lat_min     REAL,
    lat_max     REAL,
    created_at  TEXT NOT NULL
);

CREATE INDEX idx_summaries_group ON summaries(group_key);
`
