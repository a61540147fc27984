package cache

// Schema creates the inspection cache tables.
const Schema = `
CREATE TABLE IF NOT EXISTS inspections (
    path TEXT PRIMARY KEY,
    size INTEGER NOT NULL,
    mod_time INTEGER NOT NULL,
    objects TEXT NOT NULL,
    recorded_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_inspections_recorded_at ON inspections(recorded_at);
`
