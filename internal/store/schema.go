package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS logs (
    id                   TEXT PRIMARY KEY,
    timestamp_ms         INTEGER NOT NULL,
    kcal                 REAL,
    minutes              REAL,
    name                 TEXT NOT NULL DEFAULT '',
    exercise_key         TEXT NOT NULL DEFAULT '',
    style                TEXT NOT NULL DEFAULT '',
    size                 TEXT NOT NULL DEFAULT '',
    count                REAL NOT NULL DEFAULT 0,
    abv                  REAL NOT NULL DEFAULT 0,
    brewery              TEXT NOT NULL DEFAULT '',
    brand                TEXT NOT NULL DEFAULT '',
    rating               INTEGER NOT NULL DEFAULT 0,
    memo                 TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS checks (
    id                   TEXT PRIMARY KEY,
    timestamp_ms         INTEGER NOT NULL,
    is_dry_day           INTEGER NOT NULL DEFAULT 0,
    waist_ease           INTEGER NOT NULL DEFAULT 0,
    foot_lightness       INTEGER NOT NULL DEFAULT 0,
    water_ok             INTEGER NOT NULL DEFAULT 0,
    fiber_ok             INTEGER NOT NULL DEFAULT 0,
    exercised            INTEGER NOT NULL DEFAULT 0,
    weight               REAL
);

CREATE INDEX IF NOT EXISTS idx_logs_timestamp ON logs(timestamp_ms);
CREATE INDEX IF NOT EXISTS idx_checks_timestamp ON checks(timestamp_ms);
`
