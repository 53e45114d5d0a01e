package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS events (
    id                   TEXT NOT NULL,
    span                 TEXT NOT NULL,
    amount               REAL NOT NULL,
    date                 TEXT NOT NULL,
    category_id          INTEGER,
    category_title       TEXT,
    category_is_bill     INTEGER NOT NULL DEFAULT 0,
    category_is_transfer INTEGER NOT NULL DEFAULT 0,
    is_transfer          INTEGER NOT NULL DEFAULT 0,
    repeat_type          TEXT,
    repeat_interval      INTEGER,
    note                 TEXT,
    PRIMARY KEY (span, id)
);

CREATE TABLE IF NOT EXISTS fetch_meta (
    span                 TEXT PRIMARY KEY,
    fetched_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
`
