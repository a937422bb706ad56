package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS rate_sets (
    base                 TEXT PRIMARY KEY,
    rates                BLOB NOT NULL,
    fetched_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS multipliers (
    country              TEXT PRIMARY KEY,
    multiplier           REAL NOT NULL,
    fetched_at           TEXT NOT NULL
);
`
