package repository

const schemaSQL = `
CREATE TABLE IF NOT EXISTS calculations (
    id           TEXT PRIMARY KEY,
    kind         TEXT NOT NULL,
    request      TEXT NOT NULL,
    result       TEXT NOT NULL,
    created_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_calculations_created ON calculations(created_at);
`
