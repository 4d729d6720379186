package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;

-- One row per setup invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TEXT NOT NULL,
    archive_url TEXT NOT NULL,
    data_dir TEXT NOT NULL,
    source TEXT NOT NULL,          -- download, fallback
    fetch_error TEXT,
    layout TEXT,
    ttl_count INTEGER DEFAULT 0,
    image_count INTEGER DEFAULT 0,
    verified BOOLEAN DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
`
