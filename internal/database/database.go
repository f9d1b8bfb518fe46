package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	conn *sql.DB
	path string
}

func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Path() string {
	return db.path
}

func (db *DB) Exec(query string, args ...any) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

func (db *DB) Query(query string, args ...any) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

func (db *DB) QueryRow(query string, args ...any) *sql.Row {
	return db.conn.QueryRow(query, args...)
}

func (db *DB) Begin() (*sql.Tx, error) {
	return db.conn.Begin()
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY,
		source TEXT NOT NULL,
		documents INTEGER NOT NULL,
		total_ngrams INTEGER NOT NULL,
		distinct_ngrams INTEGER NOT NULL,
		raw_score INTEGER NOT NULL,
		score REAL NOT NULL,
		min_ngram INTEGER NOT NULL,
		max_ngram INTEGER NOT NULL,
		top_x INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS run_ngrams (
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		n INTEGER NOT NULL,
		rank INTEGER NOT NULL,
		ngram TEXT NOT NULL,
		count INTEGER NOT NULL,
		PRIMARY KEY (run_id, n, rank)
	);

	CREATE TABLE IF NOT EXISTS run_lengths (
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		n INTEGER NOT NULL,
		distinct_ngrams INTEGER NOT NULL,
		total_ngrams INTEGER NOT NULL,
		PRIMARY KEY (run_id, n)
	);

	CREATE TABLE IF NOT EXISTS ingested (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		lines INTEGER NOT NULL,
		ingested_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_ingested_name ON ingested(name);
	`

	_, err := db.conn.Exec(schema)
	return err
}
