package store

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS words (
    id TEXT PRIMARY KEY,
    word TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS sentences (
    id TEXT PRIMARY KEY,
    text TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sentence_words (
    sentence_id TEXT NOT NULL REFERENCES sentences(id),
    word_id TEXT NOT NULL REFERENCES words(id),
    PRIMARY KEY (word_id, sentence_id)
);

CREATE TABLE IF NOT EXISTS cards (
    word_id TEXT PRIMARY KEY REFERENCES words(id),
    review_count INTEGER NOT NULL,
    ease REAL NOT NULL,
    interval_secs INTEGER,
    due INTEGER,
    added_order INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cards_due ON cards(due);

CREATE INDEX IF NOT EXISTS idx_sentence_words_sentence ON sentence_words(sentence_id);

CREATE TABLE IF NOT EXISTS sentence_cards (
    sentence_id TEXT PRIMARY KEY REFERENCES sentences(id),
    review_count INTEGER NOT NULL,
    ease REAL NOT NULL,
    interval_secs INTEGER,
    due INTEGER,
    added_order INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sentence_cards_due ON sentence_cards(due)
`

// Open opens (or creates) the sqlite database at path and applies the
// schema. In-memory databases are pinned to a single connection so every
// query sees the same database.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := InitDB(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitDB runs the schema statements on the given connection.
func InitDB(db *sql.DB) error {
	for _, s := range strings.Split(schemaSQL, ";") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// execer allows store functions to run against *sql.DB or *sql.Tx.
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}
