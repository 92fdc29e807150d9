// Package store caches enrichment lookups in SQLite so repeat analyses of
// the same export do not hit the metadata APIs again. Profiles themselves
// are never persisted; the cache holds only track metadata and artist
// countries.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS Track (
  id TEXT PRIMARY KEY,
  duration_ms INTEGER,
  updated DATETIME
);

CREATE TABLE IF NOT EXISTS TrackGenre (
  track TEXT,
  genre TEXT,
  FOREIGN KEY (track) REFERENCES Track(id),
  PRIMARY KEY (track, genre)
);

CREATE TABLE IF NOT EXISTS ArtistCountry (
  artist TEXT PRIMARY KEY,
  country TEXT,
  iso TEXT,
  updated DATETIME
);
`

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
