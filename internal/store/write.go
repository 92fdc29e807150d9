package store

import (
	"fmt"
	"time"

	"github.com/soundprint/soundprint/internal/nationality"
	"github.com/soundprint/soundprint/internal/spotify"
)

// SaveTrackMetadata upserts a batch of track metadata transactionally.
// Genres for each track are replaced wholesale, not merged.
func (s *Store) SaveTrackMetadata(meta map[string]spotify.TrackMetadata) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for id, m := range meta {
		_, err := tx.Exec("INSERT OR REPLACE INTO Track (id, duration_ms, updated) VALUES (?, ?, ?)",
			id, m.DurationMS, now)
		if err != nil {
			return fmt.Errorf("inserting track %q: %w", id, err)
		}

		if _, err := tx.Exec("DELETE FROM TrackGenre WHERE track = ?", id); err != nil {
			return fmt.Errorf("clearing genres for %q: %w", id, err)
		}
		for _, genre := range m.Genres {
			_, err := tx.Exec("INSERT OR IGNORE INTO TrackGenre (track, genre) VALUES (?, ?)", id, genre)
			if err != nil {
				return fmt.Errorf("linking genre %q to track %q: %w", genre, id, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// SaveArtistCountry caches one resolved artist country.
func (s *Store) SaveArtistCountry(artist string, country nationality.Country) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO ArtistCountry (artist, country, iso, updated) VALUES (?, ?, ?, ?)",
		artist, country.Name, country.ISONumeric, time.Now())
	if err != nil {
		return fmt.Errorf("inserting country for %q: %w", artist, err)
	}
	return nil
}
