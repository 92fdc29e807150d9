package store

import (
	"database/sql"
	"fmt"

	"github.com/soundprint/soundprint/internal/nationality"
	"github.com/soundprint/soundprint/internal/spotify"
)

// GetTrackMetadata loads cached metadata for the given track ids. Ids with
// no cache entry are simply absent from the result.
func (s *Store) GetTrackMetadata(ids []string) (map[string]spotify.TrackMetadata, error) {
	meta := make(map[string]spotify.TrackMetadata, len(ids))
	for _, id := range ids {
		row := s.db.QueryRow("SELECT duration_ms FROM Track WHERE id = ?", id)
		var durationMS int64
		err := row.Scan(&durationMS)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("scanning track %q: %w", id, err)
		}

		genres, err := s.trackGenres(id)
		if err != nil {
			return nil, err
		}
		meta[id] = spotify.TrackMetadata{Genres: genres, DurationMS: durationMS}
	}
	return meta, nil
}

func (s *Store) trackGenres(id string) ([]string, error) {
	rows, err := s.db.Query("SELECT genre FROM TrackGenre WHERE track = ? ORDER BY genre", id)
	if err != nil {
		return nil, fmt.Errorf("querying genres for %q: %w", id, err)
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// GetArtistCountry returns the cached country for an artist, or nil when the
// artist has not been resolved before.
func (s *Store) GetArtistCountry(artist string) (*nationality.Country, error) {
	row := s.db.QueryRow("SELECT country, iso FROM ArtistCountry WHERE artist = ?", artist)
	var country nationality.Country
	err := row.Scan(&country.Name, &country.ISONumeric)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning country for %q: %w", artist, err)
	}
	return &country, nil
}
