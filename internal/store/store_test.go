package store

import (
	"testing"

	"github.com/soundprint/soundprint/internal/nationality"
	"github.com/soundprint/soundprint/internal/spotify"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTrackMetadataRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	meta := map[string]spotify.TrackMetadata{
		"t1": {Genres: []string{"reggaeton", "latin pop"}, DurationMS: 210000},
		"t2": {Genres: nil, DurationMS: 185000},
	}
	if err := s.SaveTrackMetadata(meta); err != nil {
		t.Fatalf("SaveTrackMetadata: %v", err)
	}

	got, err := s.GetTrackMetadata([]string{"t1", "t2", "missing"})
	if err != nil {
		t.Fatalf("GetTrackMetadata: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2: missing ids are absent, not errors", len(got))
	}
	if got["t1"].DurationMS != 210000 {
		t.Errorf("t1 duration = %d", got["t1"].DurationMS)
	}
	if len(got["t1"].Genres) != 2 {
		t.Errorf("t1 genres = %v", got["t1"].Genres)
	}
	if got["t2"].DurationMS != 185000 || len(got["t2"].Genres) != 0 {
		t.Errorf("t2 = %+v", got["t2"])
	}
}

func TestSaveTrackMetadataReplacesGenres(t *testing.T) {
	s := setupTestStore(t)

	first := map[string]spotify.TrackMetadata{"t1": {Genres: []string{"old tag"}, DurationMS: 1000}}
	if err := s.SaveTrackMetadata(first); err != nil {
		t.Fatalf("SaveTrackMetadata: %v", err)
	}
	second := map[string]spotify.TrackMetadata{"t1": {Genres: []string{"new tag"}, DurationMS: 2000}}
	if err := s.SaveTrackMetadata(second); err != nil {
		t.Fatalf("SaveTrackMetadata: %v", err)
	}

	got, err := s.GetTrackMetadata([]string{"t1"})
	if err != nil {
		t.Fatalf("GetTrackMetadata: %v", err)
	}
	if got["t1"].DurationMS != 2000 {
		t.Errorf("duration = %d, want the replaced value", got["t1"].DurationMS)
	}
	if len(got["t1"].Genres) != 1 || got["t1"].Genres[0] != "new tag" {
		t.Errorf("genres = %v, want only the new tag", got["t1"].Genres)
	}
}

func TestArtistCountryRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	want := nationality.Country{Name: "Puerto Rico", ISONumeric: "630"}
	if err := s.SaveArtistCountry("Bad Bunny", want); err != nil {
		t.Fatalf("SaveArtistCountry: %v", err)
	}

	got, err := s.GetArtistCountry("Bad Bunny")
	if err != nil {
		t.Fatalf("GetArtistCountry: %v", err)
	}
	if got == nil || *got != want {
		t.Errorf("country = %+v, want %+v", got, want)
	}

	missing, err := s.GetArtistCountry("Unknown")
	if err != nil {
		t.Fatalf("GetArtistCountry: %v", err)
	}
	if missing != nil {
		t.Errorf("country = %+v, want nil for uncached artist", missing)
	}
}
