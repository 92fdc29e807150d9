package listening

import (
	"errors"
	"testing"
)

func TestParseExportBareArray(t *testing.T) {
	data := []byte(`[
		{"ts": "2023-05-01T10:00:00Z", "ms_played": 120000, "shuffle": true, "skipped": false,
		 "master_metadata_track_name": "Tití Me Preguntó", "master_metadata_album_artist_name": "Bad Bunny",
		 "spotify_track_uri": "spotify:track:abc123", "platform": "ios"}
	]`)

	events, err := ParseExport(data)
	if err != nil {
		t.Fatalf("ParseExport: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	ev := events[0]
	if ev.Track != "Tití Me Preguntó" {
		t.Errorf("Track = %q", ev.Track)
	}
	if ev.Artist != "Bad Bunny" {
		t.Errorf("Artist = %q", ev.Artist)
	}
	if ev.MSPlayed != 120000 {
		t.Errorf("MSPlayed = %d", ev.MSPlayed)
	}
	if !ev.Shuffle || ev.Skipped {
		t.Errorf("Shuffle = %v, Skipped = %v", ev.Shuffle, ev.Skipped)
	}
}

func TestParseExportDataObject(t *testing.T) {
	data := []byte(`{"data": [
		{"ts": "2023-05-01T10:00:00Z", "ms_played": 60000,
		 "master_metadata_track_name": "Song", "master_metadata_album_artist_name": "Artist",
		 "spotify_track_uri": "spotify:track:x"}
	]}`)

	events, err := ParseExport(data)
	if err != nil {
		t.Fatalf("ParseExport: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
}

func TestParseExportFormatErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not JSON", `{{`},
		{"bare object", `{"foo": "bar"}`},
		{"string payload", `"events"`},
		{"number payload", `42`},
		{"data not array", `{"data": {"ts": "x"}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseExport([]byte(tc.data))
			var formatErr *FormatError
			if !errors.As(err, &formatErr) {
				t.Errorf("got %v, want FormatError", err)
			}
		})
	}
}

func TestParseExportDropsMalformedRecords(t *testing.T) {
	data := []byte(`[
		{"ts": "2023-05-01T10:00:00Z", "ms_played": 60000,
		 "master_metadata_track_name": "Good", "master_metadata_album_artist_name": "Artist",
		 "spotify_track_uri": "spotify:track:good"},
		{"ts": "not a timestamp", "ms_played": 60000,
		 "master_metadata_track_name": "Bad TS", "master_metadata_album_artist_name": "Artist",
		 "spotify_track_uri": "spotify:track:a"},
		{"ts": "2023-05-01T10:00:00Z", "ms_played": -5,
		 "master_metadata_track_name": "Negative", "master_metadata_album_artist_name": "Artist",
		 "spotify_track_uri": "spotify:track:b"},
		{"ts": "2023-05-01T10:00:00Z", "ms_played": "60000",
		 "master_metadata_track_name": "Stringy", "master_metadata_album_artist_name": "Artist",
		 "spotify_track_uri": "spotify:track:c"},
		{"ts": "2023-05-01T10:00:00Z", "ms_played": 60000,
		 "master_metadata_track_name": "No URI", "master_metadata_album_artist_name": "Artist"},
		"not an object"
	]`)

	events, err := ParseExport(data)
	if err != nil {
		t.Fatalf("ParseExport: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Track != "Good" {
		t.Errorf("kept %q, want the valid record", events[0].Track)
	}
}

func TestParseExportDefaults(t *testing.T) {
	data := []byte(`[
		{"ts": "2023-05-01T10:00:00Z", "ms_played": 60000,
		 "master_metadata_track_name": "", "master_metadata_album_artist_name": "",
		 "spotify_track_uri": "spotify:track:x"}
	]`)

	events, err := ParseExport(data)
	if err != nil {
		t.Fatalf("ParseExport: %v", err)
	}
	if events[0].Track != "Unknown Track" {
		t.Errorf("Track = %q, want Unknown Track", events[0].Track)
	}
	if events[0].Artist != "Unknown Artist" {
		t.Errorf("Artist = %q, want Unknown Artist", events[0].Artist)
	}
	if events[0].Platform != "unknown" {
		t.Errorf("Platform = %q, want unknown", events[0].Platform)
	}
}

func TestParseFilesSortsCombined(t *testing.T) {
	first := []byte(`[
		{"ts": "2023-05-02T10:00:00Z", "ms_played": 60000,
		 "master_metadata_track_name": "Later", "master_metadata_album_artist_name": "A",
		 "spotify_track_uri": "spotify:track:2"}
	]`)
	second := []byte(`[
		{"ts": "2023-05-01T10:00:00Z", "ms_played": 60000,
		 "master_metadata_track_name": "Earlier", "master_metadata_album_artist_name": "A",
		 "spotify_track_uri": "spotify:track:1"}
	]`)

	events, err := ParseFiles([][]byte{first, second})
	if err != nil {
		t.Fatalf("ParseFiles: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Track != "Earlier" || events[1].Track != "Later" {
		t.Errorf("order = %q, %q; want Earlier, Later", events[0].Track, events[1].Track)
	}
}

func TestParseFilesPropagatesFormatError(t *testing.T) {
	good := []byte(`[]`)
	bad := []byte(`{"nope": true}`)

	_, err := ParseFiles([][]byte{good, bad})
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Errorf("got %v, want FormatError", err)
	}
}

func TestExtractTrackID(t *testing.T) {
	cases := []struct {
		uri  string
		want string
	}{
		{"spotify:track:4iZ4pt7kvcaH6Yo8UoZ4s2", "4iZ4pt7kvcaH6Yo8UoZ4s2"},
		{"no-colons", "no-colons"},
		{"trailing:", "trailing:"},
	}
	for _, tc := range cases {
		if got := ExtractTrackID(tc.uri); got != tc.want {
			t.Errorf("ExtractTrackID(%q) = %q, want %q", tc.uri, got, tc.want)
		}
	}
}

func TestTruthyCoercion(t *testing.T) {
	data := []byte(`[
		{"ts": "2023-05-01T10:00:00Z", "ms_played": 60000, "shuffle": 1, "skipped": "false",
		 "master_metadata_track_name": "T", "master_metadata_album_artist_name": "A",
		 "spotify_track_uri": "spotify:track:x"}
	]`)

	events, err := ParseExport(data)
	if err != nil {
		t.Fatalf("ParseExport: %v", err)
	}
	if !events[0].Shuffle {
		t.Error("numeric 1 should coerce to true")
	}
	if events[0].Skipped {
		t.Error("string \"false\" should coerce to false")
	}
}
