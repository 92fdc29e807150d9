package enrich

import (
	"testing"
	"time"

	"github.com/soundprint/soundprint/internal/config"
	"github.com/soundprint/soundprint/internal/listening"
)

func testScoring() config.Scoring {
	return config.Default().Scoring
}

func baseEvent(msPlayed int64) listening.Event {
	return listening.Event{
		TS:       "2023-05-01T10:00:00Z",
		MSPlayed: msPlayed,
		Track:    "Track",
		Artist:   "Artist",
		TrackURI: "spotify:track:abc123",
	}
}

func TestEnrichDerivedFields(t *testing.T) {
	events := []listening.Event{baseEvent(90000)}

	enriched := Enrich(events, testScoring())
	if len(enriched) != 1 {
		t.Fatalf("got %d events, want 1", len(enriched))
	}

	ev := enriched[0]
	want := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	if !ev.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", ev.Timestamp, want)
	}
	if ev.TrackID != "abc123" {
		t.Errorf("TrackID = %q, want abc123", ev.TrackID)
	}
	if ev.CompletionRatio != 0.5 {
		t.Errorf("CompletionRatio = %v, want 0.5 (assumed 180s duration)", ev.CompletionRatio)
	}
	if ev.Genres == nil || len(ev.Genres) != 0 {
		t.Errorf("Genres = %v, want empty non-nil slice", ev.Genres)
	}
}

func TestEnrichCompletionClamped(t *testing.T) {
	enriched := Enrich([]listening.Event{baseEvent(400000)}, testScoring())
	if enriched[0].CompletionRatio != 1 {
		t.Errorf("CompletionRatio = %v, want clamped to 1", enriched[0].CompletionRatio)
	}
}

func TestEnrichActiveFlag(t *testing.T) {
	cases := []struct {
		name     string
		msPlayed int64
		skipped  bool
		shuffle  bool
		want     bool
	}{
		{"full play", 180000, false, false, true},
		{"exactly at threshold", 144000, false, false, true},
		{"below threshold", 143999, false, false, false},
		{"full play skipped", 180000, true, false, false},
		{"full play shuffled", 180000, false, true, true},
		{"shuffle pushes below", 160000, false, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := baseEvent(tc.msPlayed)
			ev.Skipped = tc.skipped
			ev.Shuffle = tc.shuffle
			enriched := Enrich([]listening.Event{ev}, testScoring())
			if enriched[0].Active != tc.want {
				t.Errorf("Active = %v, want %v", enriched[0].Active, tc.want)
			}
		})
	}
}

func TestApplyDurationsRecomputes(t *testing.T) {
	enriched := Enrich([]listening.Event{baseEvent(90000)}, testScoring())

	updated := ApplyDurations(enriched, map[string]int64{"abc123": 90000}, testScoring())
	if updated[0].CompletionRatio != 1 {
		t.Errorf("CompletionRatio = %v, want 1 with the real duration", updated[0].CompletionRatio)
	}
	if !updated[0].Active {
		t.Error("full completion should be active")
	}
	if updated[0].DurationMS != 90000 {
		t.Errorf("DurationMS = %d, want 90000", updated[0].DurationMS)
	}

	// Original slice untouched.
	if enriched[0].CompletionRatio != 0.5 {
		t.Errorf("input mutated: CompletionRatio = %v", enriched[0].CompletionRatio)
	}
}

func TestApplyDurationsUnknownTrackUnchanged(t *testing.T) {
	enriched := Enrich([]listening.Event{baseEvent(90000)}, testScoring())

	updated := ApplyDurations(enriched, map[string]int64{"other": 90000}, testScoring())
	if updated[0].CompletionRatio != 0.5 {
		t.Errorf("CompletionRatio = %v, want 0.5 unchanged", updated[0].CompletionRatio)
	}
	if updated[0].DurationMS != 0 {
		t.Errorf("DurationMS = %d, want 0", updated[0].DurationMS)
	}
}

func TestApplyDurationsIdempotent(t *testing.T) {
	enriched := Enrich([]listening.Event{baseEvent(90000)}, testScoring())
	durations := map[string]int64{"abc123": 120000}

	once := ApplyDurations(enriched, durations, testScoring())
	twice := ApplyDurations(once, durations, testScoring())
	if once[0].CompletionRatio != twice[0].CompletionRatio {
		t.Errorf("re-applying changed ratio: %v -> %v", once[0].CompletionRatio, twice[0].CompletionRatio)
	}
	if once[0].Active != twice[0].Active {
		t.Errorf("re-applying changed active flag")
	}
}

func TestApplyGenres(t *testing.T) {
	enriched := Enrich([]listening.Event{baseEvent(90000)}, testScoring())

	updated := ApplyGenres(enriched, map[string][]string{"abc123": {"reggaeton", "latin pop"}})
	if len(updated[0].Genres) != 2 {
		t.Fatalf("Genres = %v, want 2 tags", updated[0].Genres)
	}
	if updated[0].Genres[0] != "reggaeton" {
		t.Errorf("Genres[0] = %q", updated[0].Genres[0])
	}

	// Tracks absent from the mapping keep their empty list.
	missing := ApplyGenres(enriched, map[string][]string{"other": {"rock"}})
	if len(missing[0].Genres) != 0 {
		t.Errorf("Genres = %v, want empty", missing[0].Genres)
	}
}

func TestUniqueTrackIDsFirstSeenOrder(t *testing.T) {
	mk := func(uri string) listening.Event {
		ev := baseEvent(90000)
		ev.TrackURI = uri
		return ev
	}
	enriched := Enrich([]listening.Event{
		mk("spotify:track:b"), mk("spotify:track:a"), mk("spotify:track:b"), mk("spotify:track:c"),
	}, testScoring())

	ids := UniqueTrackIDs(enriched)
	want := []string{"b", "a", "c"}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestFallbackGenres(t *testing.T) {
	cases := []struct {
		artist string
		want   string
	}{
		{"Bad Bunny", "Latin"},
		{"KAROL G", "Latin"},
		{"Michael Jackson", "Soul"},
		{"Whitney Houston", "Soul"},
		{"Radiohead", "Various"},
		{"", "Various"},
	}
	for _, tc := range cases {
		got := FallbackGenres(tc.artist)
		if len(got) != 1 || got[0] != tc.want {
			t.Errorf("FallbackGenres(%q) = %v, want [%s]", tc.artist, got, tc.want)
		}
	}
}
