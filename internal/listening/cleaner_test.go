package listening

import "testing"

func makeEvent(ts, uri string, msPlayed int64) Event {
	return Event{
		TS:       ts,
		MSPlayed: msPlayed,
		Track:    "Track",
		Artist:   "Artist",
		TrackURI: uri,
	}
}

func TestCleanRemovesShortPlays(t *testing.T) {
	events := []Event{
		makeEvent("2023-05-01T10:00:00Z", "spotify:track:a", 60000),
		makeEvent("2023-05-01T10:01:00Z", "spotify:track:b", 29999),
		makeEvent("2023-05-01T10:02:00Z", "spotify:track:c", 30000),
		makeEvent("2023-05-01T10:03:00Z", "spotify:track:d", 0),
	}

	cleaned, stats := Clean(events, 30000)
	if len(cleaned) != 2 {
		t.Fatalf("got %d events, want 2", len(cleaned))
	}
	if stats.RemovedShort != 2 {
		t.Errorf("RemovedShort = %d, want 2", stats.RemovedShort)
	}
	if stats.OriginalCount != 4 || stats.FilteredCount != 2 {
		t.Errorf("counts = %d/%d, want 4/2", stats.OriginalCount, stats.FilteredCount)
	}
}

func TestCleanRemovesDuplicates(t *testing.T) {
	events := []Event{
		makeEvent("2023-05-01T10:00:00Z", "spotify:track:a", 60000),
		makeEvent("2023-05-01T10:00:00Z", "spotify:track:a", 60000),
		// Same URI, different timestamp: a genuine replay.
		makeEvent("2023-05-01T10:05:00Z", "spotify:track:a", 60000),
		// Same timestamp, different URI: not a duplicate.
		makeEvent("2023-05-01T10:00:00Z", "spotify:track:b", 60000),
	}

	cleaned, stats := Clean(events, 30000)
	if len(cleaned) != 3 {
		t.Fatalf("got %d events, want 3", len(cleaned))
	}
	if stats.RemovedDuplicates != 1 {
		t.Errorf("RemovedDuplicates = %d, want 1", stats.RemovedDuplicates)
	}
}

func TestCleanKeepsFirstDuplicate(t *testing.T) {
	first := makeEvent("2023-05-01T10:00:00Z", "spotify:track:a", 60000)
	first.Platform = "ios"
	second := makeEvent("2023-05-01T10:00:00Z", "spotify:track:a", 60000)
	second.Platform = "android"

	cleaned, _ := Clean([]Event{first, second}, 30000)
	if len(cleaned) != 1 {
		t.Fatalf("got %d events, want 1", len(cleaned))
	}
	if cleaned[0].Platform != "ios" {
		t.Errorf("kept %q, want the first occurrence", cleaned[0].Platform)
	}
}

func TestCleanIdempotent(t *testing.T) {
	events := []Event{
		makeEvent("2023-05-01T10:00:00Z", "spotify:track:a", 60000),
		makeEvent("2023-05-01T10:00:00Z", "spotify:track:a", 60000),
		makeEvent("2023-05-01T10:05:00Z", "spotify:track:b", 15000),
	}

	once, _ := Clean(events, 30000)
	twice, stats := Clean(once, 30000)
	if len(twice) != len(once) {
		t.Errorf("second pass changed count: %d -> %d", len(once), len(twice))
	}
	if stats.RemovedShort != 0 || stats.RemovedDuplicates != 0 {
		t.Errorf("second pass removed events: %+v", stats)
	}
}

func TestCleanEmpty(t *testing.T) {
	cleaned, stats := Clean(nil, 30000)
	if len(cleaned) != 0 {
		t.Errorf("got %d events, want 0", len(cleaned))
	}
	if stats.OriginalCount != 0 || stats.FilteredCount != 0 {
		t.Errorf("stats = %+v, want zeros", stats)
	}
}
