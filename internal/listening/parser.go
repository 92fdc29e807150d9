package listening

import (
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// TimestampFormat is the timestamp layout used by Spotify exports.
const TimestampFormat = time.RFC3339

// ParseExport parses a single streaming-history JSON payload into normalized
// events. The payload may be a bare array or an object with a "data" array;
// anything else is a FormatError. Records missing required fields, or with
// fields of the wrong type, are dropped without error; large personal
// exports routinely contain a few corrupt entries.
func ParseExport(data []byte) ([]Event, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &FormatError{Reason: "not valid JSON"}
	}

	records, ok := payload.([]any)
	if !ok {
		obj, isObj := payload.(map[string]any)
		if !isObj {
			return nil, &FormatError{Reason: "expected an array of listening events"}
		}
		records, ok = obj["data"].([]any)
		if !ok {
			return nil, &FormatError{Reason: "expected an array of listening events"}
		}
	}

	events := make([]Event, 0, len(records))
	for _, rec := range records {
		if ev, ok := normalizeRecord(rec); ok {
			events = append(events, ev)
		}
	}
	return events, nil
}

// ParseFiles parses and combines several export payloads, re-sorting the
// combined set chronologically.
func ParseFiles(files [][]byte) ([]Event, error) {
	var all []Event
	for _, data := range files {
		events, err := ParseExport(data)
		if err != nil {
			return nil, err
		}
		all = append(all, events...)
	}
	SortChronologically(all)
	return all, nil
}

// SortChronologically orders events by timestamp, ascending, preserving the
// relative order of equal timestamps.
func SortChronologically(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		ti, _ := time.Parse(TimestampFormat, events[i].TS)
		tj, _ := time.Parse(TimestampFormat, events[j].TS)
		return ti.Before(tj)
	})
}

// ExtractTrackID returns the trailing colon-delimited segment of a Spotify
// URI ("spotify:track:abc123" -> "abc123"). A URI without colons is returned
// unchanged.
func ExtractTrackID(uri string) string {
	parts := strings.Split(uri, ":")
	if last := parts[len(parts)-1]; last != "" {
		return last
	}
	return uri
}

// normalizeRecord validates one raw record and coerces it into an Event.
// Required: ts (parseable timestamp string), ms_played (non-negative number),
// track name, artist name, and track URI as strings. Missing optional strings
// get placeholder defaults.
func normalizeRecord(rec any) (Event, bool) {
	m, ok := rec.(map[string]any)
	if !ok {
		return Event{}, false
	}

	ts, ok := m["ts"].(string)
	if !ok {
		return Event{}, false
	}
	if _, err := time.Parse(TimestampFormat, ts); err != nil {
		return Event{}, false
	}
	msPlayed, ok := m["ms_played"].(float64)
	if !ok || msPlayed < 0 {
		return Event{}, false
	}
	track, ok := m["master_metadata_track_name"].(string)
	if !ok {
		return Event{}, false
	}
	artist, ok := m["master_metadata_album_artist_name"].(string)
	if !ok {
		return Event{}, false
	}
	uri, ok := m["spotify_track_uri"].(string)
	if !ok || uri == "" {
		return Event{}, false
	}

	if track == "" {
		track = "Unknown Track"
	}
	if artist == "" {
		artist = "Unknown Artist"
	}
	platform, _ := m["platform"].(string)
	if platform == "" {
		platform = "unknown"
	}
	album, _ := m["master_metadata_album_album_name"].(string)
	reasonStart, _ := m["reason_start"].(string)
	reasonEnd, _ := m["reason_end"].(string)

	return Event{
		TS:          ts,
		MSPlayed:    int64(msPlayed),
		Shuffle:     truthy(m["shuffle"]),
		Skipped:     truthy(m["skipped"]),
		Track:       track,
		Artist:      artist,
		TrackURI:    uri,
		Platform:    platform,
		Album:       album,
		ReasonStart: reasonStart,
		ReasonEnd:   reasonEnd,
	}, true
}

// truthy coerces loosely-typed flag values the way the export's consumers
// expect: absent or zero-valued means false.
func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != "" && val != "false"
	default:
		return false
	}
}
