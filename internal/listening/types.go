// Package listening defines the event model for Spotify streaming-history
// exports and the early pipeline stages that operate on it: parsing raw
// export records into normalized events, cleaning noise, and grouping
// events into sessions.
package listening

import "time"

// Event is a normalized play event from a streaming-history export. Field
// names follow the Spotify extended-history JSON schema.
type Event struct {
	TS          string `json:"ts" yaml:"ts"`
	MSPlayed    int64  `json:"ms_played" yaml:"ms_played"`
	Shuffle     bool   `json:"shuffle" yaml:"shuffle"`
	Skipped     bool   `json:"skipped" yaml:"skipped"`
	Track       string `json:"master_metadata_track_name" yaml:"track"`
	Artist      string `json:"master_metadata_album_artist_name" yaml:"artist"`
	TrackURI    string `json:"spotify_track_uri" yaml:"track_uri"`
	Platform    string `json:"platform" yaml:"platform"`
	Album       string `json:"master_metadata_album_album_name,omitempty" yaml:"album,omitempty"`
	ReasonStart string `json:"reason_start,omitempty" yaml:"reason_start,omitempty"`
	ReasonEnd   string `json:"reason_end,omitempty" yaml:"reason_end,omitempty"`
}

// EnrichedEvent is an Event plus derived fields. DurationMS is zero until a
// real track duration arrives from the metadata provider; CompletionRatio is
// then based on the assumed average track length.
type EnrichedEvent struct {
	Event

	Timestamp       time.Time `json:"timestamp"`
	TrackID         string    `json:"track_id"`
	Genres          []string  `json:"genres"`
	DurationMS      int64     `json:"duration_ms,omitempty"`
	CompletionRatio float64   `json:"completion_ratio"`
	Active          bool      `json:"active"`
}

// CleaningStats reports what the cleaner removed and why.
type CleaningStats struct {
	OriginalCount     int `json:"originalCount" yaml:"original_count"`
	FilteredCount     int `json:"filteredCount" yaml:"filtered_count"`
	RemovedShort      int `json:"removedShort" yaml:"removed_short"`
	RemovedDuplicates int `json:"removedDuplicates" yaml:"removed_duplicates"`
	SessionCount      int `json:"sessionCount" yaml:"session_count"`
}

// Session is a maximal run of events whose consecutive gaps stay under the
// configured threshold. Sessions are derived and never mutated.
type Session struct {
	Start              time.Time     `json:"start"`
	End                time.Time     `json:"end"`
	Duration           time.Duration `json:"duration"`
	TotalListeningMS   int64         `json:"totalListeningMs"`
	TrackCount         int           `json:"trackCount"`
	AverageActiveScore float64       `json:"averageActiveScore"`
}
