// Package config holds the tunable thresholds for the analysis pipeline.
// Every constant that shapes cleaning, enrichment, scoring, or classification
// lives here so behavior is reproducible and testable per setting.
package config

import "time"

// Cleaning holds thresholds applied while filtering raw events.
type Cleaning struct {
	// MinPlayDurationMS drops plays shorter than this as accidental noise.
	MinPlayDurationMS int64
	// SessionGap is the maximum gap between events within one session.
	SessionGap time.Duration
}

// Scoring holds the active-listening score parameters.
type Scoring struct {
	// AssumedTrackDurationMS is used for completion ratio when the real
	// track duration is unknown.
	AssumedTrackDurationMS int64
	ActiveThreshold        float64
	SkipPenalty            float64
	ShufflePenalty         float64
}

// GenreCategory is one entry of the ordered genre-normalization table.
type GenreCategory struct {
	Name     string
	Variants []string
}

// Loyalty holds the thresholds that map loyalty metrics to a label.
type Loyalty struct {
	HighTopArtistThreshold  float64
	HighGiniThreshold       float64
	LowExplorationThreshold float64
}

// Provider holds the batching and retry behavior for external lookups.
type Provider struct {
	BatchSize   int
	MaxRetries  uint
	RetryDelay  time.Duration
	Cooldown    time.Duration
	Concurrency int
}

// Config is the full pipeline configuration. Default returns the reference
// values; commands override individual fields from flags or the config file.
type Config struct {
	Cleaning Cleaning
	Scoring  Scoring
	Loyalty  Loyalty
	Provider Provider

	// GenreMapping lists coarse categories with the tag substrings that
	// collapse into them. Matching is case-insensitive on the raw tag and
	// categories are tried in order, first match wins, so "indie rock"
	// lands in "rock" rather than "indie".
	GenreMapping []GenreCategory

	// TopItemsLimit caps ranked lists (top artists, tracks, genres).
	TopItemsLimit int
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Cleaning: Cleaning{
			MinPlayDurationMS: 30000,
			SessionGap:        30 * time.Minute,
		},
		Scoring: Scoring{
			AssumedTrackDurationMS: 180000,
			ActiveThreshold:        0.8,
			SkipPenalty:            0.3,
			ShufflePenalty:         0.1,
		},
		Loyalty: Loyalty{
			HighTopArtistThreshold:  0.5,
			HighGiniThreshold:       0.7,
			LowExplorationThreshold: 0.3,
		},
		Provider: Provider{
			BatchSize:   50,
			MaxRetries:  3,
			RetryDelay:  time.Second,
			Cooldown:    200 * time.Millisecond,
			Concurrency: 4,
		},
		GenreMapping: []GenreCategory{
			{Name: "pop", Variants: []string{"pop", "dance pop", "electropop", "synth-pop"}},
			{Name: "rock", Variants: []string{"rock", "indie rock", "alternative rock", "classic rock"}},
			{Name: "hip-hop", Variants: []string{"hip hop", "rap", "trap", "conscious hip hop"}},
			{Name: "electronic", Variants: []string{"electronic", "edm", "house", "techno", "dubstep"}},
			{Name: "r&b", Variants: []string{"r&b", "contemporary r&b", "soul", "neo soul"}},
			{Name: "indie", Variants: []string{"indie", "indie pop", "indie folk"}},
			{Name: "jazz", Variants: []string{"jazz", "contemporary jazz", "smooth jazz"}},
			{Name: "classical", Variants: []string{"classical", "modern classical", "baroque"}},
			{Name: "country", Variants: []string{"country", "contemporary country", "country road"}},
			{Name: "folk", Variants: []string{"folk", "folk rock", "americana"}},
			{Name: "metal", Variants: []string{"metal", "heavy metal", "death metal", "metalcore"}},
			{Name: "latin", Variants: []string{"latin", "reggaeton", "latin pop", "salsa"}},
		},
		TopItemsLimit: 10,
	}
}
