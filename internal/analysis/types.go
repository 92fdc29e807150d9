package analysis

import "time"

// RepeatedTrack is a distinct track with its play count.
type RepeatedTrack struct {
	Track  string `json:"track" yaml:"track"`
	Artist string `json:"artist" yaml:"artist"`
	Count  int    `json:"count" yaml:"count"`
}

// ArtistStreak is a run of 3+ consecutive plays of the same artist.
type ArtistStreak struct {
	Artist    string    `json:"artist" yaml:"artist"`
	Length    int       `json:"length" yaml:"length"`
	StartTime time.Time `json:"startTime" yaml:"start_time"`
}

// RepeatMetrics describes repeat-listening behavior. RepeatRate is the
// fraction of distinct tracks played more than once: breadth of repetition,
// not volume.
type RepeatMetrics struct {
	TotalRepeats              int             `json:"totalRepeats" yaml:"total_repeats"`
	RepeatRate                float64         `json:"repeatRate" yaml:"repeat_rate"`
	MostRepeatedTracks        []RepeatedTrack `json:"mostRepeatedTracks" yaml:"most_repeated_tracks"`
	AverageTimeBetweenRepeats float64         `json:"averageTimeBetweenRepeats" yaml:"average_time_between_repeats"`
	SameArtistStreaks         []ArtistStreak  `json:"sameArtistStreaks" yaml:"same_artist_streaks"`
}

// Loyalty labels.
const (
	LabelHighlyLoyal = "Highly Loyal"
	LabelBalanced    = "Balanced"
	LabelExplorer    = "Explorer"
)

// LoyaltyScore measures how concentrated listening is on favorite artists.
type LoyaltyScore struct {
	TopArtistPercentage  float64 `json:"topArtistPercentage" yaml:"top_artist_percentage"`
	UniqueArtistsPerWeek float64 `json:"uniqueArtistsPerWeek" yaml:"unique_artists_per_week"`
	GiniCoefficient      float64 `json:"giniCoefficient" yaml:"gini_coefficient"`
	ExplorationScore     float64 `json:"explorationScore" yaml:"exploration_score"`
	LoyaltyLabel         string  `json:"loyaltyLabel" yaml:"loyalty_label"`
}

// GenreCount is one entry of the genre distribution.
type GenreCount struct {
	Genre      string  `json:"genre" yaml:"genre"`
	Count      int     `json:"count" yaml:"count"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// GenreDay holds per-genre counts for one calendar day.
type GenreDay struct {
	Date   time.Time      `json:"date" yaml:"date"`
	Genres map[string]int `json:"genres" yaml:"genres"`
}

// GenreStats describes the genre distribution and its diversity.
// GenreByTimeOfDay is keyed by hour of day 0-23; absent keys mean zero.
type GenreStats struct {
	Distribution     []GenreCount           `json:"distribution" yaml:"distribution"`
	TopGenres        []string               `json:"topGenres" yaml:"top_genres"`
	GenreDiversity   float64                `json:"genreDiversity" yaml:"genre_diversity"`
	GenreEvolution   []GenreDay             `json:"genreEvolution" yaml:"genre_evolution"`
	GenreByTimeOfDay map[int]map[string]int `json:"genreByTimeOfDay" yaml:"genre_by_time_of_day"`
}

// BehavioralMetrics is the aggregate behavioral record, a pure function of
// an enriched event collection.
type BehavioralMetrics struct {
	ActiveScore            float64       `json:"activeScore" yaml:"active_score"`
	ShuffleRate            float64       `json:"shuffleRate" yaml:"shuffle_rate"`
	SkipRate               float64       `json:"skipRate" yaml:"skip_rate"`
	AverageCompletionRatio float64       `json:"averageCompletionRatio" yaml:"average_completion_ratio"`
	AverageSessionLength   float64       `json:"averageSessionLength" yaml:"average_session_length"`
	RepeatMetrics          RepeatMetrics `json:"repeatMetrics" yaml:"repeat_metrics"`
	LoyaltyScore           LoyaltyScore  `json:"loyaltyScore" yaml:"loyalty_score"`
	GenreStats             GenreStats    `json:"genreStats" yaml:"genre_stats"`
}

// ListenerArchetype is the classification result. Secondary is empty when no
// other rule scored above the secondary threshold.
type ListenerArchetype struct {
	Primary     string   `json:"primary" yaml:"primary"`
	Secondary   string   `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Confidence  float64  `json:"confidence" yaml:"confidence"`
	Traits      []string `json:"traits" yaml:"traits"`
	Description string   `json:"description" yaml:"description"`
}

// DateRange is the span covered by the analyzed events.
type DateRange struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// ArtistRank is a top-artist entry with the genre set seen on its plays.
type ArtistRank struct {
	Name   string   `json:"name" yaml:"name"`
	Count  int      `json:"count" yaml:"count"`
	Genres []string `json:"genres" yaml:"genres"`
}

// TrackRank is a top-track entry.
type TrackRank struct {
	Name   string `json:"name" yaml:"name"`
	Artist string `json:"artist" yaml:"artist"`
	Count  int    `json:"count" yaml:"count"`
}

// ListenerProfile is the top-level analysis result. Built once per completed
// analysis; it has no lifecycle beyond construction and serialization.
type ListenerProfile struct {
	TotalListens        int               `json:"totalListens" yaml:"total_listens"`
	TotalListeningHours float64           `json:"totalListeningHours" yaml:"total_listening_hours"`
	DateRange           DateRange         `json:"dateRange" yaml:"date_range"`
	Metrics             BehavioralMetrics `json:"metrics" yaml:"metrics"`
	Archetype           ListenerArchetype `json:"archetype" yaml:"archetype"`
	TopArtists          []ArtistRank      `json:"topArtists" yaml:"top_artists"`
	TopTracks           []TrackRank       `json:"topTracks" yaml:"top_tracks"`
	Heatmap             []HeatmapCell     `json:"listeningHeatmap" yaml:"listening_heatmap"`
}

// HeatmapCell is one non-zero cell of the day-of-week x hour-of-day activity
// heatmap. Day 0 is Sunday. Consumers fill in the zero cells.
type HeatmapCell struct {
	Day   int `json:"day" yaml:"day"`
	Hour  int `json:"hour" yaml:"hour"`
	Count int `json:"count" yaml:"count"`
}
