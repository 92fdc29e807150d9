package analysis

import (
	"sort"

	"github.com/soundprint/soundprint/internal/config"
	"github.com/soundprint/soundprint/internal/listening"
)

// BuildProfile assembles the final listener profile: totals, date range,
// behavioral metrics, archetype classification, and the top artist/track
// rankings. Zero events is an EmptyInputError.
func BuildProfile(events []listening.EnrichedEvent, cfg config.Config, classifier *Classifier) (ListenerProfile, error) {
	if len(events) == 0 {
		return ListenerProfile{}, &listening.EmptyInputError{Stage: "profile"}
	}

	metrics, err := Compute(events, cfg)
	if err != nil {
		return ListenerProfile{}, err
	}
	archetype := classifier.Classify(metrics)

	start, end := events[0].Timestamp, events[0].Timestamp
	var totalMS int64
	for _, ev := range events {
		if ev.Timestamp.Before(start) {
			start = ev.Timestamp
		}
		if ev.Timestamp.After(end) {
			end = ev.Timestamp
		}
		totalMS += ev.MSPlayed
	}

	return ListenerProfile{
		TotalListens:        len(events),
		TotalListeningHours: float64(totalMS) / 3.6e6,
		DateRange:           DateRange{Start: start, End: end},
		Metrics:             metrics,
		Archetype:           archetype,
		TopArtists:          TopArtists(events, cfg.TopItemsLimit),
		TopTracks:           TopTracks(events, cfg.TopItemsLimit),
		Heatmap:             Heatmap(events),
	}, nil
}

// TopArtists ranks artists by play count, each with the union of genre tags
// seen on its plays in first-seen order. Ties keep first-seen artist order.
func TopArtists(events []listening.EnrichedEvent, limit int) []ArtistRank {
	type artistAgg struct {
		count     int
		genres    []string
		genreSeen map[string]struct{}
	}
	aggs := make(map[string]*artistAgg)
	var order []string

	for _, ev := range events {
		agg, ok := aggs[ev.Artist]
		if !ok {
			agg = &artistAgg{genreSeen: make(map[string]struct{})}
			aggs[ev.Artist] = agg
			order = append(order, ev.Artist)
		}
		agg.count++
		for _, g := range ev.Genres {
			if _, seen := agg.genreSeen[g]; !seen {
				agg.genreSeen[g] = struct{}{}
				agg.genres = append(agg.genres, g)
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return aggs[order[i]].count > aggs[order[j]].count
	})
	if len(order) > limit {
		order = order[:limit]
	}

	ranked := make([]ArtistRank, 0, len(order))
	for _, name := range order {
		agg := aggs[name]
		genres := agg.genres
		if genres == nil {
			genres = []string{}
		}
		ranked = append(ranked, ArtistRank{Name: name, Count: agg.count, Genres: genres})
	}
	return ranked
}

// TopTracks ranks distinct (track, artist) pairs by play count. Ties keep
// first-seen track order.
func TopTracks(events []listening.EnrichedEvent, limit int) []TrackRank {
	counts := make(map[trackKey]int)
	var order []trackKey
	for _, ev := range events {
		key := trackKey{track: ev.Track, artist: ev.Artist}
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}

	ranked := make([]TrackRank, 0, len(order))
	for _, key := range order {
		ranked = append(ranked, TrackRank{Name: key.track, Artist: key.artist, Count: counts[key]})
	}
	return ranked
}
