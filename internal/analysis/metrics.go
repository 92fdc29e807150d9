// Package analysis computes aggregate behavioral metrics over enriched play
// events and classifies the result into a listener archetype.
package analysis

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/soundprint/soundprint/internal/config"
	"github.com/soundprint/soundprint/internal/enrich"
	"github.com/soundprint/soundprint/internal/listening"
)

// EventActiveScore is the pre-threshold active-listening score for a single
// event: completion ratio minus skip/shuffle penalties, clamped to [0,1].
func EventActiveScore(ev listening.EnrichedEvent, sc config.Scoring) float64 {
	score := ev.CompletionRatio
	if ev.Skipped {
		score -= sc.SkipPenalty
	}
	if ev.Shuffle {
		score -= sc.ShufflePenalty
	}
	return math.Max(0, math.Min(1, score))
}

// Compute derives the full behavioral metrics record. All statistics are
// ratios, so zero events is an EmptyInputError.
func Compute(events []listening.EnrichedEvent, cfg config.Config) (BehavioralMetrics, error) {
	if len(events) == 0 {
		return BehavioralMetrics{}, &listening.EmptyInputError{Stage: "metrics"}
	}

	var activeSum, completionSum float64
	shuffled, skipped := 0, 0
	for _, ev := range events {
		activeSum += EventActiveScore(ev, cfg.Scoring)
		completionSum += ev.CompletionRatio
		if ev.Shuffle {
			shuffled++
		}
		if ev.Skipped {
			skipped++
		}
	}

	n := float64(len(events))
	repeats, err := RepeatPatterns(events, cfg.TopItemsLimit)
	if err != nil {
		return BehavioralMetrics{}, err
	}
	loyalty, err := ArtistLoyalty(events, cfg)
	if err != nil {
		return BehavioralMetrics{}, err
	}
	genres, err := GenreDistribution(events, cfg)
	if err != nil {
		return BehavioralMetrics{}, err
	}

	return BehavioralMetrics{
		ActiveScore:            activeSum / n,
		ShuffleRate:            float64(shuffled) / n,
		SkipRate:               float64(skipped) / n,
		AverageCompletionRatio: completionSum / n,
		AverageSessionLength:   averageSessionMinutes(events, cfg.Cleaning.SessionGap),
		RepeatMetrics:          repeats,
		LoyaltyScore:           loyalty,
		GenreStats:             genres,
	}, nil
}

func averageSessionMinutes(events []listening.EnrichedEvent, gap time.Duration) float64 {
	sessions := listening.BuildSessions(events, gap)
	if len(sessions) == 0 {
		return 0
	}
	var total float64
	for _, s := range sessions {
		total += s.Duration.Minutes()
	}
	return total / float64(len(sessions))
}

type trackKey struct {
	track  string
	artist string
}

// RepeatPatterns groups events by (track, artist) and measures repetition.
// RepeatRate is the fraction of distinct tracks with more than one play.
// Ties in the top-repeated list go to the track seen first.
func RepeatPatterns(events []listening.EnrichedEvent, limit int) (RepeatMetrics, error) {
	if len(events) == 0 {
		return RepeatMetrics{}, &listening.EmptyInputError{Stage: "repeat analysis"}
	}

	counts := make(map[trackKey]int)
	timestamps := make(map[trackKey][]time.Time)
	var order []trackKey
	for _, ev := range events {
		key := trackKey{track: ev.Track, artist: ev.Artist}
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
		timestamps[key] = append(timestamps[key], ev.Timestamp)
	}

	var repeated []RepeatedTrack
	for _, key := range order {
		if counts[key] > 1 {
			repeated = append(repeated, RepeatedTrack{Track: key.track, Artist: key.artist, Count: counts[key]})
		}
	}
	totalRepeats := len(repeated)
	sort.SliceStable(repeated, func(i, j int) bool {
		return repeated[i].Count > repeated[j].Count
	})
	if len(repeated) > limit {
		repeated = repeated[:limit]
	}

	// Adjacent gaps within each repeated track's occurrence list, in hours.
	var totalGap time.Duration
	pairs := 0
	for _, key := range order {
		ts := timestamps[key]
		for i := 1; i < len(ts); i++ {
			totalGap += ts[i].Sub(ts[i-1])
			pairs++
		}
	}
	var avgBetween float64
	if pairs > 0 {
		avgBetween = totalGap.Hours() / float64(pairs)
	}

	return RepeatMetrics{
		TotalRepeats:              totalRepeats,
		RepeatRate:                float64(totalRepeats) / float64(len(order)),
		MostRepeatedTracks:        repeated,
		AverageTimeBetweenRepeats: avgBetween,
		SameArtistStreaks:         artistStreaks(events, limit),
	}, nil
}

// artistStreaks finds runs of 3+ consecutive events by the same artist in
// chronological order, longest first.
func artistStreaks(events []listening.EnrichedEvent, limit int) []ArtistStreak {
	var streaks []ArtistStreak
	current := ""
	length := 0
	var start time.Time

	for _, ev := range events {
		if ev.Artist == current {
			length++
			continue
		}
		if length >= 3 {
			streaks = append(streaks, ArtistStreak{Artist: current, Length: length, StartTime: start})
		}
		current = ev.Artist
		length = 1
		start = ev.Timestamp
	}
	if length >= 3 {
		streaks = append(streaks, ArtistStreak{Artist: current, Length: length, StartTime: start})
	}

	sort.SliceStable(streaks, func(i, j int) bool {
		return streaks[i].Length > streaks[j].Length
	})
	if len(streaks) > limit {
		streaks = streaks[:limit]
	}
	return streaks
}

// ArtistLoyalty measures how concentrated plays are across artists.
func ArtistLoyalty(events []listening.EnrichedEvent, cfg config.Config) (LoyaltyScore, error) {
	if len(events) == 0 {
		return LoyaltyScore{}, &listening.EmptyInputError{Stage: "loyalty analysis"}
	}

	counts := make(map[string]int)
	var order []string
	for _, ev := range events {
		if counts[ev.Artist] == 0 {
			order = append(order, ev.Artist)
		}
		counts[ev.Artist]++
	}

	ranked := append([]string(nil), order...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	topN := cfg.TopItemsLimit
	if topN > len(ranked) {
		topN = len(ranked)
	}
	topCount := 0
	for _, artist := range ranked[:topN] {
		topCount += counts[artist]
	}

	values := make([]int, 0, len(counts))
	for _, artist := range order {
		values = append(values, counts[artist])
	}
	gini := giniCoefficient(values)

	elapsed := events[len(events)-1].Timestamp.Sub(events[0].Timestamp)
	weeks := elapsed.Hours() / (24 * 7)
	if weeks < 1 {
		weeks = 1
	}

	exploration := 1 - gini
	label := LabelBalanced
	switch {
	case float64(topCount)/float64(len(events)) > cfg.Loyalty.HighTopArtistThreshold:
		label = LabelHighlyLoyal
	case exploration > 1-cfg.Loyalty.LowExplorationThreshold:
		label = LabelExplorer
	}

	return LoyaltyScore{
		TopArtistPercentage:  float64(topCount) / float64(len(events)),
		UniqueArtistsPerWeek: float64(len(counts)) / weeks,
		GiniCoefficient:      gini,
		ExplorationScore:     exploration,
		LoyaltyLabel:         label,
	}, nil
}

// giniCoefficient uses the rank-weighted formula over per-artist play
// counts. A single artist yields 0 by construction; that degenerate value is
// part of the classifier's calibration and must not be special-cased.
func giniCoefficient(values []int) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := append([]int(nil), values...)
	sort.Ints(sorted)

	n := len(sorted)
	sum := 0
	for _, v := range sorted {
		sum += v
	}
	if sum == 0 {
		return 0
	}

	numerator := 0
	for i, v := range sorted {
		numerator += (2*(i+1) - n - 1) * v
	}
	return float64(numerator) / float64(n*sum)
}

// GenreDistribution counts normalized genre tags across events and derives
// diversity and temporal breakdowns. Events without tags fall back to the
// artist-name heuristic. Percentages and entropy probabilities use the event
// count as denominator: an event contributes one count per tag, so the tag
// total may exceed the event total.
func GenreDistribution(events []listening.EnrichedEvent, cfg config.Config) (GenreStats, error) {
	if len(events) == 0 {
		return GenreStats{}, &listening.EmptyInputError{Stage: "genre analysis"}
	}

	counts := make(map[string]int)
	var order []string
	byHour := make(map[int]map[string]int)
	byDate := make(map[string]map[string]int)

	for _, ev := range events {
		genres := ev.Genres
		if len(genres) == 0 {
			genres = enrich.FallbackGenres(ev.Artist)
		}

		hour := ev.Timestamp.Hour()
		dateKey := ev.Timestamp.UTC().Format("2006-01-02")
		for _, g := range genres {
			genre := normalizeGenre(g, cfg.GenreMapping)
			if counts[genre] == 0 {
				order = append(order, genre)
			}
			counts[genre]++

			if byHour[hour] == nil {
				byHour[hour] = make(map[string]int)
			}
			byHour[hour][genre]++

			if byDate[dateKey] == nil {
				byDate[dateKey] = make(map[string]int)
			}
			byDate[dateKey][genre]++
		}
	}

	// No tags anywhere: an explicitly empty record, not entropy over nothing.
	if len(counts) == 0 {
		return GenreStats{GenreByTimeOfDay: map[int]map[string]int{}}, nil
	}

	total := len(events)
	distribution := make([]GenreCount, 0, len(order))
	for _, genre := range order {
		distribution = append(distribution, GenreCount{
			Genre:      genre,
			Count:      counts[genre],
			Percentage: float64(counts[genre]) / float64(total),
		})
	}
	sort.SliceStable(distribution, func(i, j int) bool {
		return distribution[i].Count > distribution[j].Count
	})

	topGenres := make([]string, 0, cfg.TopItemsLimit)
	for i := 0; i < len(distribution) && i < cfg.TopItemsLimit; i++ {
		topGenres = append(topGenres, distribution[i].Genre)
	}

	evolution := make([]GenreDay, 0, len(byDate))
	for dateKey, genres := range byDate {
		date, _ := time.Parse("2006-01-02", dateKey)
		evolution = append(evolution, GenreDay{Date: date, Genres: genres})
	}
	sort.Slice(evolution, func(i, j int) bool {
		return evolution[i].Date.Before(evolution[j].Date)
	})

	return GenreStats{
		Distribution:     distribution,
		TopGenres:        topGenres,
		GenreDiversity:   shannonEntropy(counts, total),
		GenreEvolution:   evolution,
		GenreByTimeOfDay: byHour,
	}, nil
}

// normalizeGenre collapses a raw tag into the first coarse category whose
// synonym is a substring of the lowercased tag. Unmatched tags pass through
// with their original casing.
func normalizeGenre(genre string, mapping []config.GenreCategory) string {
	lower := strings.ToLower(genre)
	for _, category := range mapping {
		for _, variant := range category.Variants {
			if strings.Contains(lower, variant) {
				return category.Name
			}
		}
	}
	return genre
}

// shannonEntropy is the base-2 entropy of the genre counts with the event
// total as the probability denominator.
func shannonEntropy(counts map[string]int, total int) float64 {
	entropy := 0.0
	for _, count := range counts {
		if count > 0 {
			p := float64(count) / float64(total)
			entropy -= p * math.Log2(p)
		}
	}
	return entropy
}

// Heatmap counts events per (day-of-week, hour-of-day) cell. Only non-zero
// cells are returned, ordered by day then hour.
func Heatmap(events []listening.EnrichedEvent) []HeatmapCell {
	cells := make(map[[2]int]int)
	for _, ev := range events {
		day := int(ev.Timestamp.Weekday())
		hour := ev.Timestamp.Hour()
		cells[[2]int{day, hour}]++
	}

	result := make([]HeatmapCell, 0, len(cells))
	for key, count := range cells {
		result = append(result, HeatmapCell{Day: key[0], Hour: key[1], Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Day != result[j].Day {
			return result[i].Day < result[j].Day
		}
		return result[i].Hour < result[j].Hour
	})
	return result
}
