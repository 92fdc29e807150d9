// Package enrich derives per-event fields from cleaned events: parsed
// timestamps, track identifiers, completion ratios, and the active-listening
// flag. Genre tags and true durations arrive later from the metadata
// provider and are applied as separate, idempotent passes.
package enrich

import (
	"time"

	"github.com/soundprint/soundprint/internal/config"
	"github.com/soundprint/soundprint/internal/listening"
)

// Enrich computes derived fields for each cleaned event. Completion ratios
// use the assumed average track length until ApplyDurations supplies real
// ones. Genre lists start empty.
func Enrich(events []listening.Event, sc config.Scoring) []listening.EnrichedEvent {
	enriched := make([]listening.EnrichedEvent, 0, len(events))
	for _, ev := range events {
		ts, _ := time.Parse(listening.TimestampFormat, ev.TS)
		ratio := completionRatio(ev.MSPlayed, sc.AssumedTrackDurationMS)
		enriched = append(enriched, listening.EnrichedEvent{
			Event:           ev,
			Timestamp:       ts,
			TrackID:         listening.ExtractTrackID(ev.TrackURI),
			Genres:          []string{},
			CompletionRatio: ratio,
			Active:          isActive(ev, ratio, sc),
		})
	}
	return enriched
}

// ApplyDurations returns a new event set with completion ratio and active
// flag recomputed from real track durations, keyed by track identifier.
// Events without a known duration keep their existing values, so the pass is
// idempotent and safe to re-run as more durations arrive.
func ApplyDurations(events []listening.EnrichedEvent, durations map[string]int64, sc config.Scoring) []listening.EnrichedEvent {
	updated := make([]listening.EnrichedEvent, len(events))
	for i, ev := range events {
		updated[i] = ev
		duration, ok := durations[ev.TrackID]
		if !ok || duration <= 0 {
			continue
		}
		ratio := completionRatio(ev.MSPlayed, duration)
		updated[i].DurationMS = duration
		updated[i].CompletionRatio = ratio
		updated[i].Active = isActive(ev.Event, ratio, sc)
	}
	return updated
}

// ApplyGenres returns a new event set with genre tags attached from a
// trackID -> tags mapping. Events absent from the mapping keep an empty tag
// list; the fallback classifier covers them at metrics time.
func ApplyGenres(events []listening.EnrichedEvent, genres map[string][]string) []listening.EnrichedEvent {
	updated := make([]listening.EnrichedEvent, len(events))
	for i, ev := range events {
		updated[i] = ev
		if tags, ok := genres[ev.TrackID]; ok && len(tags) > 0 {
			updated[i].Genres = append([]string(nil), tags...)
		}
	}
	return updated
}

// UniqueTrackIDs returns the distinct track identifiers in first-seen order,
// for batching metadata lookups.
func UniqueTrackIDs(events []listening.EnrichedEvent) []string {
	seen := make(map[string]struct{}, len(events))
	var ids []string
	for _, ev := range events {
		if _, ok := seen[ev.TrackID]; ok {
			continue
		}
		seen[ev.TrackID] = struct{}{}
		ids = append(ids, ev.TrackID)
	}
	return ids
}

func completionRatio(playedMS, durationMS int64) float64 {
	ratio := float64(playedMS) / float64(durationMS)
	if ratio > 1 {
		return 1
	}
	return ratio
}

// isActive applies the skip and shuffle penalties to the completion ratio
// and thresholds the result.
func isActive(ev listening.Event, ratio float64, sc config.Scoring) bool {
	score := ratio
	if ev.Skipped {
		score -= sc.SkipPenalty
	}
	if ev.Shuffle {
		score -= sc.ShufflePenalty
	}
	return score >= sc.ActiveThreshold
}
