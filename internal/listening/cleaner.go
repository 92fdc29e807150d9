package listening

import "fmt"

// Clean filters noise out of a normalized event set. Two passes, in order:
// plays shorter than minPlayMS are dropped, then exact duplicates by
// (track URI, raw timestamp) are dropped keeping the first occurrence.
// Input order is preserved and no event is mutated.
func Clean(events []Event, minPlayMS int64) ([]Event, CleaningStats) {
	stats := CleaningStats{OriginalCount: len(events)}

	kept := make([]Event, 0, len(events))
	for _, ev := range events {
		if ev.MSPlayed < minPlayMS {
			stats.RemovedShort++
			continue
		}
		kept = append(kept, ev)
	}

	seen := make(map[string]struct{}, len(kept))
	cleaned := kept[:0]
	for _, ev := range kept {
		key := fmt.Sprintf("%s-%s", ev.TrackURI, ev.TS)
		if _, dup := seen[key]; dup {
			stats.RemovedDuplicates++
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, ev)
	}

	stats.FilteredCount = len(cleaned)
	return cleaned, stats
}
