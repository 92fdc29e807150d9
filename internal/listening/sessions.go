package listening

import "time"

// BuildSessions groups chronologically-ordered enriched events into sessions:
// a new session starts whenever the gap to the previous event exceeds gap.
// Sessions are recomputed from scratch on every call.
func BuildSessions(events []EnrichedEvent, gap time.Duration) []Session {
	if len(events) == 0 {
		return nil
	}

	var sessions []Session
	start := 0
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.Sub(events[i-1].Timestamp) > gap {
			sessions = append(sessions, buildSession(events[start:i]))
			start = i
		}
	}
	sessions = append(sessions, buildSession(events[start:]))
	return sessions
}

func buildSession(events []EnrichedEvent) Session {
	var totalMS int64
	active := 0
	for _, ev := range events {
		totalMS += ev.MSPlayed
		if ev.Active {
			active++
		}
	}

	start := events[0].Timestamp
	end := events[len(events)-1].Timestamp
	return Session{
		Start:              start,
		End:                end,
		Duration:           end.Sub(start),
		TotalListeningMS:   totalMS,
		TrackCount:         len(events),
		AverageActiveScore: float64(active) / float64(len(events)),
	}
}
