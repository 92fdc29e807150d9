package analysis

import "sort"

// Criterion is one weighted threshold check within a rule.
type Criterion struct {
	Weight float64
	Test   func(m BehavioralMetrics) bool
}

// Rule scores a behavioral profile against one archetype. The criteria
// weights sum to at most 1; Score clamps anyway.
type Rule struct {
	Name        string
	Traits      []string
	Description string
	Criteria    []Criterion
}

// Score evaluates the rule's criteria and returns the clamped sum of the
// passing weights.
func (r Rule) Score(m BehavioralMetrics) float64 {
	score := 0.0
	for _, c := range r.Criteria {
		if c.Test(m) {
			score += c.Weight
		}
	}
	if score > 1 {
		return 1
	}
	return score
}

// Classifier holds the archetype rule table. Rule order is the tie-break:
// when two rules score equally, the earlier one wins.
type Classifier struct {
	Rules              []Rule
	SecondaryThreshold float64
}

// NewClassifier returns a classifier with the reference rule table and a
// secondary-archetype threshold of 0.3.
func NewClassifier() *Classifier {
	return &Classifier{
		Rules:              DefaultRules(),
		SecondaryThreshold: 0.3,
	}
}

// Classify evaluates every rule and picks primary and secondary archetypes.
// The top rule is primary unconditionally; the runner-up becomes secondary
// only if its score strictly exceeds the secondary threshold. Confidence is
// the primary rule's raw score. Traits are the primary's plus the
// secondary's first trait.
func (c *Classifier) Classify(m BehavioralMetrics) ListenerArchetype {
	type ruleScore struct {
		rule  Rule
		score float64
	}
	scores := make([]ruleScore, 0, len(c.Rules))
	for _, r := range c.Rules {
		scores = append(scores, ruleScore{rule: r, score: r.Score(m)})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	primary := scores[0]
	traits := append([]string(nil), primary.rule.Traits...)

	archetype := ListenerArchetype{
		Primary:     primary.rule.Name,
		Confidence:  primary.score,
		Traits:      traits,
		Description: primary.rule.Description,
	}

	if len(scores) > 1 && scores[1].score > c.SecondaryThreshold {
		secondary := scores[1].rule
		archetype.Secondary = secondary.Name
		if len(secondary.Traits) > 0 {
			archetype.Traits = append(archetype.Traits, secondary.Traits[0])
		}
	}
	return archetype
}

// DefaultRules is the reference archetype table. The tier thresholds are
// calibrated against the reference metrics (repeat rate over unique tracks,
// rank-weighted Gini), so tuning one usually means retuning its neighbors.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:        "Comfort Listener",
			Traits:      []string{"High repeat rate", "Low exploration", "Consistent favorites"},
			Description: "You find comfort in familiar favorites, creating a cozy musical safe space.",
			Criteria: []Criterion{
				{Weight: 0.4, Test: func(m BehavioralMetrics) bool { return m.RepeatMetrics.RepeatRate > 0.6 }},
				{Weight: 0.2, Test: func(m BehavioralMetrics) bool {
					return m.RepeatMetrics.RepeatRate > 0.4 && m.RepeatMetrics.RepeatRate <= 0.6
				}},
				{Weight: 0.3, Test: func(m BehavioralMetrics) bool { return m.LoyaltyScore.ExplorationScore < 0.4 }},
				{Weight: 0.2, Test: func(m BehavioralMetrics) bool { return m.ActiveScore > 0.5 && m.ActiveScore < 0.8 }},
				{Weight: 0.1, Test: func(m BehavioralMetrics) bool { return m.LoyaltyScore.TopArtistPercentage > 0.4 }},
			},
		},
		{
			Name:        "Musical Explorer",
			Traits:      []string{"High artist diversity", "Low repeat rate", "Broad genre range"},
			Description: "Always seeking new sounds, you thrive on musical discovery.",
			Criteria: []Criterion{
				{Weight: 0.4, Test: func(m BehavioralMetrics) bool { return m.LoyaltyScore.ExplorationScore > 0.7 }},
				{Weight: 0.2, Test: func(m BehavioralMetrics) bool {
					return m.LoyaltyScore.ExplorationScore > 0.5 && m.LoyaltyScore.ExplorationScore <= 0.7
				}},
				{Weight: 0.3, Test: func(m BehavioralMetrics) bool { return m.RepeatMetrics.RepeatRate < 0.3 }},
				{Weight: 0.2, Test: func(m BehavioralMetrics) bool { return m.LoyaltyScore.UniqueArtistsPerWeek > 20 }},
				{Weight: 0.1, Test: func(m BehavioralMetrics) bool { return m.GenreStats.GenreDiversity > 3 }},
			},
		},
		{
			Name:        "Genre Hopper",
			Traits:      []string{"High genre diversity", "Mood-based listening", "Eclectic taste"},
			Description: "You flow between genres effortlessly, matching music to moments.",
			Criteria: []Criterion{
				{Weight: 0.5, Test: func(m BehavioralMetrics) bool { return m.GenreStats.GenreDiversity > 3.5 }},
				{Weight: 0.3, Test: func(m BehavioralMetrics) bool {
					return m.GenreStats.GenreDiversity > 2.5 && m.GenreStats.GenreDiversity <= 3.5
				}},
				{Weight: 0.3, Test: func(m BehavioralMetrics) bool { return topGenrePercentage(m) < 0.4 }},
				{Weight: 0.2, Test: func(m BehavioralMetrics) bool {
					return m.LoyaltyScore.ExplorationScore > 0.4 && m.LoyaltyScore.ExplorationScore < 0.7
				}},
			},
		},
		{
			Name:        "Loyal Fan",
			Traits:      []string{"Artist loyalty", "Deep catalog exploration", "Consistent preferences"},
			Description: "When you find artists you love, you dive deep into their entire discography.",
			Criteria: []Criterion{
				{Weight: 0.5, Test: func(m BehavioralMetrics) bool { return m.LoyaltyScore.TopArtistPercentage > 0.6 }},
				{Weight: 0.3, Test: func(m BehavioralMetrics) bool {
					return m.LoyaltyScore.TopArtistPercentage > 0.4 && m.LoyaltyScore.TopArtistPercentage <= 0.6
				}},
				{Weight: 0.3, Test: func(m BehavioralMetrics) bool { return len(m.RepeatMetrics.SameArtistStreaks) > 5 }},
				{Weight: 0.2, Test: func(m BehavioralMetrics) bool { return m.ActiveScore > 0.7 }},
			},
		},
		{
			Name:        "Obsessive Repeater",
			Traits:      []string{"Extreme repeat behavior", "Track fixation", "Intense focus"},
			Description: "When a song hits, you play it on repeat until it's etched in your soul.",
			Criteria: []Criterion{
				{Weight: 0.5, Test: func(m BehavioralMetrics) bool { return m.RepeatMetrics.RepeatRate > 0.7 }},
				{Weight: 0.4, Test: func(m BehavioralMetrics) bool { return topRepeatCount(m) > 50 }},
				{Weight: 0.2, Test: func(m BehavioralMetrics) bool {
					c := topRepeatCount(m)
					return c > 30 && c <= 50
				}},
				{Weight: 0.1, Test: func(m BehavioralMetrics) bool { return m.RepeatMetrics.AverageTimeBetweenRepeats < 24 }},
			},
		},
		{
			Name:        "Background Player",
			Traits:      []string{"High shuffle usage", "High skip rate", "Playlist-focused"},
			Description: "Music is your ambient companion, setting the vibe while you focus on life.",
			Criteria: []Criterion{
				{Weight: 0.3, Test: func(m BehavioralMetrics) bool { return m.ShuffleRate > 0.7 }},
				{Weight: 0.15, Test: func(m BehavioralMetrics) bool { return m.ShuffleRate > 0.5 && m.ShuffleRate <= 0.7 }},
				{Weight: 0.3, Test: func(m BehavioralMetrics) bool { return m.SkipRate > 0.4 }},
				{Weight: 0.15, Test: func(m BehavioralMetrics) bool { return m.SkipRate > 0.25 && m.SkipRate <= 0.4 }},
				{Weight: 0.3, Test: func(m BehavioralMetrics) bool { return m.ActiveScore < 0.5 }},
				{Weight: 0.1, Test: func(m BehavioralMetrics) bool { return m.AverageCompletionRatio < 0.7 }},
			},
		},
		{
			Name:        "Active Curator",
			Traits:      []string{"Low shuffle", "Low skip rate", "Intentional listening"},
			Description: "Every song is chosen with purpose. You craft your listening experience.",
			Criteria: []Criterion{
				{Weight: 0.3, Test: func(m BehavioralMetrics) bool { return m.ShuffleRate < 0.3 }},
				{Weight: 0.3, Test: func(m BehavioralMetrics) bool { return m.SkipRate < 0.2 }},
				{Weight: 0.3, Test: func(m BehavioralMetrics) bool { return m.ActiveScore > 0.8 }},
				{Weight: 0.1, Test: func(m BehavioralMetrics) bool { return m.AverageCompletionRatio > 0.85 }},
			},
		},
	}
}

func topGenrePercentage(m BehavioralMetrics) float64 {
	if len(m.GenreStats.Distribution) == 0 {
		return 0
	}
	return m.GenreStats.Distribution[0].Percentage
}

func topRepeatCount(m BehavioralMetrics) int {
	if len(m.RepeatMetrics.MostRepeatedTracks) == 0 {
		return 0
	}
	return m.RepeatMetrics.MostRepeatedTracks[0].Count
}
