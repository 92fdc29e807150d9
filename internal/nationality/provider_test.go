package nationality

import (
	"context"
	"errors"
	"testing"

	"github.com/soundprint/soundprint/internal/listening"
)

func fixedStrategy(name string, country *Country, err error, calls *[]string) Strategy {
	return Strategy{
		Name: name,
		Lookup: func(ctx context.Context, artist string) (*Country, error) {
			if calls != nil {
				*calls = append(*calls, name)
			}
			return country, err
		},
	}
}

func TestLookupFirstHitWins(t *testing.T) {
	var calls []string
	p := New(0, WithStrategies([]Strategy{
		fixedStrategy("miss", nil, nil, &calls),
		fixedStrategy("hit", &Country{Name: "Colombia", ISONumeric: "170"}, nil, &calls),
		fixedStrategy("never", &Country{Name: "Spain", ISONumeric: "724"}, nil, &calls),
	}))

	country, err := p.Lookup(context.Background(), "Karol G")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if country == nil || country.Name != "Colombia" {
		t.Errorf("country = %+v, want Colombia", country)
	}
	if len(calls) != 2 {
		t.Errorf("calls = %v, want the chain to stop at the first hit", calls)
	}
}

func TestLookupErrorsCountAsMisses(t *testing.T) {
	var calls []string
	p := New(0, WithStrategies([]Strategy{
		fixedStrategy("broken", nil, errors.New("network down"), &calls),
		fixedStrategy("hit", &Country{Name: "Mexico", ISONumeric: "484"}, nil, &calls),
	}))

	country, err := p.Lookup(context.Background(), "Becky G")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if country == nil || country.Name != "Mexico" {
		t.Errorf("country = %+v, want Mexico despite the first strategy failing", country)
	}
}

func TestLookupAllMiss(t *testing.T) {
	p := New(0, WithStrategies([]Strategy{
		fixedStrategy("miss1", nil, nil, nil),
		fixedStrategy("miss2", nil, nil, nil),
	}))

	country, err := p.Lookup(context.Background(), "Nobody")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if country != nil {
		t.Errorf("country = %+v, want nil when every strategy misses", country)
	}
}

func TestLocalLookup(t *testing.T) {
	country, err := localLookup(context.Background(), "Bad Bunny")
	if err != nil {
		t.Fatalf("localLookup: %v", err)
	}
	if country == nil || country.Name != "Puerto Rico" || country.ISONumeric != "630" {
		t.Errorf("country = %+v, want Puerto Rico/630", country)
	}

	miss, err := localLookup(context.Background(), "Unknown Band")
	if err != nil {
		t.Fatalf("localLookup: %v", err)
	}
	if miss != nil {
		t.Errorf("country = %+v, want nil for an unlisted artist", miss)
	}
}

func TestCountryDistribution(t *testing.T) {
	p := New(0, WithStrategies([]Strategy{{
		Name: "local",
		Lookup: func(ctx context.Context, artist string) (*Country, error) {
			switch artist {
			case "Bad Bunny":
				return &Country{Name: "Puerto Rico", ISONumeric: "630"}, nil
			case "Karol G":
				return &Country{Name: "Colombia", ISONumeric: "170"}, nil
			}
			return nil, nil
		},
	}}))

	mkEvent := func(artist string) listening.EnrichedEvent {
		return listening.EnrichedEvent{Event: listening.Event{Artist: artist}}
	}
	events := []listening.EnrichedEvent{
		mkEvent("Karol G"),
		mkEvent("Bad Bunny"),
		mkEvent("Bad Bunny"),
		mkEvent("Unresolvable"),
	}

	dist, err := CountryDistribution(context.Background(), p, events)
	if err != nil {
		t.Fatalf("CountryDistribution: %v", err)
	}
	if len(dist) != 2 {
		t.Fatalf("got %d countries, want 2 (unresolved artists omitted)", len(dist))
	}
	if dist[0].Country.Name != "Puerto Rico" || dist[0].Count != 2 {
		t.Errorf("dist[0] = %+v, want Puerto Rico with 2 listens", dist[0])
	}
	if dist[1].Country.Name != "Colombia" || dist[1].Count != 1 {
		t.Errorf("dist[1] = %+v", dist[1])
	}
}

func TestLookupCacheHitSkipsCascade(t *testing.T) {
	var calls []string
	cached := Country{Name: "Jamaica", ISONumeric: "388"}
	p := New(0,
		WithStrategies([]Strategy{
			fixedStrategy("never", &Country{Name: "Spain", ISONumeric: "724"}, nil, &calls),
		}),
		WithCache(
			func(artist string) (*Country, error) { return &cached, nil },
			func(artist string, country Country) error { return nil },
		),
	)

	country, err := p.Lookup(context.Background(), "Jason Mraz")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if country == nil || country.Name != "Jamaica" {
		t.Errorf("country = %+v, want the cached Jamaica", country)
	}
	if len(calls) != 0 {
		t.Errorf("cascade ran despite cache hit: %v", calls)
	}
}

func TestLookupCacheRecordsHits(t *testing.T) {
	saved := make(map[string]Country)
	p := New(0,
		WithStrategies([]Strategy{
			fixedStrategy("hit", &Country{Name: "Panama", ISONumeric: "591"}, nil, nil),
		}),
		WithCache(
			func(artist string) (*Country, error) { return nil, nil },
			func(artist string, country Country) error {
				saved[artist] = country
				return nil
			},
		),
	)

	if _, err := p.Lookup(context.Background(), "Nicky Jam"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if saved["Nicky Jam"].Name != "Panama" {
		t.Errorf("saved = %+v, want the resolved country recorded", saved)
	}
}

func TestCountryDistributionCachesPerArtist(t *testing.T) {
	lookups := 0
	p := New(0, WithStrategies([]Strategy{{
		Name: "counting",
		Lookup: func(ctx context.Context, artist string) (*Country, error) {
			lookups++
			return &Country{Name: "United States", ISONumeric: "840"}, nil
		},
	}}))

	events := []listening.EnrichedEvent{
		{Event: listening.Event{Artist: "Eminem"}},
		{Event: listening.Event{Artist: "Eminem"}},
		{Event: listening.Event{Artist: "Eminem"}},
	}
	if _, err := CountryDistribution(context.Background(), p, events); err != nil {
		t.Fatalf("CountryDistribution: %v", err)
	}
	if lookups != 1 {
		t.Errorf("made %d lookups, want 1 per distinct artist", lookups)
	}
}
