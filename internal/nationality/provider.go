// Package nationality resolves artist names to countries of origin using a
// cascading best-effort chain: a fixed local table, then MusicBrainz, then
// Wikidata. The first strategy that returns a result wins; a miss everywhere
// is not an error. Only the reporting layer consumes this; the metrics
// engine never depends on it.
package nationality

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/soundprint/soundprint/internal/listening"
)

// Country identifies an artist's country with its ISO-3166 numeric code.
type Country struct {
	Name       string `json:"country" yaml:"country"`
	ISONumeric string `json:"iso" yaml:"iso"`
}

// Strategy is one lookup source in the cascade.
type Strategy struct {
	Name   string
	Lookup func(ctx context.Context, artist string) (*Country, error)
}

// Provider tries its strategies in order with a configurable delay between
// external calls. Strategy errors count as misses; the cascade keeps going.
type Provider struct {
	strategies []Strategy
	delay      time.Duration
	cacheGet   func(artist string) (*Country, error)
	cachePut   func(artist string, country Country) error
}

// Option configures a Provider.
type Option func(*Provider)

// WithStrategies replaces the default cascade, for tests.
func WithStrategies(strategies []Strategy) Option {
	return func(p *Provider) {
		p.strategies = strategies
	}
}

// WithCache consults get before the cascade and records hits with put. Cache
// failures are treated as misses; put is best effort.
func WithCache(get func(artist string) (*Country, error), put func(artist string, country Country) error) Option {
	return func(p *Provider) {
		p.cacheGet = get
		p.cachePut = put
	}
}

// New builds the default cascade. delay is the pause inserted before each
// external (non-local) strategy call.
func New(delay time.Duration, opts ...Option) *Provider {
	hc := &http.Client{Timeout: 10 * time.Second}
	p := &Provider{
		delay: delay,
		strategies: []Strategy{
			{Name: "local", Lookup: localLookup},
			{Name: "musicbrainz", Lookup: musicBrainzLookup(hc)},
			{Name: "wikidata", Lookup: wikidataLookup(hc)},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Lookup resolves one artist. A nil result with nil error means every
// strategy came up empty.
func (p *Provider) Lookup(ctx context.Context, artist string) (*Country, error) {
	if p.cacheGet != nil {
		if country, err := p.cacheGet(artist); err == nil && country != nil {
			return country, nil
		}
	}

	for i, s := range p.strategies {
		if i > 0 && p.delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.delay):
			}
		}
		country, err := s.Lookup(ctx, artist)
		if err != nil {
			continue
		}
		if country != nil {
			if p.cachePut != nil {
				p.cachePut(artist, *country)
			}
			return country, nil
		}
	}
	return nil, nil
}

// CountryCount is one entry of the listens-per-country distribution.
type CountryCount struct {
	Country Country `json:"country" yaml:"country"`
	Count   int     `json:"count" yaml:"count"`
}

// CountryDistribution counts listens per resolved artist country, most
// listened first. Artists that resolve nowhere are omitted.
func CountryDistribution(ctx context.Context, p *Provider, events []listening.EnrichedEvent) ([]CountryCount, error) {
	resolved := make(map[string]*Country)
	counts := make(map[string]int)
	names := make(map[string]Country)
	var order []string

	for _, ev := range events {
		country, ok := resolved[ev.Artist]
		if !ok {
			var err error
			country, err = p.Lookup(ctx, ev.Artist)
			if err != nil {
				return nil, err
			}
			resolved[ev.Artist] = country
		}
		if country == nil {
			continue
		}
		if counts[country.ISONumeric] == 0 {
			order = append(order, country.ISONumeric)
			names[country.ISONumeric] = *country
		}
		counts[country.ISONumeric]++
	}

	dist := make([]CountryCount, 0, len(order))
	for _, iso := range order {
		dist = append(dist, CountryCount{Country: names[iso], Count: counts[iso]})
	}
	sort.SliceStable(dist, func(i, j int) bool {
		return dist[i].Count > dist[j].Count
	})
	return dist, nil
}

// localLookup checks the fixed artist table. Matching is on the lowercased
// full artist name.
func localLookup(_ context.Context, artist string) (*Country, error) {
	if c, ok := localArtistCountries[strings.ToLower(artist)]; ok {
		country := c
		return &country, nil
	}
	return nil, nil
}

type mbArtistSearch struct {
	Artists []struct {
		Country string `json:"country"`
	} `json:"artists"`
}

// musicBrainzLookup searches the MusicBrainz artist index and maps the
// alpha-2 country code of the best hit.
func musicBrainzLookup(hc *http.Client) func(ctx context.Context, artist string) (*Country, error) {
	return func(ctx context.Context, artist string) (*Country, error) {
		query := url.Values{
			"query": {fmt.Sprintf("artist:%q", artist)},
			"fmt":   {"json"},
			"limit": {"1"},
		}
		body, err := getJSON(ctx, hc, "https://musicbrainz.org/ws/2/artist/?"+query.Encode())
		if err != nil {
			return nil, err
		}

		var result mbArtistSearch
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("decoding musicbrainz response: %w", err)
		}
		if len(result.Artists) == 0 || result.Artists[0].Country == "" {
			return nil, nil
		}
		if c, ok := alpha2Countries[result.Artists[0].Country]; ok {
			country := c
			return &country, nil
		}
		return nil, nil
	}
}

type wdSearch struct {
	Search []struct {
		ID string `json:"id"`
	} `json:"search"`
}

type wdClaims struct {
	Claims map[string][]struct {
		MainSnak struct {
			DataValue struct {
				Value struct {
					ID string `json:"id"`
				} `json:"value"`
			} `json:"datavalue"`
		} `json:"mainsnak"`
	} `json:"claims"`
}

// wikidataLookup searches Wikidata for the artist entity and reads its
// country of citizenship (P27) or origin (P495), mapping known country
// entity IDs.
func wikidataLookup(hc *http.Client) func(ctx context.Context, artist string) (*Country, error) {
	return func(ctx context.Context, artist string) (*Country, error) {
		query := url.Values{
			"action":   {"wbsearchentities"},
			"search":   {artist},
			"language": {"en"},
			"format":   {"json"},
			"limit":    {"1"},
		}
		body, err := getJSON(ctx, hc, "https://www.wikidata.org/w/api.php?"+query.Encode())
		if err != nil {
			return nil, err
		}
		var search wdSearch
		if err := json.Unmarshal(body, &search); err != nil {
			return nil, fmt.Errorf("decoding wikidata search: %w", err)
		}
		if len(search.Search) == 0 {
			return nil, nil
		}

		query = url.Values{
			"action":   {"wbgetclaims"},
			"entity":   {search.Search[0].ID},
			"property": {"P27"},
			"format":   {"json"},
		}
		body, err = getJSON(ctx, hc, "https://www.wikidata.org/w/api.php?"+query.Encode())
		if err != nil {
			return nil, err
		}
		var claims wdClaims
		if err := json.Unmarshal(body, &claims); err != nil {
			return nil, fmt.Errorf("decoding wikidata claims: %w", err)
		}
		for _, property := range []string{"P27", "P495"} {
			for _, claim := range claims.Claims[property] {
				if c, ok := wikidataCountries[claim.MainSnak.DataValue.Value.ID]; ok {
					country := c
					return &country, nil
				}
			}
		}
		return nil, nil
	}
}

func getJSON(ctx context.Context, hc *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "soundprint/1.0")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lookup status %d", resp.StatusCode)
	}
	return body, nil
}
