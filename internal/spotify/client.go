// Package spotify implements the metadata provider: batched Web API lookups
// that turn track identifiers into genre tags and true durations. The client
// is an explicit value injected at construction time so tests can point it
// at a fake server.
package spotify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/soundprint/soundprint/internal/config"
	"github.com/soundprint/soundprint/internal/listening"
)

const (
	defaultAPIBase = "https://api.spotify.com/v1"
	defaultAuthURL = "https://accounts.spotify.com/api/token"
	userAgent      = "soundprint/1.0"
)

// Client talks to the Spotify Web API using the client-credentials flow.
type Client struct {
	clientID     string
	clientSecret string
	apiBase      string
	authURL      string
	httpClient   *http.Client
	provider     config.Provider
	limiter      *rate.Limiter

	tokenMu     sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides the API and auth endpoints, for tests.
func WithBaseURLs(apiBase, authURL string) Option {
	return func(c *Client) {
		c.apiBase = apiBase
		c.authURL = authURL
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a metadata provider client. The provider settings
// control batch size, retries, and the cooldown between batches.
func NewClient(clientID, clientSecret string, provider config.Provider, opts ...Option) *Client {
	c := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		apiBase:      defaultAPIBase,
		authURL:      defaultAuthURL,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		provider:     provider,
		limiter:      rate.NewLimiter(rate.Every(provider.Cooldown), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TrackMetadata resolves track identifiers to genre tags and durations.
// Identifiers the API does not know are simply absent from the result:
// unknown, not an error. A batch that exhausts its retries fails the whole
// call with an ExternalServiceError.
func (c *Client) TrackMetadata(ctx context.Context, trackIDs []string) (map[string]TrackMetadata, error) {
	tracks, err := c.GetTracks(ctx, trackIDs)
	if err != nil {
		return nil, err
	}

	artistIDs := make([]string, 0)
	seen := make(map[string]struct{})
	for _, track := range tracks {
		for _, ref := range track.Artists {
			if _, ok := seen[ref.ID]; !ok {
				seen[ref.ID] = struct{}{}
				artistIDs = append(artistIDs, ref.ID)
			}
		}
	}

	artists, err := c.GetArtists(ctx, artistIDs)
	if err != nil {
		return nil, err
	}

	meta := make(map[string]TrackMetadata, len(tracks))
	for id, track := range tracks {
		var genres []string
		genreSeen := make(map[string]struct{})
		for _, ref := range track.Artists {
			artist, ok := artists[ref.ID]
			if !ok {
				continue
			}
			for _, g := range artist.Genres {
				if _, dup := genreSeen[g]; !dup {
					genreSeen[g] = struct{}{}
					genres = append(genres, g)
				}
			}
		}
		meta[id] = TrackMetadata{Genres: genres, DurationMS: track.DurationMS}
	}
	return meta, nil
}

// GetTracks fetches track objects in batches. Missing tracks (null entries
// in the response) are skipped.
func (c *Client) GetTracks(ctx context.Context, ids []string) (map[string]Track, error) {
	return fetchBatched(ctx, c, ids, "tracks", func(batch []string) (map[string]Track, error) {
		body, err := c.get(ctx, "/tracks?ids="+url.QueryEscape(strings.Join(batch, ",")))
		if err != nil {
			return nil, err
		}
		var resp tracksResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("decoding tracks response: %w", err)
		}
		out := make(map[string]Track, len(resp.Tracks))
		for _, track := range resp.Tracks {
			if track != nil {
				out[track.ID] = *track
			}
		}
		return out, nil
	})
}

// GetArtists fetches artist objects in batches, de-duplicating the input.
func (c *Client) GetArtists(ctx context.Context, ids []string) (map[string]Artist, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}

	return fetchBatched(ctx, c, unique, "artists", func(batch []string) (map[string]Artist, error) {
		body, err := c.get(ctx, "/artists?ids="+url.QueryEscape(strings.Join(batch, ",")))
		if err != nil {
			return nil, err
		}
		var resp artistsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("decoding artists response: %w", err)
		}
		out := make(map[string]Artist, len(resp.Artists))
		for _, artist := range resp.Artists {
			if artist != nil {
				out[artist.ID] = *artist
			}
		}
		return out, nil
	})
}

// fetchBatched splits ids into provider-sized batches and runs fetch over
// them with bounded concurrency. Each batch fills its own map; the maps are
// merged only after every batch in the wave resolves, so the merged content
// is the same regardless of completion order. Cancellation is honored
// between batches, not mid-batch. A batch that exhausts its retries fails
// the whole call with an ExternalServiceError naming the affected count.
func fetchBatched[T any](ctx context.Context, c *Client, ids []string, service string,
	fetch func(batch []string) (map[string]T, error)) (map[string]T, error) {

	merged := make(map[string]T, len(ids))
	if len(ids) == 0 {
		return merged, nil
	}

	size := c.provider.BatchSize
	var batches [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}

	type batchResult struct {
		out map[string]T
		err error
		n   int
	}
	results := make([]batchResult, len(batches))

	workCh := make(chan int, len(batches))
	for i := range batches {
		workCh <- i
	}
	close(workCh)

	workers := c.provider.Concurrency
	if workers < 1 {
		workers = 1
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workCh {
				if ctx.Err() != nil {
					results[i] = batchResult{err: ctx.Err(), n: len(batches[i])}
					continue
				}
				out, err := fetchWithRetry(ctx, c, batches[i], fetch)
				results[i] = batchResult{out: out, err: err, n: len(batches[i])}
			}
		}()
	}
	wg.Wait()

	for _, res := range results {
		if res.err != nil {
			return nil, &listening.ExternalServiceError{
				Service:  "spotify " + service,
				Affected: res.n,
				Err:      res.err,
			}
		}
	}
	for _, res := range results {
		for id, v := range res.out {
			merged[id] = v
		}
	}
	return merged, nil
}

// fetchWithRetry runs one batch with the configured retry policy: a fixed
// number of attempts with linearly increasing delay, and the shared limiter
// enforcing the cooldown between batch requests.
func fetchWithRetry[T any](ctx context.Context, c *Client, batch []string,
	fetch func(batch []string) (map[string]T, error)) (map[string]T, error) {

	var out map[string]T
	err := retry.Do(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
			var err error
			out, err = fetch(batch)
			return err
		},
		retry.Attempts(c.provider.MaxRetries),
		retry.DelayType(func(n uint, err error, cfg *retry.Config) time.Duration {
			return time.Duration(n+1) * c.provider.RetryDelay
		}),
		retry.RetryIf(func(err error) bool {
			return ctx.Err() == nil
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// get performs a single authorized GET against the API.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify API status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

// token returns a cached access token, requesting a new one when the cached
// token is within a minute of expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}
	if c.clientID == "" || c.clientSecret == "" {
		return "", fmt.Errorf("spotify credentials not configured")
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	return c.accessToken, nil
}
