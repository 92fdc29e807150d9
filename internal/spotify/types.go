package spotify

// ArtistRef is the compact artist reference embedded in a track object.
type ArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Track is the subset of the Web API track object the pipeline uses.
type Track struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	DurationMS int64       `json:"duration_ms"`
	Artists    []ArtistRef `json:"artists"`
}

// Artist is the subset of the Web API artist object the pipeline uses.
type Artist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
}

// TrackMetadata is the enrichment result for one track: the union of its
// artists' genres plus the true duration.
type TrackMetadata struct {
	Genres     []string
	DurationMS int64
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type tracksResponse struct {
	Tracks []*Track `json:"tracks"`
}

type artistsResponse struct {
	Artists []*Artist `json:"artists"`
}
