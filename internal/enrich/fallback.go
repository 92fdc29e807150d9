package enrich

import "strings"

// Artist-name substrings for the coarse fallback genres. The lists mirror
// the reference calibration; matching is on lowercased artist name.
var latinArtists = []string{
	"bad bunny", "marc anthony", "daddy yankee", "j balvin", "karol g",
	"ozuna", "nicky jam", "maluma", "anuel aa", "rauw alejandro",
	"becky g", "feid", "young miko", "tokischa", "coi leray", "nicki nicole",
	"lyanno", "hozwal", "kaliii", "kenzo b",
}

var classicArtists = []string{
	"jackson 5", "michael jackson", "marvin gaye", "stevie wonder",
	"whitney houston", "elvis presley",
}

// FallbackGenres maps an artist name to a coarse genre when no real tags are
// available. "Various" is the catch-all label; "Unknown" is never used so a
// heuristic guess stays distinguishable from an absent lookup result.
func FallbackGenres(artist string) []string {
	name := strings.ToLower(artist)

	for _, a := range latinArtists {
		if strings.Contains(name, a) {
			return []string{"Latin"}
		}
	}
	for _, a := range classicArtists {
		if strings.Contains(name, a) {
			return []string{"Soul"}
		}
	}
	return []string{"Various"}
}
