/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// renderReport formats the analyze output in the requested format.
func renderReport(report profileReport, format string) (string, error) {
	switch format {
	case "yaml":
		out, err := yaml.Marshal(report)
		if err != nil {
			return "", fmt.Errorf("marshaling report: %w", err)
		}
		return string(out), nil
	case "json":
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling report: %w", err)
		}
		return string(out) + "\n", nil
	case "table":
		return renderTables(report)
	default:
		return "", fmt.Errorf("unknown format %q (want table, yaml, or json)", format)
	}
}

// renderTables prints the human-readable profile: a summary section, the top
// lists, the genre distribution, and the archetype.
func renderTables(report profileReport) (string, error) {
	out := new(bytes.Buffer)
	profile := report.Profile
	metrics := profile.Metrics

	fmt.Fprintf(out, "Listener profile: %s", profile.Archetype.Primary)
	if profile.Archetype.Secondary != "" {
		fmt.Fprintf(out, " / %s", profile.Archetype.Secondary)
	}
	fmt.Fprintf(out, " (confidence %.2f)\n", profile.Archetype.Confidence)
	fmt.Fprintf(out, "%s\n", profile.Archetype.Description)
	fmt.Fprintf(out, "Traits: %s\n\n", strings.Join(profile.Archetype.Traits, ", "))

	summary := [][]string{
		{"Total listens", fmt.Sprintf("%d", profile.TotalListens)},
		{"Listening hours", fmt.Sprintf("%.1f", profile.TotalListeningHours)},
		{"Date range", fmt.Sprintf("%s to %s",
			profile.DateRange.Start.Format("2006-01-02"), profile.DateRange.End.Format("2006-01-02"))},
		{"Active score", fmt.Sprintf("%.2f", metrics.ActiveScore)},
		{"Skip rate", fmt.Sprintf("%.2f", metrics.SkipRate)},
		{"Shuffle rate", fmt.Sprintf("%.2f", metrics.ShuffleRate)},
		{"Repeat rate", fmt.Sprintf("%.2f", metrics.RepeatMetrics.RepeatRate)},
		{"Exploration score", fmt.Sprintf("%.2f", metrics.LoyaltyScore.ExplorationScore)},
		{"Loyalty", metrics.LoyaltyScore.LoyaltyLabel},
		{"Genre diversity", fmt.Sprintf("%.2f", metrics.GenreStats.GenreDiversity)},
		{"Avg session minutes", fmt.Sprintf("%.1f", metrics.AverageSessionLength)},
	}
	if err := renderSection(out, "Summary", []string{"Metric", "Value"}, summary); err != nil {
		return "", err
	}

	var artistRows [][]string
	for i, artist := range profile.TopArtists {
		artistRows = append(artistRows, []string{
			fmt.Sprintf("%d", i+1), artist.Name, fmt.Sprintf("%d", artist.Count), strings.Join(artist.Genres, ", "),
		})
	}
	if err := renderSection(out, "Top artists", []string{"#", "Artist", "Listens", "Genres"}, artistRows); err != nil {
		return "", err
	}

	var trackRows [][]string
	for i, track := range profile.TopTracks {
		trackRows = append(trackRows, []string{
			fmt.Sprintf("%d", i+1), track.Name, track.Artist, fmt.Sprintf("%d", track.Count),
		})
	}
	if err := renderSection(out, "Top tracks", []string{"#", "Track", "Artist", "Listens"}, trackRows); err != nil {
		return "", err
	}

	var genreRows [][]string
	for _, genre := range metrics.GenreStats.Distribution {
		genreRows = append(genreRows, []string{
			genre.Genre, fmt.Sprintf("%d", genre.Count), fmt.Sprintf("%.1f%%", genre.Percentage*100),
		})
	}
	if err := renderSection(out, "Genres", []string{"Genre", "Listens", "Share"}, genreRows); err != nil {
		return "", err
	}

	if len(report.Countries) > 0 {
		var countryRows [][]string
		for _, c := range report.Countries {
			countryRows = append(countryRows, []string{c.Country.Name, fmt.Sprintf("%d", c.Count)})
		}
		if err := renderSection(out, "Countries", []string{"Country", "Listens"}, countryRows); err != nil {
			return "", err
		}
	}

	return out.String(), nil
}

func renderSection(out *bytes.Buffer, title string, headers []string, rows [][]string) error {
	fmt.Fprintf(out, "%s:\n", title)
	if len(rows) == 0 {
		fmt.Fprintln(out, "  (none)")
		return nil
	}
	table := tablewriter.NewWriter(out)
	table.Header(headers)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("rendering %s table: %w", title, err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering %s table: %w", title, err)
	}
	fmt.Fprintln(out)
	return nil
}
