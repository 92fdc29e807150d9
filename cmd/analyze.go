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
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/soundprint/soundprint/internal/analysis"
	"github.com/soundprint/soundprint/internal/config"
	"github.com/soundprint/soundprint/internal/enrich"
	"github.com/soundprint/soundprint/internal/listening"
	"github.com/soundprint/soundprint/internal/nationality"
	"github.com/soundprint/soundprint/internal/spotify"
	"github.com/soundprint/soundprint/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <export.json...>",
	Short: "Builds a listener profile from streaming history exports",
	Long: `Analyzes one or more Spotify extended streaming history JSON files and
prints the resulting listener profile. With Spotify API credentials the
events are enriched with real track durations and genre tags; without
them (or with --offline) the analysis degrades to assumed durations and
fallback genres.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		offline, _ := cmd.Flags().GetBool("offline")
		countries, _ := cmd.Flags().GetBool("countries")
		return runAnalyze(cmd.Context(), args, offline, countries)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Bool("offline", false, "Skip metadata API calls, analyze from the export alone")
	analyzeCmd.Flags().Bool("countries", false, "Include a listens-per-country distribution")

	analyzeCmd.Flags().Int64("min_play_ms", 0, "Minimum play duration in ms to keep an event (default 30000)")
	viper.BindPFlag("min_play_ms", analyzeCmd.Flags().Lookup("min_play_ms"))
	analyzeCmd.Flags().Int("top_items", 0, "Length of the ranked lists (default 10)")
	viper.BindPFlag("top_items", analyzeCmd.Flags().Lookup("top_items"))
}

func runAnalyze(ctx context.Context, files []string, offline, countries bool) error {
	cfg := config.Default()
	if v := viper.GetInt64("min_play_ms"); v > 0 {
		cfg.Cleaning.MinPlayDurationMS = v
	}
	if v := viper.GetInt("top_items"); v > 0 {
		cfg.TopItemsLimit = v
	}

	report, err := buildReport(ctx, files, cfg, offline, countries)
	if err != nil {
		return err
	}

	out, err := renderReport(report, viper.GetString("format"))
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// profileReport is the full analyze output: the profile plus the cleaning
// stats and the optional country distribution.
type profileReport struct {
	Profile       analysis.ListenerProfile   `json:"profile" yaml:"profile"`
	CleaningStats listening.CleaningStats    `json:"cleaningStats" yaml:"cleaning_stats"`
	Countries     []nationality.CountryCount `json:"countryDistribution,omitempty" yaml:"country_distribution,omitempty"`
}

func buildReport(ctx context.Context, files []string, cfg config.Config, offline, countries bool) (profileReport, error) {
	payloads := make([][]byte, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return profileReport{}, fmt.Errorf("reading %s: %w", file, err)
		}
		payloads = append(payloads, data)
	}

	events, err := listening.ParseFiles(payloads)
	if err != nil {
		return profileReport{}, err
	}

	cleaned, stats := listening.Clean(events, cfg.Cleaning.MinPlayDurationMS)
	fmt.Fprintf(os.Stderr, "Parsed %d events, removed %d short plays and %d duplicates\n",
		stats.OriginalCount, stats.RemovedShort, stats.RemovedDuplicates)

	enriched := enrich.Enrich(cleaned, cfg.Scoring)
	stats.SessionCount = len(listening.BuildSessions(enriched, cfg.Cleaning.SessionGap))

	var db *store.Store
	if !offline || countries {
		db, err = store.New(viper.GetString("database"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: lookup cache unavailable: %v\n", err)
			db = nil
		} else {
			defer db.Close()
		}
	}

	if !offline {
		enriched = enrichFromAPI(ctx, enriched, cfg, db)
	}

	profile, err := analysis.BuildProfile(enriched, cfg, analysis.NewClassifier())
	if err != nil {
		return profileReport{}, err
	}

	report := profileReport{Profile: profile, CleaningStats: stats}
	if countries {
		opts := []nationality.Option{}
		if db != nil {
			opts = append(opts, nationality.WithCache(db.GetArtistCountry, db.SaveArtistCountry))
		}
		provider := nationality.New(250*time.Millisecond, opts...)
		dist, err := nationality.CountryDistribution(ctx, provider, enriched)
		if err != nil {
			return profileReport{}, fmt.Errorf("resolving artist countries: %w", err)
		}
		report.Countries = dist
	}
	return report, nil
}

// enrichFromAPI attaches real durations and genre tags, serving what it can
// from the local cache and fetching the rest from the Spotify API. Metadata
// failures degrade the analysis instead of aborting it.
func enrichFromAPI(ctx context.Context, enriched []listening.EnrichedEvent, cfg config.Config, db *store.Store) []listening.EnrichedEvent {
	trackIDs := enrich.UniqueTrackIDs(enriched)

	meta := make(map[string]spotify.TrackMetadata, len(trackIDs))
	if db != nil {
		cached, err := db.GetTrackMetadata(trackIDs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: reading metadata cache: %v\n", err)
		} else {
			meta = cached
		}
	}

	var missing []string
	for _, id := range trackIDs {
		if _, ok := meta[id]; !ok {
			missing = append(missing, id)
		}
	}

	clientID := viper.GetString("spotify_client_id")
	clientSecret := viper.GetString("spotify_client_secret")
	if len(missing) > 0 && clientID != "" && clientSecret != "" {
		client := spotify.NewClient(clientID, clientSecret, cfg.Provider)
		fetched, err := client.TrackMetadata(ctx, missing)
		if err != nil {
			var serviceErr *listening.ExternalServiceError
			if errors.As(err, &serviceErr) {
				fmt.Fprintf(os.Stderr, "Warning: %v; continuing with partial metadata\n", serviceErr)
			} else {
				fmt.Fprintf(os.Stderr, "Warning: metadata lookup failed: %v; continuing without it\n", err)
			}
		} else {
			if db != nil {
				if err := db.SaveTrackMetadata(fetched); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: caching metadata: %v\n", err)
				}
			}
			for id, m := range fetched {
				meta[id] = m
			}
		}
	}

	if len(meta) == 0 {
		return enriched
	}

	durations := make(map[string]int64, len(meta))
	genres := make(map[string][]string, len(meta))
	for id, m := range meta {
		durations[id] = m.DurationMS
		genres[id] = m.Genres
	}
	enriched = enrich.ApplyDurations(enriched, durations, cfg.Scoring)
	return enrich.ApplyGenres(enriched, genres)
}
