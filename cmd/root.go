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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string
var spotifyClientID string
var spotifyClientSecret string
var databasePath string
var outputFormat string
var smtpUsername string
var smtpPassword string
var sendgridApiKey string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "soundprint",
	Short: "Builds behavioral listener profiles from Spotify streaming history",
	Long: `Reads Spotify extended streaming history exports and distills them into
a behavioral listener profile: repeat patterns, artist loyalty, genre
diversity, listening rhythms, and an archetype classification.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.soundprint.yaml)")

	rootCmd.PersistentFlags().StringVar(
		&spotifyClientID, "spotify_client_id", "", "Spotify API client ID")
	viper.BindPFlag("spotify_client_id", rootCmd.PersistentFlags().Lookup("spotify_client_id"))

	rootCmd.PersistentFlags().StringVar(
		&spotifyClientSecret, "spotify_client_secret", "", "Spotify API client secret")
	viper.BindPFlag("spotify_client_secret", rootCmd.PersistentFlags().Lookup("spotify_client_secret"))

	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "./soundprint.db", "Path to the SQLite metadata cache")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))

	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "format", "f", "table", "Output format: table, yaml, or json")
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))

	rootCmd.PersistentFlags().StringVar(&smtpUsername, "smtp_username", "", "SMTP username")
	viper.BindPFlag("smtp_username", rootCmd.PersistentFlags().Lookup("smtp_username"))

	rootCmd.PersistentFlags().StringVar(&smtpPassword, "smtp_password", "", "SMTP password")
	viper.BindPFlag("smtp_password", rootCmd.PersistentFlags().Lookup("smtp_password"))

	rootCmd.PersistentFlags().StringVar(&sendgridApiKey, "sendgrid_api_key", "", "SendGrid API key")
	viper.BindPFlag("sendgrid_api_key", rootCmd.PersistentFlags().Lookup("sendgrid_api_key"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".soundprint" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".soundprint")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}
