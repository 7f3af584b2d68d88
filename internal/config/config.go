package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	GitHubToken   string
	GeocoderToken string
	Account       string
	ExtraRepos    []string
	DatasetFile   string
	MapFile       string
	SlackMode     bool
	DebugMode     bool
}

// FromEnvironment creates a Config from environment variables.
func FromEnvironment() Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("DATASET_FILE", "global_usage.json")
	v.SetDefault("MAP_FILE", "global_usage.png")

	return Config{
		GitHubToken:   v.GetString("GITHUB_TOKEN"),
		GeocoderToken: v.GetString("GEOCODER_TOKEN"),
		Account:       v.GetString("GITHUB_USER"),
		ExtraRepos:    splitRepos(v.GetString("ADDITIONAL_REPOS")),
		DatasetFile:   v.GetString("DATASET_FILE"),
		MapFile:       v.GetString("MAP_FILE"),
		SlackMode:     truthy(v.GetString("SLACK_MODE")),
		DebugMode:     truthy(v.GetString("DEBUG")),
	}
}

// splitRepos parses a comma-separated list of "owner/name" strings,
// dropping empty entries.
func splitRepos(s string) []string {
	if s == "" {
		return nil
	}
	var repos []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			repos = append(repos, part)
		}
	}
	return repos
}

func truthy(s string) bool {
	return s != "" && strings.ToLower(s) != "false" && s != "0"
}
