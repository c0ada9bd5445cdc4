package config

import (
	"os"
	"path/filepath"
	"strings"
)

// normalize applies environment overrides, trims string values, and expands
// all path fields. Environment variables take precedence over file values so
// secrets can live in a .env file instead of the config.
func (c *Config) normalize() error {
	applyEnvOverrides(c)

	c.Letterboxd.Username = strings.TrimSpace(c.Letterboxd.Username)
	c.Letterboxd.BaseURL = strings.TrimSpace(c.Letterboxd.BaseURL)
	c.TMDB.AccessToken = strings.TrimSpace(c.TMDB.AccessToken)
	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	c.Kinopoisk.URL = strings.TrimSpace(c.Kinopoisk.URL)
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)

	if c.Letterboxd.Window <= 0 {
		c.Letterboxd.Window = defaultWindow
	}

	for _, field := range []*string{
		&c.Paths.VaultDir,
		&c.Paths.NotRatedFile,
		&c.Paths.DataDir,
		&c.Kinopoisk.DriverPath,
		&c.Kinopoisk.ProfileDir,
	} {
		if strings.TrimSpace(*field) == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(strings.TrimSpace(*field))
		if err != nil {
			return err
		}
		*field = expanded
	}

	if c.Paths.DataDir == "" {
		expanded, err := expandPath(defaultDataDir)
		if err != nil {
			return err
		}
		c.Paths.DataDir = expanded
	}
	if c.Paths.NotRatedFile == "" {
		c.Paths.NotRatedFile = filepath.Join(c.Paths.DataDir, "not_rated.md")
	}
	return nil
}

// envOverrides maps environment variables onto config fields. The names
// match the original deployment's .env file.
func applyEnvOverrides(c *Config) {
	overrides := map[string]*string{
		"LB_USERNAME":         &c.Letterboxd.Username,
		"TMDB_ACCESS_TOKEN":   &c.TMDB.AccessToken,
		"OBSIDIAN_VAULT_PATH": &c.Paths.VaultDir,
		"NOT_RATED_FILE":      &c.Paths.NotRatedFile,
		"CHROME_PROFILE_DIR":  &c.Kinopoisk.ProfileDir,
		"CHROMEDRIVER_PATH":   &c.Kinopoisk.DriverPath,
		"NTFY_TOPIC":          &c.Notifications.NtfyTopic,
	}
	for name, field := range overrides {
		if value, ok := os.LookupEnv(name); ok && strings.TrimSpace(value) != "" {
			*field = strings.TrimSpace(value)
		}
	}
}
