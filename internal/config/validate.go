package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Any failure here aborts the
// process before a single entry is touched.
func (c *Config) Validate() error {
	if err := c.validateLetterboxd(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateKinopoisk(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLetterboxd() error {
	if c.Letterboxd.Username == "" {
		return errors.New("letterboxd.username is required. Set LB_USERNAME or edit the config (create with 'cinelog config init')")
	}
	if c.Letterboxd.Window <= 0 {
		return errors.New("letterboxd.window must be positive")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.VaultDir == "" {
		return errors.New("paths.vault_dir must be set (or OBSIDIAN_VAULT_PATH)")
	}
	if c.Paths.NotRatedFile == "" {
		return errors.New("paths.not_rated_file must be set")
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.AccessToken == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/cinelog/config.toml"
		}
		return fmt.Errorf("tmdb.access_token is required. Set TMDB_ACCESS_TOKEN env var or edit %s", defaultPath)
	}
	if c.TMDB.RequestsPerSecond <= 0 {
		return errors.New("tmdb.requests_per_second must be positive")
	}
	return nil
}

func (c *Config) validateKinopoisk() error {
	if !c.Kinopoisk.Enabled {
		return nil
	}
	if c.Kinopoisk.DriverPath == "" {
		return errors.New("kinopoisk.driver_path must be set when kinopoisk.enabled is true")
	}
	if c.Kinopoisk.ProfileDir == "" {
		return errors.New("kinopoisk.profile_dir must be set when kinopoisk.enabled is true")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}
