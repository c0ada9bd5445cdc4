// Package config loads, normalizes, and validates cinelog configuration.
//
// Configuration comes from a TOML file with environment overrides for the
// values the original deployment kept in a .env file (LB_USERNAME,
// TMDB_ACCESS_TOKEN, OBSIDIAN_VAULT_PATH, NOT_RATED_FILE,
// CHROME_PROFILE_DIR). Validation failures are fatal at startup, before any
// entry is processed.
package config
