package config

const (
	defaultLetterboxdBaseURL = "https://letterboxd.com"
	defaultWindow            = 5
	defaultDataDir           = "~/.local/share/cinelog"
	defaultTMDBBaseURL       = "https://api.themoviedb.org/3"
	defaultTMDBLanguage      = "en-US"
	defaultTMDBRPS           = 4
	defaultKinopoiskURL      = "https://www.kinopoisk.ru/"
	defaultNotifyTimeout     = 10
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Letterboxd: Letterboxd{
			BaseURL: defaultLetterboxdBaseURL,
			Window:  defaultWindow,
		},
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		TMDB: TMDB{
			BaseURL:           defaultTMDBBaseURL,
			Language:          defaultTMDBLanguage,
			RequestsPerSecond: defaultTMDBRPS,
		},
		Kinopoisk: Kinopoisk{
			URL: defaultKinopoiskURL,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
