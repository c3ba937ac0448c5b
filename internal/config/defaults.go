package config

const (
	defaultConfigPath         = "~/.config/mediashelf/config.toml"
	defaultDataDir            = "~/.local/share/mediashelf"
	defaultDatabaseName       = "mediashelf.db"
	defaultAPIBind            = "127.0.0.1:5000"
	defaultBookBaseURL        = "https://book.douban.com"
	defaultMovieBaseURL       = "https://movie.douban.com"
	defaultMusicBaseURL       = "https://music.douban.com"
	defaultSearchBaseURL      = "https://m.douban.com"
	defaultUserAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	defaultMobileAgent        = "Mozilla/5.0 (iPhone; CPU iPhone OS 14_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Mobile/15E148 Safari/604.1"
	defaultTimeoutSeconds     = 10
	defaultArtistCacheEntries = 2048
	defaultAPIRatePerMinute   = 30
	defaultAPIBurst           = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		// Paths stay empty so normalize can apply environment fallbacks.
		Paths: Paths{},
		Douban: Douban{
			BookBaseURL:    defaultBookBaseURL,
			MovieBaseURL:   defaultMovieBaseURL,
			MusicBaseURL:   defaultMusicBaseURL,
			SearchBaseURL:  defaultSearchBaseURL,
			UserAgent:      defaultUserAgent,
			MobileAgent:    defaultMobileAgent,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		ArtistCache: ArtistCache{
			MaxEntries: defaultArtistCacheEntries,
		},
		API: API{
			RatePerMinute: defaultAPIRatePerMinute,
			Burst:         defaultAPIBurst,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
