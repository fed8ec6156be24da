package model

// --- SYSTEM CONFIG ---
// EnvConfig holds the settings read from the `config` environment variable
type EnvConfig struct {
	Port                   string   `json:"port"`
	Environment            string   `json:"environment"`
	ScreenerBaseUrl        string   `json:"screenerBaseUrl"`
	ScreenerTimeoutSeconds int      `json:"screenerTimeoutSeconds"`
	SessionTtlMinutes      int      `json:"sessionTtlMinutes"`
	FrontendUrls           []string `json:"frontendUrls"`
	RateLimiter            bool     `json:"rateLimiter"`
	RateLimitPerSecond     float64  `json:"rateLimitPerSecond"`
	RateLimitBurst         int      `json:"rateLimitBurst"`
	Debug                  bool     `json:"debug"`
	MongoUri               string   `json:"mongoUri"`
	MongoDatabase          string   `json:"mongoDatabase"`
	PresetsFile            string   `json:"presetsFile"`
}

// RuntimeConfig holds the toggles that can change while the server runs
type RuntimeConfig struct {
	FrontendUrls []string `json:"frontendUrls"`
	RateLimiter  bool     `json:"rateLimiter"`
	// requests per second and burst allowed per client IP
	RatePerSecond float64 `json:"rateLimitPerSecond"`
	RateBurst     int     `json:"rateLimitBurst"`
}
