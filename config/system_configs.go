package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/seanazu/value-hunter/model"
)

const (
	DefaultPort            = "8080"
	DefaultScreenerBaseUrl = "http://localhost:3002"
	DefaultMongoDatabase   = "ValueHunter"
	DefaultRatePerSecond   = 5.0
	DefaultRateBurst       = 15
)

type SystemConfigs struct {
	Config *model.EnvConfig
}

// LoadConfigs reads .env (if present) and parses the JSON blob in the `config` variable.
func LoadConfigs() (*SystemConfigs, error) {
	_ = godotenv.Load()

	rawJson := os.Getenv("config")
	if rawJson == "" {
		return nil, fmt.Errorf("environment variable 'config' is empty or not set")
	}

	return ParseConfigs(rawJson)
}

func ParseConfigs(rawJson string) (*SystemConfigs, error) {
	var envCfg model.EnvConfig
	if err := json.Unmarshal([]byte(rawJson), &envCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	applyDefaults(&envCfg)

	return &SystemConfigs{
		Config: &envCfg,
	}, nil
}

func applyDefaults(cfg *model.EnvConfig) {
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	cfg.ScreenerBaseUrl = strings.TrimRight(strings.TrimSpace(cfg.ScreenerBaseUrl), "/")
	if cfg.ScreenerBaseUrl == "" {
		cfg.ScreenerBaseUrl = DefaultScreenerBaseUrl
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = DefaultMongoDatabase
	}
	if cfg.RateLimitPerSecond <= 0 {
		cfg.RateLimitPerSecond = DefaultRatePerSecond
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = DefaultRateBurst
	}
}

func (s *SystemConfigs) IsProduction() bool {
	return s.Config.Environment == "production"
}

func (s *SystemConfigs) ScreenerTimeout() time.Duration {
	return time.Duration(s.Config.ScreenerTimeoutSeconds) * time.Second
}

func (s *SystemConfigs) SessionTTL() time.Duration {
	return time.Duration(s.Config.SessionTtlMinutes) * time.Minute
}

func (s *SystemConfigs) Runtime() *model.RuntimeConfig {
	return &model.RuntimeConfig{
		FrontendUrls:  s.Config.FrontendUrls,
		RateLimiter:   s.Config.RateLimiter,
		RatePerSecond: s.Config.RateLimitPerSecond,
		RateBurst:     s.Config.RateLimitBurst,
	}
}

type ConfigManager struct {
	value atomic.Value
}

func NewConfigManager(initial *model.RuntimeConfig) *ConfigManager {
	cm := &ConfigManager{}
	cm.value.Store(initial)
	return cm
}

func (cm *ConfigManager) GetConfig() *model.RuntimeConfig {
	return cm.value.Load().(*model.RuntimeConfig)
}

func (cm *ConfigManager) UpdateConfig(newCfg *model.RuntimeConfig) {
	cm.value.Store(newCfg)
}
