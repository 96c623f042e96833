package model

import "time"

// Config holds the full service configuration.
// Values are resolved by viper from defaults, config file, env and flags.
type Config struct {
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Browser    BrowserConfig    `yaml:"browser" mapstructure:"browser"`
	HTTP       HTTPConfig       `yaml:"http" mapstructure:"http"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Search     SearchConfig     `yaml:"search" mapstructure:"search"`
	Classifier ClassifierConfig `yaml:"classifier" mapstructure:"classifier"`
	LLM        LLMConfig        `yaml:"llm" mapstructure:"llm"`
	Trust      TrustConfig      `yaml:"trust" mapstructure:"trust"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout    time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RatePerSecond  float64       `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst      int           `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// BrowserConfig configures the headless render fetch.
type BrowserConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	UserAgent string        `yaml:"user_agent" mapstructure:"user_agent"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// HTTPConfig configures the plain HTTP fetch fallback.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// CacheConfig configures the rendered-HTML cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// SearchConfig configures the related-article search providers.
type SearchConfig struct {
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxResults        int           `yaml:"max_results" mapstructure:"max_results"`
	NaverClientID     string        `yaml:"naver_client_id" mapstructure:"naver_client_id"`
	NaverClientSecret string        `yaml:"naver_client_secret" mapstructure:"naver_client_secret"`
	KakaoAPIKey       string        `yaml:"kakao_api_key" mapstructure:"kakao_api_key"`
}

// ClassifierConfig configures the external fake-news classifier service.
type ClassifierConfig struct {
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint"`
	APIKey   string        `yaml:"api_key" mapstructure:"api_key"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LLMConfig configures the judgment service.
type LLMConfig struct {
	APIKey  string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Model   string        `yaml:"model" mapstructure:"model"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// TrustConfig configures the publisher trust table.
type TrustConfig struct {
	TablePath string `yaml:"table_path" mapstructure:"table_path"` // optional override of the embedded table
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   120 * time.Second,
			AllowedOrigins: []string{"*"},
			RatePerSecond:  1,
			RateBurst:      3,
		},
		Browser: BrowserConfig{
			Enabled:   true,
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			Timeout:   30 * time.Second,
		},
		HTTP: HTTPConfig{
			Timeout:       20 * time.Second,
			UserAgent:     "Veracity/0.1 (+https://github.com/infomate/veracity)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Search: SearchConfig{
			Timeout:    5 * time.Second,
			MaxResults: 5,
		},
		Classifier: ClassifierConfig{
			Timeout: 15 * time.Second,
		},
		LLM: LLMConfig{
			Model:   "gpt-4o-mini",
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
