package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"FinCast/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Finnhub struct {
		APIKey  string        `yaml:"api_key"`
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"finnhub"`
	Tavily struct {
		APIKey      string        `yaml:"api_key"`
		BaseURL     string        `yaml:"base_url"`
		Timeout     time.Duration `yaml:"timeout"`
		MaxArticles int           `yaml:"max_articles"`
	} `yaml:"tavily"`
	Sentiment struct {
		ServiceURL string        `yaml:"service_url"`
		Timeout    time.Duration `yaml:"timeout"`
		MaxTokens  int           `yaml:"max_tokens"`
	} `yaml:"sentiment"`
	Forecast struct {
		HistoryPeriod    string        `yaml:"history_period"`
		DataCacheTTL     time.Duration `yaml:"data_cache_ttl"`
		PredictionTTL    time.Duration `yaml:"prediction_cache_ttl"`
		ChangepointScale float64       `yaml:"changepoint_scale"`
		IntervalWidth    float64       `yaml:"interval_width"`
	} `yaml:"forecast"`
	Symbols struct {
		SourceURL string        `yaml:"source_url"`
		CacheTTL  time.Duration `yaml:"cache_ttl"`
		Redis     struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"symbols"`
	RateLimit struct {
		Enabled      bool    `yaml:"enabled"`
		Capacity     float64 `yaml:"capacity"`
		RefillPerSec float64 `yaml:"refill_per_sec"`
	} `yaml:"ratelimit"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("TAVILY_API_KEY"); v != "" {
		c.Tavily.APIKey = v
	}
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		c.Finnhub.APIKey = v
	}
	if v := os.Getenv("SENTIMENT_URL"); v != "" {
		c.Sentiment.ServiceURL = v
	}
	c.Server.Port = util.ParseIntDefault(os.Getenv("PORT"), c.Server.Port)

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func parse(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		// a cold-cache prediction fits the model inline
		c.Server.WriteTimeout = 120 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Finnhub.BaseURL == "" {
		c.Finnhub.BaseURL = "https://finnhub.io/api/v1"
	}
	if c.Finnhub.Timeout == 0 {
		c.Finnhub.Timeout = 15 * time.Second
	}
	if c.Tavily.BaseURL == "" {
		c.Tavily.BaseURL = "https://api.tavily.com"
	}
	if c.Tavily.Timeout == 0 {
		c.Tavily.Timeout = 30 * time.Second
	}
	if c.Tavily.MaxArticles == 0 {
		c.Tavily.MaxArticles = 20
	}
	if c.Sentiment.Timeout == 0 {
		c.Sentiment.Timeout = 30 * time.Second
	}
	if c.Sentiment.MaxTokens == 0 {
		c.Sentiment.MaxTokens = 512
	}
	if c.Forecast.HistoryPeriod == "" {
		c.Forecast.HistoryPeriod = "2y"
	}
	if c.Forecast.DataCacheTTL == 0 {
		c.Forecast.DataCacheTTL = 6 * time.Hour
	}
	if c.Forecast.PredictionTTL == 0 {
		c.Forecast.PredictionTTL = 24 * time.Hour
	}
	if c.Forecast.ChangepointScale == 0 {
		c.Forecast.ChangepointScale = 0.05
	}
	if c.Forecast.IntervalWidth == 0 {
		c.Forecast.IntervalWidth = 0.8
	}
	if c.Symbols.SourceURL == "" {
		c.Symbols.SourceURL = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"
	}
	if c.Symbols.CacheTTL == 0 {
		c.Symbols.CacheTTL = time.Hour
	}
	if c.Symbols.Redis.Port == 0 {
		c.Symbols.Redis.Port = 6379
	}
	if c.RateLimit.Capacity == 0 {
		c.RateLimit.Capacity = 10
	}
	if c.RateLimit.RefillPerSec == 0 {
		c.RateLimit.RefillPerSec = 0.5
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Tavily.APIKey == "" {
		return fmt.Errorf("tavily.api_key is required")
	}
	if c.Finnhub.APIKey == "" {
		return fmt.Errorf("finnhub.api_key is required")
	}
	if c.Sentiment.ServiceURL == "" {
		return fmt.Errorf("sentiment.service_url is required")
	}
	return nil
}
