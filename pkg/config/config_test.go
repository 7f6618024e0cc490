package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validYAML = `
environment: test
tavily:
  api_key: tvly-test
finnhub:
  api_key: fh-test
sentiment:
  service_url: http://localhost:9000
`

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", c.Server.Port)
	}
	if c.Forecast.DataCacheTTL != 6*time.Hour {
		t.Errorf("expected 6h data cache ttl, got %v", c.Forecast.DataCacheTTL)
	}
	if c.Forecast.PredictionTTL != 24*time.Hour {
		t.Errorf("expected 24h prediction ttl, got %v", c.Forecast.PredictionTTL)
	}
	if c.Tavily.MaxArticles != 20 {
		t.Errorf("expected 20 max articles, got %d", c.Tavily.MaxArticles)
	}
	if c.Forecast.ChangepointScale != 0.05 {
		t.Errorf("expected changepoint scale 0.05, got %v", c.Forecast.ChangepointScale)
	}
}

func TestLoadMissingTavilyKey(t *testing.T) {
	_, err := Load(writeConfig(t, `
environment: test
finnhub:
  api_key: fh-test
sentiment:
  service_url: http://localhost:9000
`))
	if err == nil {
		t.Fatal("expected error for missing tavily.api_key")
	}
}

func TestLoadWithEnvOverride(t *testing.T) {
	t.Setenv("TAVILY_API_KEY", "tvly-env")
	t.Setenv("PORT", "9090")
	c, err := LoadWithEnv(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Tavily.APIKey != "tvly-env" {
		t.Errorf("expected env override, got %q", c.Tavily.APIKey)
	}
	if c.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", c.Server.Port)
	}
}

func TestLoadWithEnvBadPortKeepsDefault(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	c, err := LoadWithEnv(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", c.Server.Port)
	}
}
