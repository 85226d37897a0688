package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
environment: test
provider:
  api_key: key
  base_url: https://example.com/api/v1
scan:
  tickers: [AAPL, MSFT]
clickhouse:
  host: localhost
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "2y", cfg.Scan.Period)
	assert.Equal(t, []int{1, 5, 10, 21}, cfg.Scan.Horizons)
	assert.Equal(t, 4, cfg.Scan.Workers)
	assert.Equal(t, 5, cfg.Evaluator.MinOccurrences)
	assert.Equal(t, 0.05, cfg.Edge.PriorStd)
	assert.Equal(t, 1000, cfg.Permutation.NPermutations)
	assert.Equal(t, int64(42), cfg.Permutation.Seed)
	assert.Equal(t, "edgescan", cfg.ClickHouse.Database)
	assert.Equal(t, "scan_reports", cfg.ClickHouse.Table)
}

func TestLoadMissingAPIKey(t *testing.T) {
	body := `
environment: test
provider:
  base_url: https://example.com/api/v1
scan:
  tickers: [AAPL]
clickhouse:
  host: localhost
`
	_, err := Load(writeConfig(t, body))
	require.Error(t, err)
}

func TestLoadRejectsEmptyTickers(t *testing.T) {
	body := `
environment: test
provider:
  api_key: key
  base_url: https://example.com/api/v1
clickhouse:
  host: localhost
`
	_, err := Load(writeConfig(t, body))
	require.Error(t, err)
}

func TestLoadRejectsUnknownPeriod(t *testing.T) {
	body := `
environment: test
provider:
  api_key: key
  base_url: https://example.com/api/v1
scan:
  tickers: [AAPL]
  period: 3w
clickhouse:
  host: localhost
`
	_, err := Load(writeConfig(t, body))
	require.Error(t, err)
}

func TestValidateKafkaSinkNeedsBrokers(t *testing.T) {
	body := `
environment: test
provider:
  api_key: key
  base_url: https://example.com/api/v1
scan:
  tickers: [AAPL]
  sinks: [kafka]
clickhouse:
  host: localhost
`
	_, err := Load(writeConfig(t, body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka.brokers")
}

func TestValidateQueueNeedsRedis(t *testing.T) {
	body := `
environment: test
provider:
  api_key: key
  base_url: https://example.com/api/v1
scan:
  tickers: [AAPL]
clickhouse:
  host: localhost
queue:
  enabled: true
`
	_, err := Load(writeConfig(t, body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("PROVIDER_API_KEY", "env-key")
	t.Setenv("TICKERS", "NVDA,AMD")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")

	cfg, err := LoadWithEnv(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Provider.APIKey)
	assert.Equal(t, []string{"NVDA", "AMD"}, cfg.Scan.Tickers)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.Kafka.Brokers)
}
