package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" validate:"required"`
	Logging     struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Server struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"15s"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Provider struct {
		APIKey    string        `yaml:"api_key" validate:"required"`
		BaseURL   string        `yaml:"base_url" validate:"required,url"`
		Timeout   time.Duration `yaml:"timeout" default:"30s"`
		ReqPerSec float64       `yaml:"req_per_sec" default:"0.5"`
		Burst     float64       `yaml:"burst" default:"5"`
		CacheTTL  time.Duration `yaml:"cache_ttl" default:"6h"`
		UseCache  bool          `yaml:"use_cache" default:"true"`
	} `yaml:"provider"`
	Scan struct {
		Tickers  []string      `yaml:"tickers" validate:"min=1"`
		Period   string        `yaml:"period" default:"2y" validate:"oneof=6mo 1y 2y 5y max"`
		Horizons []int         `yaml:"horizons" default:"[1,5,10,21]" validate:"min=1,dive,gt=0"`
		Workers  int           `yaml:"workers" default:"4" validate:"gte=1"`
		Interval time.Duration `yaml:"interval" default:"24h"`
		Sinks    []string      `yaml:"sinks" validate:"dive,oneof=kafka clickhouse"`
	} `yaml:"scan"`
	Detect struct {
		PivotWindow       int     `yaml:"pivot_window" default:"5" validate:"gte=1"`
		LookbackWindow    int     `yaml:"lookback_window" default:"60" validate:"gte=10"`
		MinDeclinePct     float64 `yaml:"min_decline_pct" default:"0.10" validate:"gt=0"`
		PairTolerance     float64 `yaml:"pair_tolerance" default:"0.02" validate:"gt=0,lt=1"`
		MinBouncePct      float64 `yaml:"min_bounce_pct" default:"0.05" validate:"gt=0"`
		RequireVolumeDrop bool    `yaml:"require_volume_drop"`
		MomentumThreshold float64 `yaml:"momentum_threshold" default:"0.10" validate:"gt=0"`
		VolumeSurgeRatio  float64 `yaml:"volume_surge_ratio" default:"2.0" validate:"gt=1"`
		GapThreshold      float64 `yaml:"gap_threshold" default:"0.03" validate:"gt=0"`
	} `yaml:"detect"`
	Evaluator struct {
		MinOccurrences int     `yaml:"min_occurrences" default:"5" validate:"gte=1"`
		MinConfidence  float64 `yaml:"min_confidence" default:"0.6" validate:"gt=0,lt=1"`
	} `yaml:"evaluator"`
	Edge struct {
		PriorStd            float64 `yaml:"prior_std" default:"0.05" validate:"gt=0"`
		SurvivorshipPenalty float64 `yaml:"survivorship_penalty" default:"0.80" validate:"gt=0,lte=1"`
		MinThreshold        float64 `yaml:"min_threshold" default:"0.005"`
		TransactionCost     float64 `yaml:"transaction_cost" default:"0.001" validate:"gte=0"`
	} `yaml:"edge"`
	Permutation struct {
		NPermutations int   `yaml:"n_permutations" default:"1000" validate:"gte=1"`
		Seed          int64 `yaml:"seed" default:"42"`
	} `yaml:"permutation"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic" default:"edgescan.reports"`
		RequiredAcks int      `yaml:"required_acks" default:"-1"`
		Compression  string   `yaml:"compression" default:"gzip"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts" default:"3"`
			BatchBytes   int           `yaml:"batch_bytes" default:"1048576"`
			BatchSize    int           `yaml:"batch_size" default:"100"`
			BatchTimeout time.Duration `yaml:"batch_timeout" default:"1s"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host" validate:"required"`
		Port             int           `yaml:"port" default:"9000"`
		Database         string        `yaml:"database" default:"edgescan"`
		Table            string        `yaml:"table" default:"scan_reports"`
		User             string        `yaml:"user" default:"default"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout      time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout     time.Duration `yaml:"write_timeout" default:"10s"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Redis struct {
		Enabled      bool          `yaml:"enabled"`
		Host         string        `yaml:"host" default:"localhost"`
		Port         int           `yaml:"port" default:"6379"`
		Password     string        `yaml:"password"`
		DB           int           `yaml:"db"`
		PoolSize     int           `yaml:"pool_size" default:"10"`
		MinIdleConns int           `yaml:"min_idle_conns" default:"5"`
		PoolTimeout  time.Duration `yaml:"pool_timeout" default:"30s"`
	} `yaml:"redis"`
	Queue struct {
		Enabled    bool          `yaml:"enabled"`
		Workers    int           `yaml:"workers" default:"4" validate:"gte=1"`
		RetryLimit int           `yaml:"retry_limit" default:"3"`
		RetryDelay time.Duration `yaml:"retry_delay" default:"30s"`
	} `yaml:"queue"`
}

// Load reads and parses a YAML configuration file, applying struct defaults
// before validation.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("PROVIDER_API_KEY"); v != "" {
		c.Provider.APIKey = v
	}
	if v := os.Getenv("TICKERS"); v != "" {
		c.Scan.Tickers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	for _, sink := range c.Scan.Sinks {
		switch sink {
		case "kafka":
			if len(c.Kafka.Brokers) == 0 {
				return fmt.Errorf("kafka sink enabled but kafka.brokers is empty")
			}
		}
	}
	if c.Queue.Enabled && !c.Redis.Enabled {
		return fmt.Errorf("queue requires redis to be enabled")
	}
	return nil
}
