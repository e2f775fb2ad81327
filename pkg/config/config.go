package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Dashboard struct {
		Symbols  []string `yaml:"symbols"`
		Default1 string   `yaml:"default1"`
		Default2 string   `yaml:"default2"`
	} `yaml:"dashboard"`
	Backend struct {
		Type    string `yaml:"type"`     // csv or clickhouse
		DataDir string `yaml:"data_dir"` // csv backend
		Table   string `yaml:"table"`    // clickhouse backend
	} `yaml:"backend"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Cache struct {
		Type  string        `yaml:"type"` // none, memory, redis, layered
		TTL   time.Duration `yaml:"ttl"`
		Redis struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		LogTopic     string        `yaml:"log_topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		MaxAttempts  int           `yaml:"max_attempts"`
		Linger       time.Duration `yaml:"linger"`
		BatchSize    int           `yaml:"batch_size"`
		BatchBytes   int           `yaml:"batch_bytes"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		Async        bool          `yaml:"async"`
	} `yaml:"kafka"`
	Elastic struct {
		URL     string        `yaml:"url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"elastic"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
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

	// Override with environment variables
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Dashboard.Symbols = strings.Split(v, ",")
		// Old defaults may not exist in the new universe.
		c.Dashboard.Default1 = ""
		c.Dashboard.Default2 = ""
	}
	if v := os.Getenv("BACKEND"); v != "" {
		c.Backend.Type = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.Backend.DataDir = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
		c.Kafka.Enabled = true
	}
	if v := os.Getenv("ELASTIC_URL"); v != "" {
		c.Elastic.URL = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Backend.Type == "" {
		return fmt.Errorf("backend.type is required")
	}
	if c.Backend.Type != "csv" && c.Backend.Type != "clickhouse" {
		return fmt.Errorf("backend.type must be 'csv' or 'clickhouse', got '%s'", c.Backend.Type)
	}
	if len(c.Dashboard.Symbols) < 2 {
		return fmt.Errorf("dashboard.symbols needs at least two entries")
	}
	if c.Dashboard.Default1 == "" {
		c.Dashboard.Default1 = c.Dashboard.Symbols[0]
	}
	if c.Dashboard.Default2 == "" {
		c.Dashboard.Default2 = c.Dashboard.Symbols[1]
	}
	if c.Dashboard.Default1 == c.Dashboard.Default2 {
		return fmt.Errorf("dashboard defaults must differ, both are '%s'", c.Dashboard.Default1)
	}
	if !contains(c.Dashboard.Symbols, c.Dashboard.Default1) || !contains(c.Dashboard.Symbols, c.Dashboard.Default2) {
		return fmt.Errorf("dashboard defaults must be listed in dashboard.symbols")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	return nil
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
