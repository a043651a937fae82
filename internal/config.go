package internal

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigEnv names the environment variable holding the config file path
const ConfigEnv = "CASE_EVIDENCE_CONFIG"

// Config captures the settings for the evidence workspace
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	State    StateConfig    `yaml:"state"`
	Prompts  PromptsConfig  `yaml:"prompts"`
	Billing  BillingConfig  `yaml:"billing"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// DatabaseConfig locates the evidence database
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// StateConfig locates persisted selection and run history
type StateConfig struct {
	Dir string `yaml:"dir"`
}

// PromptsConfig locates an optional YAML prompt catalog
type PromptsConfig struct {
	Path string `yaml:"path"`
}

// BillingConfig controls synthesized time entries
type BillingConfig struct {
	HourlyRate float64 `yaml:"hourlyRate"`
}

// AnalysisConfig controls the simulated generation round-trip
type AnalysisConfig struct {
	Delay time.Duration `yaml:"delay"`
}

// LoggingConfig controls log verbosity
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// MetricsConfig controls optional metrics textfile output
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// LoadConfig reads a YAML config file, falling back to defaults and
// applying CASE_EVIDENCE_* environment overrides.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ConfigError{Path: path, Err: err}
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &ConfigError{Path: path, Err: err}
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultConfig places the database and state under ~/.case-evidence
func DefaultConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, &ConfigError{Path: "", Err: err}
	}
	base := filepath.Join(home, ".case-evidence")
	return &Config{
		Database: DatabaseConfig{Path: filepath.Join(base, "evidence.db")},
		State:    StateConfig{Dir: filepath.Join(base, "state")},
		Billing:  BillingConfig{HourlyRate: DefaultHourlyRate},
		Analysis: AnalysisConfig{Delay: 1500 * time.Millisecond},
		Logging:  LoggingConfig{Level: "info"},
	}, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CASE_EVIDENCE_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("CASE_EVIDENCE_STATE_DIR"); v != "" {
		cfg.State.Dir = v
	}
	if v := os.Getenv("CASE_EVIDENCE_PROMPTS"); v != "" {
		cfg.Prompts.Path = v
	}
	if v := os.Getenv("CASE_EVIDENCE_HOURLY_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil && rate > 0 {
			cfg.Billing.HourlyRate = rate
		}
	}
	if v := os.Getenv("CASE_EVIDENCE_ANALYSIS_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Analysis.Delay = d
		}
	}
	if v := os.Getenv("CASE_EVIDENCE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CASE_EVIDENCE_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
}

// BillingPolicy returns the default policy at the configured rate
func (c *Config) BillingPolicy() BillingPolicy {
	policy := DefaultBillingPolicy()
	if c.Billing.HourlyRate > 0 {
		policy.HourlyRate = c.Billing.HourlyRate
	}
	return policy
}
