// Package config loads driver settings from a YAML (or JSON) file and the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. A missing file means defaults.
const DefaultPath = "intake.yaml"

// Config holds every tunable of the intake driver.
type Config struct {
	Model       ModelConfig      `yaml:"model" json:"model"`
	Workflow    WorkflowConfig   `yaml:"workflow" json:"workflow"`
	Redis       RedisConfig      `yaml:"redis" json:"redis"`
	Checkpoints CheckpointConfig `yaml:"checkpoints" json:"checkpoints"`
	LogLevel    string           `yaml:"log_level" json:"log_level"`
	MetricsAddr string           `yaml:"metrics_addr" json:"metrics_addr"`
	Listings    string           `yaml:"listings" json:"listings"`
}

// ModelConfig configures the completion oracle.
type ModelConfig struct {
	Name        string  `yaml:"name" json:"name"`
	APIKey      string  `yaml:"api_key" json:"api_key"`
	Temperature float32 `yaml:"temperature" json:"temperature"`
}

// WorkflowConfig bounds a single run.
type WorkflowConfig struct {
	MaxSteps   int `yaml:"max_steps" json:"max_steps"`
	MaxRepairs int `yaml:"max_repairs" json:"max_repairs"`
}

// RedisConfig enables checkpoints and session locks in Redis when Addr is set.
type RedisConfig struct {
	Addr   string        `yaml:"addr" json:"addr"`
	Prefix string        `yaml:"prefix" json:"prefix"`
	TTL    time.Duration `yaml:"ttl" json:"ttl"`
}

// CheckpointConfig selects and protects the checkpoint store shared between processes.
type CheckpointConfig struct {
	// Dir keeps checkpoints as files when no Redis address is set.
	Dir string `yaml:"dir" json:"dir"`
	// EncryptionKey is a base64 AES-256 key; empty disables encryption.
	EncryptionKey string `yaml:"encryption_key" json:"encryption_key"`
	// MaskPII masks owner identity, e-mails and phone numbers before saving.
	MaskPII bool `yaml:"mask_pii" json:"mask_pii"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Model: ModelConfig{
			Name:        "gemini-2.0-flash",
			Temperature: 0,
		},
		Workflow: WorkflowConfig{
			MaxSteps:   10,
			MaxRepairs: 3,
		},
		Redis: RedisConfig{
			Prefix: "intake:run:",
			TTL:    time.Hour,
		},
		LogLevel: "warn",
	}
}

// Load reads path over the defaults and then applies environment overrides.
// A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("failed to read config: %w", err)
	default:
		if strings.ToLower(filepath.Ext(path)) == ".json" {
			if err := json.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.LookupEnv)
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("INTAKE_MODEL"); ok && v != "" {
		c.Model.Name = v
	}
	for _, key := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if v, ok := lookup(key); ok && v != "" && c.Model.APIKey == "" {
			c.Model.APIKey = v
		}
	}
	if v, ok := lookup("INTAKE_REDIS_ADDR"); ok {
		c.Redis.Addr = v
	}
	if v, ok := lookup("INTAKE_CHECKPOINT_DIR"); ok && v != "" {
		c.Checkpoints.Dir = v
	}
	if v, ok := lookup("INTAKE_CHECKPOINT_KEY"); ok && v != "" {
		c.Checkpoints.EncryptionKey = v
	}
	if v, ok := lookup("INTAKE_LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup("INTAKE_METRICS_ADDR"); ok {
		c.MetricsAddr = v
	}
}

// Validate rejects settings the engine cannot honor.
func (c Config) Validate() error {
	if c.Model.Name == "" {
		return fmt.Errorf("config: model.name is required")
	}
	if c.Model.Temperature < 0 || c.Model.Temperature > 2 {
		return fmt.Errorf("config: model.temperature %v out of range [0, 2]", c.Model.Temperature)
	}
	if c.Workflow.MaxSteps <= 0 {
		return fmt.Errorf("config: workflow.max_steps must be positive")
	}
	if c.Workflow.MaxRepairs < 0 {
		return fmt.Errorf("config: workflow.max_repairs must not be negative")
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("config: redis.ttl must not be negative")
	}
	return nil
}
