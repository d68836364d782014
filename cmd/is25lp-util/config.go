package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the tool configuration loaded from yaml.
type Config struct {
	Bridge BridgeConfig `yaml:"bridge"`
	Flash  FlashConfig  `yaml:"flash"`
}

// BridgeConfig names the serial adapter.
type BridgeConfig struct {
	Port      string `yaml:"port"`
	BaudRate  int    `yaml:"baud_rate"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// FlashConfig overrides driver defaults. Zero values keep the defaults.
type FlashConfig struct {
	ExpectedManufacturer byte `yaml:"expected_manufacturer"`
	ExpectedCapacity     byte `yaml:"expected_capacity"`
	PollIntervalUs       int  `yaml:"poll_interval_us"`
	ChipEraseTimeoutMs   int  `yaml:"chip_erase_timeout_ms"`
}

// LoadConfig reads and parses the yaml configuration file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return &cfg, nil
}

// ValidateConfig checks the loaded configuration for required fields.
func ValidateConfig(cfg *Config) error {
	if cfg.Bridge.Port == "" {
		return errors.New("bridge.port is required")
	}
	if cfg.Bridge.BaudRate < 0 {
		return errors.New("bridge.baud_rate must not be negative")
	}
	if cfg.Bridge.TimeoutMs < 0 {
		return errors.New("bridge.timeout_ms must not be negative")
	}
	return nil
}

func (c BridgeConfig) timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
