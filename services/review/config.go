// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package review

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds service configuration.
//
// Loaded once at startup; never mutated at request time.
type Config struct {
	// Port is the HTTP listen port.
	Port int `yaml:"port" validate:"required,min=1,max=65535"`

	// Workers bounds parallel per-file analysis in the repository
	// fan-out.
	Workers int `yaml:"workers" validate:"required,min=1,max=64"`

	// MaxFileBytes skips files larger than this during analysis.
	// Zero disables the guard.
	MaxFileBytes int64 `yaml:"max_file_bytes" validate:"min=0"`

	// CloneTimeoutSeconds bounds one repository clone.
	CloneTimeoutSeconds int `yaml:"clone_timeout_seconds" validate:"required,min=1"`

	// LintTimeoutSeconds bounds one linter invocation.
	LintTimeoutSeconds int `yaml:"lint_timeout_seconds" validate:"required,min=1"`

	// AdvisorSampleFiles is the number of leading repository files
	// concatenated into the advisory prompt.
	AdvisorSampleFiles int `yaml:"advisor_sample_files" validate:"min=0,max=10"`

	// LogDir enables JSON file logging when non-empty.
	LogDir string `yaml:"log_dir"`

	// Advisor configures the natural-language review call.
	Advisor AdvisorConfig `yaml:"advisor"`
}

// AdvisorConfig configures the external review model.
type AdvisorConfig struct {
	// Enabled turns the advisory pass on. The API key is read from the
	// OPENAI_API_KEY environment variable, never from this file.
	Enabled bool `yaml:"enabled"`

	// Model is the chat model identifier.
	Model string `yaml:"model"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Port:                8080,
		Workers:             4,
		MaxFileBytes:        1 << 20,
		CloneTimeoutSeconds: 120,
		LintTimeoutSeconds:  30,
		AdvisorSampleFiles:  3,
		Advisor: AdvisorConfig{
			Enabled: false,
			Model:   "gpt-4o-mini",
		},
	}
}

// LoadConfig reads a YAML config file over the defaults, applies
// environment overrides, and validates the result.
//
// Precedence, lowest to highest: defaults, config file, environment.
//
// Inputs:
//
//	path - Config file path. Empty skips the file layer.
//
// Outputs:
//
//	Config - The effective configuration.
//	error - Non-nil on read, parse, or validation failure.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies REVIEWD_* environment variables over cfg.
// Unset variables leave the field untouched; unparseable numbers are
// ignored and caught by validation only if the file value was bad too.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("REVIEWD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("REVIEWD_WORKERS"); v != "" {
		if workers, err := strconv.Atoi(v); err == nil {
			cfg.Workers = workers
		}
	}
	if v := os.Getenv("REVIEWD_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("REVIEWD_ADVISOR_MODEL"); v != "" {
		cfg.Advisor.Model = v
	}
}

// CloneTimeout returns the clone timeout as a duration.
func (c Config) CloneTimeout() time.Duration {
	return time.Duration(c.CloneTimeoutSeconds) * time.Second
}

// LintTimeout returns the lint timeout as a duration.
func (c Config) LintTimeout() time.Duration {
	return time.Duration(c.LintTimeoutSeconds) * time.Second
}
