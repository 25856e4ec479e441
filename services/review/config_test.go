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
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviewd.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.AdvisorSampleFiles != 3 {
		t.Errorf("AdvisorSampleFiles = %d, want 3", cfg.AdvisorSampleFiles)
	}
	if cfg.Advisor.Enabled {
		t.Error("advisor should be disabled by default")
	}
	if cfg.CloneTimeout() != 120*time.Second {
		t.Errorf("CloneTimeout = %v", cfg.CloneTimeout())
	}
	if cfg.LintTimeout() != 30*time.Second {
		t.Errorf("LintTimeout = %v", cfg.LintTimeout())
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
port: 9090
workers: 8
advisor:
  enabled: true
  model: gpt-4o
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 || cfg.Workers != 8 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if !cfg.Advisor.Enabled || cfg.Advisor.Model != "gpt-4o" {
		t.Errorf("advisor overrides not applied: %+v", cfg.Advisor)
	}
	// Untouched fields keep their defaults.
	if cfg.CloneTimeoutSeconds != 120 {
		t.Errorf("CloneTimeoutSeconds = %d, want default 120", cfg.CloneTimeoutSeconds)
	}
}

func TestLoadConfig_ValidationRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"port out of range", "port: 99999"},
		{"zero workers", "workers: 0"},
		{"too many workers", "workers: 128"},
		{"negative file cap", "max_file_bytes: -1"},
		{"oversized sample", "advisor_sample_files: 50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := LoadConfig(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "port: 9090")
	t.Setenv("REVIEWD_PORT", "7070")
	t.Setenv("REVIEWD_WORKERS", "6")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 7070 {
		t.Errorf("Port = %d, env must win over file", cfg.Port)
	}
	if cfg.Workers != 6 {
		t.Errorf("Workers = %d, want 6", cfg.Workers)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "port: [not a number")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}
