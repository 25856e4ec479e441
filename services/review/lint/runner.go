// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package lint adapts external linter binaries behind a uniform
// interface producing normalized diagnostics per source unit.
//
// The adapter stages content into an ephemeral working directory with a
// self-contained rule profile, so results never depend on the caller's
// project configuration. The staging directory is removed on every exit
// path. Linter failure on one source unit yields zero diagnostics rather
// than an error: one unparseable file must never abort a batch.
package lint

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/AleutianAI/AleutianReview/services/review/language"
)

// Severity classifies a diagnostic.
type Severity string

const (
	// SeverityError is a problem the linter considers an error.
	SeverityError Severity = "error"

	// SeverityWarning is a problem the linter considers a warning.
	SeverityWarning Severity = "warning"
)

// Issue is one normalized lint diagnostic.
//
// Thread Safety: Immutable after creation.
type Issue struct {
	// Line is the 1-based line of the diagnostic.
	Line int

	// Column is the 1-based column of the diagnostic.
	Column int

	// Severity is error or warning.
	Severity Severity

	// Message is the human-readable diagnostic text.
	Message string

	// Rule is the linter rule identifier, if the linter reported one.
	Rule string
}

// LinterConfig describes how to invoke one external linter.
//
// Thread Safety: Immutable after registration with a Runner.
type LinterConfig struct {
	// Command is the linter binary name, resolved via PATH.
	Command string

	// Args are the fixed invocation arguments. The staged file name is
	// appended as the final argument.
	Args []string

	// Ext is the extension for the staged file (e.g. ".jsx").
	Ext string

	// ConfigFileName, if non-empty, names a profile file written into
	// the staging directory before invocation.
	ConfigFileName string

	// ConfigContent is the profile file's content.
	ConfigContent string

	// Parser converts the linter's stdout into issues.
	Parser func(data []byte) ([]Issue, error)

	// OKExitCodes are process exit codes that still carry parseable
	// output. Most linters exit non-zero when they find issues.
	OKExitCodes []int
}

// defaultTimeout bounds one linter invocation.
const defaultTimeout = 30 * time.Second

// eslintProfile is the fixed baseline rule profile for script languages.
//
// The profile is self-contained (no extends, no plugins) so the adapter
// works without any node_modules in the staging directory.
const eslintProfile = `{
  "root": true,
  "env": {"browser": true, "node": true, "es2021": true},
  "parserOptions": {
    "ecmaVersion": "latest",
    "sourceType": "module",
    "ecmaFeatures": {"jsx": true}
  },
  "rules": {
    "no-unused-vars": "warn",
    "no-console": "warn",
    "no-undef": "error",
    "semi": ["warn", "always"]
  }
}`

// defaultConfigs builds the per-language linter table.
func defaultConfigs() map[language.Language]*LinterConfig {
	eslint := func(ext string) *LinterConfig {
		return &LinterConfig{
			Command:        "eslint",
			Args:           []string{"--no-eslintrc", "--config", ".eslintrc.json", "--format", "json"},
			Ext:            ext,
			ConfigFileName: ".eslintrc.json",
			ConfigContent:  eslintProfile,
			Parser:         parseESLintOutput,
			OKExitCodes:    []int{0, 1},
		}
	}

	return map[language.Language]*LinterConfig{
		language.JS:  eslint(".js"),
		language.JSX: eslint(".jsx"),
		language.TS:  eslint(".ts"),
		language.TSX: eslint(".tsx"),
		language.Python: {
			Command:     "ruff",
			Args:        []string{"check", "--isolated", "--select", "F,E7,E9", "--output-format", "json"},
			Ext:         ".py",
			Parser:      parseRuffOutput,
			OKExitCodes: []int{0, 1},
		},
	}
}

// Runner invokes external linters on in-memory content.
//
// # Description
//
// Runner is the LintAdapter: given source text and a language, it stages
// the text, runs the configured linter with a fixed rule profile, and
// parses the JSON output into normalized issues.
//
// # Thread Safety
//
// Safe for concurrent use. Each invocation stages into its own
// temporary directory.
type Runner struct {
	configs map[language.Language]*LinterConfig
	timeout time.Duration
	logger  *slog.Logger

	mu        sync.Mutex
	available map[string]bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout overrides the per-invocation timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithConfig registers or replaces the linter configuration for a
// language. Passing nil removes the language.
func WithConfig(lang language.Language, cfg *LinterConfig) Option {
	return func(r *Runner) {
		if cfg == nil {
			delete(r.configs, lang)
			return
		}
		r.configs[lang] = cfg
	}
}

// WithLogger sets the logger for recovered failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a runner with the default linter table.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		configs:   defaultConfigs(),
		timeout:   defaultTimeout,
		logger:    slog.Default(),
		available: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsAvailable reports whether the linter for lang is installed.
//
// Lookup results are cached for the runner's lifetime.
func (r *Runner) IsAvailable(lang language.Language) bool {
	cfg, ok := r.configs[lang]
	if !ok {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if avail, cached := r.available[cfg.Command]; cached {
		return avail
	}
	_, err := exec.LookPath(cfg.Command)
	r.available[cfg.Command] = err == nil
	return err == nil
}

// Lint produces normalized diagnostics for content.
//
// Description:
//
//	Runs the configured linter for lang on content. Every failure mode
//	(no configuration, missing binary, process failure, unparseable
//	output) degrades to zero diagnostics: the failure is logged, never
//	propagated. An empty result therefore means "no issues reported",
//	not "clean".
//
// Inputs:
//
//	ctx - Context for cancellation; a per-invocation timeout is applied
//	on top of it.
//	content - The source text to lint.
//	lang - The source unit's language.
//
// Outputs:
//
//	[]Issue - Normalized diagnostics, possibly empty.
//
// Thread Safety: Safe for concurrent use.
func (r *Runner) Lint(ctx context.Context, content string, lang language.Language) []Issue {
	issues, err := r.lint(ctx, content, lang)
	if err != nil {
		r.logger.Warn("lint pass degraded to zero diagnostics",
			"language", lang.String(),
			"error", err)
		return nil
	}
	if issues == nil {
		issues = make([]Issue, 0)
	}
	return issues
}

// lint runs one linter invocation with staged content.
func (r *Runner) lint(ctx context.Context, content string, lang language.Language) ([]Issue, error) {
	cfg, ok := r.configs[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
	if content == "" {
		return nil, nil
	}
	if !r.IsAvailable(lang) {
		return nil, &LinterError{Linter: cfg.Command, Language: lang.String(), Err: ErrLinterNotInstalled}
	}

	// Stage content into an isolated working directory. The deferred
	// removal runs on every exit path, including parser errors below.
	dir, err := os.MkdirTemp("", "reviewd-lint-")
	if err != nil {
		return nil, fmt.Errorf("creating staging dir: %w", err)
	}
	defer os.RemoveAll(dir)

	fileName := "snippet" + cfg.Ext
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte(content), 0o600); err != nil {
		return nil, fmt.Errorf("staging content: %w", err)
	}
	if cfg.ConfigFileName != "" {
		if err := os.WriteFile(filepath.Join(dir, cfg.ConfigFileName), []byte(cfg.ConfigContent), 0o600); err != nil {
			return nil, fmt.Errorf("staging linter profile: %w", err)
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := append(append([]string{}, cfg.Args...), fileName)
	cmd := exec.CommandContext(runCtx, cfg.Command, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if runErr != nil && !exitCodeOK(runErr, cfg.OKExitCodes) {
		lerr := &LinterError{Linter: cfg.Command, Language: lang.String(), Err: ErrLinterFailed}
		lerr.Output = stderr.String()
		return nil, lerr
	}

	return cfg.Parser(stdout.Bytes())
}

// exitCodeOK reports whether err is an ExitError with an accepted code.
func exitCodeOK(err error, okCodes []int) bool {
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		return false
	}
	for _, code := range okCodes {
		if exitErr.ExitCode() == code {
			return true
		}
	}
	return false
}
