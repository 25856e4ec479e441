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
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/AleutianReview/services/review/advisor"
	"github.com/AleutianAI/AleutianReview/services/review/language"
	"github.com/AleutianAI/AleutianReview/services/review/lint"
	"github.com/AleutianAI/AleutianReview/services/review/repo"
	"github.com/AleutianAI/AleutianReview/services/review/scanner"
)

// Linter is the lint capability consumed by the orchestrator.
//
// Implementations never propagate failure: a source unit that cannot be
// linted yields zero diagnostics.
type Linter interface {
	Lint(ctx context.Context, content string, lang language.Language) []lint.Issue
}

// FileCollector is the repository-collection capability consumed by the
// orchestrator.
type FileCollector interface {
	Collect(ctx context.Context, url string) ([]repo.File, error)
}

// Service is the analysis orchestrator.
//
// # Description
//
// For a snippet: classify, lint + scan, optionally advise, report.
// For a repository: collect files, fan the per-file pipeline out with
// per-file failure isolation, sample leading files for the advisor,
// aggregate, deduplicate, report.
//
// # Thread Safety
//
// Safe for concurrent use. All per-request state is local; the rule
// catalog and configuration are read-only after construction.
type Service struct {
	cfg       Config
	scanner   *scanner.Scanner
	linter    Linter
	collector FileCollector
	advisor   advisor.Advisor
	logger    *slog.Logger
}

// Dependencies are the external collaborators of a Service. Nil fields
// get production defaults; a nil Advisor disables the advisory pass.
type Dependencies struct {
	Linter    Linter
	Collector FileCollector
	Advisor   advisor.Advisor
	Logger    *slog.Logger
}

// NewService creates the orchestrator.
//
// Inputs:
//
//	cfg - Service configuration, already validated.
//	deps - Collaborators; see Dependencies for nil handling.
//
// Outputs:
//
//	*Service - Ready for concurrent use.
func NewService(cfg Config, deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Linter == nil {
		deps.Linter = lint.NewRunner(
			lint.WithTimeout(cfg.LintTimeout()),
			lint.WithLogger(deps.Logger),
		)
	}
	if deps.Collector == nil {
		deps.Collector = repo.NewCollector(
			repo.NewGitCloneSource(cfg.CloneTimeout(), cfg.MaxFileBytes),
		)
	}

	return &Service{
		cfg:       cfg,
		scanner:   scanner.NewScanner(),
		linter:    deps.Linter,
		collector: deps.Collector,
		advisor:   deps.Advisor,
		logger:    deps.Logger,
	}
}

// AnalyzeSnippet analyzes one free-text code snippet.
//
// Description:
//
//	Classifies the snippet's language, rejects anything outside the
//	supported subset, then runs the lint and security passes. The two
//	passes share no mutable state; their relative order does not affect
//	the result. The advisory pass runs last and degrades to absent on
//	failure.
//
// Inputs:
//
//	ctx - Context for the lint and advisor calls.
//	content - The snippet text.
//
// Outputs:
//
//	*Report - FileCount is always 1.
//	error - ErrInvalidInput for empty content, ErrUnsupportedLanguage
//	for a snippet outside the supported subset.
func (s *Service) AnalyzeSnippet(ctx context.Context, content string) (*Report, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: no content provided", ErrInvalidInput)
	}

	lang := language.Classify(content)
	if !lang.SnippetSupported() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}

	lintIssues := toWireLint("", s.linter.Lint(ctx, content, lang))
	securityIssues := toWireSecurity("", s.scanner.Scan(content, lang))

	return &Report{
		LintIssues:     DedupeLintIssues(lintIssues),
		SecurityIssues: DedupeSecurityIssues(securityIssues),
		ProcessedFiles: []string{SnippetPath},
		FileCount:      1,
		Advisory:       s.advise(ctx, advisor.SnippetPrompt(content)),
	}, nil
}

// fileResult is the outcome of one file's pipeline in the fan-out.
// Each file writes only its own slot; slots are merged after Wait.
type fileResult struct {
	lint      []LintIssue
	security  []SecurityIssue
	completed bool
	err       error
}

// AnalyzeRepository analyzes every supported file of a repository.
//
// Description:
//
//	Collects files (the collector validates the URL before fetching),
//	then runs the per-file pipeline across them with bounded
//	parallelism. A failure in one file's pipeline is recovered, logged,
//	and excluded from ProcessedFiles; it never aborts the batch.
//	Aggregated issues preserve collection order regardless of completion
//	timing, because each file owns a result slot merged in order after
//	the fan-out. The advisor sees only a bounded sample: the first
//	AdvisorSampleFiles files in collection order, concatenated with
//	path marker comments.
//
// Inputs:
//
//	ctx - Context for collection, lint, and advisor calls.
//	url - The repository reference.
//
// Outputs:
//
//	*Report - FileCount is the collected count, not the processed count.
//	error - repo.ErrInvalidSource for a malformed reference,
//	ErrEmptyResult when no supported files were found, or the
//	collector's fetch failure.
func (s *Service) AnalyzeRepository(ctx context.Context, url string) (*Report, error) {
	files, err := s.collector.Collect(ctx, url)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyResult, url)
	}

	results := make([]fileResult, len(files))

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.Workers)
	for i := range files {
		g.Go(func() error {
			results[i] = s.analyzeFile(ctx, files[i])
			return nil
		})
	}
	// Goroutines never return errors; failures live in their slots.
	_ = g.Wait()

	lintAgg := make([]LintIssue, 0)
	securityAgg := make([]SecurityIssue, 0)
	processed := make([]string, 0, len(files))

	for i, res := range results {
		if res.err != nil {
			s.logger.Warn("file analysis failed, continuing batch",
				"file", files[i].Path,
				"error", res.err)
			continue
		}
		if !res.completed {
			continue
		}
		lintAgg = append(lintAgg, res.lint...)
		securityAgg = append(securityAgg, res.security...)
		processed = append(processed, files[i].Path)
	}

	return &Report{
		LintIssues:     DedupeLintIssues(lintAgg),
		SecurityIssues: DedupeSecurityIssues(securityAgg),
		ProcessedFiles: processed,
		FileCount:      len(files),
		Advisory:       s.advise(ctx, advisor.SamplePrompt(s.sampleFiles(files))),
	}, nil
}

// analyzeFile runs the lint and scan passes for one file.
//
// A panic anywhere in the pipeline is recovered into the result's err
// field so the batch continues.
func (s *Service) analyzeFile(ctx context.Context, f repo.File) (res fileResult) {
	defer func() {
		if r := recover(); r != nil {
			res = fileResult{err: fmt.Errorf("pipeline panic: %v", r)}
		}
	}()

	if s.cfg.MaxFileBytes > 0 && int64(len(f.Content)) > s.cfg.MaxFileBytes {
		return fileResult{err: fmt.Errorf("file exceeds %d bytes", s.cfg.MaxFileBytes)}
	}

	if f.Lang.Lintable() {
		res.lint = toWireLint(f.Path, s.linter.Lint(ctx, f.Content, f.Lang))
	}
	res.security = toWireSecurity(f.Path, s.scanner.Scan(f.Content, f.Lang))
	res.completed = true
	return res
}

// sampleFiles returns the leading files included in the advisory
// prompt. The sample is positional, not representative: whatever sorts
// first is what the advisor sees.
func (s *Service) sampleFiles(files []repo.File) []advisor.SampleFile {
	n := s.cfg.AdvisorSampleFiles
	if n > len(files) {
		n = len(files)
	}
	sample := make([]advisor.SampleFile, 0, n)
	for _, f := range files[:n] {
		sample = append(sample, advisor.SampleFile{Path: f.Path, Content: f.Content})
	}
	return sample
}

// advise runs the advisor, degrading every failure to an absent
// advisory.
func (s *Service) advise(ctx context.Context, prompt string) *string {
	if s.advisor == nil {
		return nil
	}
	text, err := s.advisor.Review(ctx, prompt)
	if err != nil {
		s.logger.Warn("advisory unavailable", "error", err)
		return nil
	}
	return &text
}
