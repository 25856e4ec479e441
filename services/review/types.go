// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package review implements the static-analysis orchestration service:
// language classification, per-file lint and security-pattern passes,
// repository fan-out with partial-failure tolerance, and aggregation
// into a single report.
package review

import (
	"fmt"

	"github.com/AleutianAI/AleutianReview/services/review/lint"
	"github.com/AleutianAI/AleutianReview/services/review/scanner"
)

// Request types accepted by the analyze endpoint.
const (
	// RequestTypeCode analyzes a free-text snippet.
	RequestTypeCode = "code"

	// RequestTypeRepo analyzes a repository by URL.
	RequestTypeRepo = "repo"
)

// SnippetPath is the synthetic path attributed to ad-hoc snippet input.
const SnippetPath = "<snippet>"

// AnalyzeRequest is the request body for POST /v1/review/analyze.
type AnalyzeRequest struct {
	// Type is "code" or "repo".
	Type string `json:"type"`

	// Content is the snippet text or the repository URL.
	Content string `json:"content"`
}

// LintIssue is one normalized lint diagnostic on the wire.
type LintIssue struct {
	// FilePath attributes the issue to a repository file. Omitted for
	// snippet analysis.
	FilePath string `json:"filePath,omitempty"`

	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	RuleID   string `json:"ruleId,omitempty"`
}

// SecurityIssue is one security finding on the wire.
type SecurityIssue struct {
	// FilePath attributes the finding to a repository file. Omitted for
	// snippet analysis.
	FilePath string `json:"filePath,omitempty"`

	Title       string `json:"title"`
	Description string `json:"description"`

	// Location is a human-readable position of the form "Line N".
	Location string `json:"location"`
}

// Report is the aggregate result of one analysis request. Built
// incrementally by the orchestrator and discarded after the response is
// sent; nothing is persisted.
type Report struct {
	// LintIssues preserves file-iteration order, then the linter's
	// native order within each file.
	LintIssues []LintIssue

	// SecurityIssues preserves file-iteration order, then catalog and
	// match order within each file.
	SecurityIssues []SecurityIssue

	// ProcessedFiles lists files whose pipeline ran to completion.
	ProcessedFiles []string

	// FileCount is the number of files collection yielded, before any
	// per-file failures.
	FileCount int

	// Advisory is the natural-language review, nil when the advisor is
	// disabled or failed.
	Advisory *string
}

// AnalyzeResponse is the success body for POST /v1/review/analyze.
// Repository analysis additionally populates RepositoryURL, FileCount,
// and ProcessedFiles.
type AnalyzeResponse struct {
	LintIssues     []LintIssue     `json:"lintIssues"`
	SecurityIssues []SecurityIssue `json:"securityIssues"`
	AIReview       *string         `json:"aiReview"`
	RepositoryURL  string          `json:"repositoryUrl,omitempty"`
	FileCount      int             `json:"fileCount,omitempty"`
	ProcessedFiles []string        `json:"processedFiles,omitempty"`
}

// ErrorResponse is the error body for all failure statuses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// toWireLint converts adapter diagnostics to wire shape, tagging each
// with its source file path.
func toWireLint(filePath string, issues []lint.Issue) []LintIssue {
	wire := make([]LintIssue, 0, len(issues))
	for _, issue := range issues {
		wire = append(wire, LintIssue{
			FilePath: filePath,
			Line:     issue.Line,
			Column:   issue.Column,
			Severity: string(issue.Severity),
			Message:  issue.Message,
			RuleID:   issue.Rule,
		})
	}
	return wire
}

// toWireSecurity converts scanner findings to wire shape, tagging each
// with its source file path.
func toWireSecurity(filePath string, findings []scanner.Finding) []SecurityIssue {
	wire := make([]SecurityIssue, 0, len(findings))
	for _, f := range findings {
		wire = append(wire, SecurityIssue{
			FilePath:    filePath,
			Title:       f.Title,
			Description: f.Description,
			Location:    fmt.Sprintf("Line %d", f.Line),
		})
	}
	return wire
}
