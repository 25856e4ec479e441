// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package lint

import (
	"encoding/json"
	"fmt"
	"strings"
)

// =============================================================================
// ESLINT PARSER
// =============================================================================

// eslintOutput represents the JSON output from ESLint.
type eslintOutput []eslintFile

type eslintFile struct {
	FilePath     string          `json:"filePath"`
	Messages     []eslintMessage `json:"messages"`
	ErrorCount   int             `json:"errorCount"`
	WarningCount int             `json:"warningCount"`
}

type eslintMessage struct {
	RuleID   string `json:"ruleId"`
	Severity int    `json:"severity"` // 1 = warning, 2 = error
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Fatal    bool   `json:"fatal"`
}

// parseESLintOutput parses JSON output from ESLint.
//
// Description:
//
//	eslint --format=json produces an array of file results, one per
//	linted file. The runner lints exactly one staged file per call, but
//	the parser tolerates any count.
//
//	Fatal parse errors (unparseable syntax) are reported by ESLint as
//	messages with Fatal=true and no rule ID; they map to error-severity
//	diagnostics like everything else.
//
// Inputs:
//
//	data - Raw JSON output from eslint --format=json
//
// Outputs:
//
//	[]Issue - Parsed diagnostics
//	error - Non-nil if JSON parsing fails
func parseESLintOutput(data []byte) ([]Issue, error) {
	var output eslintOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("%w: eslint: %v", ErrParseOutput, err)
	}

	var issues []Issue
	for _, file := range output {
		for _, msg := range file.Messages {
			issues = append(issues, Issue{
				Line:     msg.Line,
				Column:   msg.Column,
				Severity: mapESLintSeverity(msg.Severity),
				Message:  msg.Message,
				Rule:     msg.RuleID,
			})
		}
	}

	return issues, nil
}

// mapESLintSeverity maps ESLint numeric severity to our Severity.
func mapESLintSeverity(severity int) Severity {
	if severity == 2 {
		return SeverityError
	}
	return SeverityWarning
}

// =============================================================================
// RUFF PARSER
// =============================================================================

// ruffIssue represents a single issue from Ruff JSON output.
type ruffIssue struct {
	Code     string       `json:"code"`
	Filename string       `json:"filename"`
	Location ruffLocation `json:"location"`
	Message  string       `json:"message"`
}

type ruffLocation struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

// parseRuffOutput parses JSON output from Ruff.
//
// Description:
//
//	ruff check --output-format=json produces a JSON array of issues.
//	Severity is derived from the rule-code prefix: pycodestyle errors
//	and Pyflakes rules are errors, everything else is a warning.
//
// Inputs:
//
//	data - Raw JSON output from ruff check --output-format=json
//
// Outputs:
//
//	[]Issue - Parsed diagnostics
//	error - Non-nil if JSON parsing fails
func parseRuffOutput(data []byte) ([]Issue, error) {
	var ruffIssues []ruffIssue
	if err := json.Unmarshal(data, &ruffIssues); err != nil {
		return nil, fmt.Errorf("%w: ruff: %v", ErrParseOutput, err)
	}

	if len(ruffIssues) == 0 {
		return nil, nil
	}

	issues := make([]Issue, 0, len(ruffIssues))
	for _, ri := range ruffIssues {
		issues = append(issues, Issue{
			Line:     ri.Location.Row,
			Column:   ri.Location.Column,
			Severity: mapRuffSeverity(ri.Code),
			Message:  ri.Message,
			Rule:     ri.Code,
		})
	}

	return issues, nil
}

// mapRuffSeverity maps Ruff rule codes to our Severity.
func mapRuffSeverity(code string) Severity {
	if code == "" {
		return SeverityWarning
	}
	switch strings.ToUpper(code[:1]) {
	case "E", "F":
		return SeverityError
	default:
		return SeverityWarning
	}
}
