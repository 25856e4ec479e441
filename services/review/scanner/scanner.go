// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package scanner matches a static catalog of security regex rules
// against source text and reports positioned findings.
package scanner

import (
	"strings"

	"github.com/AleutianAI/AleutianReview/services/review/language"
)

// Finding is one security-pattern match.
//
// Thread Safety: Immutable after creation.
type Finding struct {
	// RuleID references the catalog rule that produced the finding.
	RuleID string

	// Title is the rule's short name.
	Title string

	// Description is the rule's explanation.
	Description string

	// FilePath is the source unit the match occurred in. Set by the
	// caller for repository scans; empty for bare snippet scans.
	FilePath string

	// Line is the 1-based line of the match start.
	Line int
}

// Scanner matches the rule catalog against source units.
//
// # Description
//
// Scanner holds a reference to the immutable rule catalog. Scanning is a
// pure function of (content, language); no state is mutated per request.
//
// # Thread Safety
//
// Safe for concurrent use.
type Scanner struct {
	rules []Rule
}

// NewScanner creates a scanner over the built-in catalog.
func NewScanner() *Scanner {
	return &Scanner{rules: Catalog()}
}

// NewScannerWithRules creates a scanner over a custom catalog.
//
// Inputs:
//
//	rules - The catalog, in reporting order. The scanner keeps the slice;
//	callers must not mutate it afterwards.
func NewScannerWithRules(rules []Rule) *Scanner {
	return &Scanner{rules: rules}
}

// Scan reports every rule match in content.
//
// Description:
//
//	Runs each catalog rule whose language scope includes lang against the
//	full content. Every non-overlapping match of a rule yields one
//	finding. Findings preserve catalog order first, match order second.
//
// Inputs:
//
//	content - The source text.
//	lang - The source unit's language. Rules scoped to other languages
//	are skipped entirely; a finding is never produced for a rule that
//	does not apply to lang.
//
// Outputs:
//
//	[]Finding - May be empty; an empty result is not an error.
func (s *Scanner) Scan(content string, lang language.Language) []Finding {
	findings := make([]Finding, 0)

	for i := range s.rules {
		rule := &s.rules[i]
		if !rule.AppliesTo(lang) {
			continue
		}

		for _, loc := range rule.Pattern.FindAllStringIndex(content, -1) {
			findings = append(findings, Finding{
				RuleID:      rule.ID,
				Title:       rule.Title,
				Description: rule.Description,
				Line:        offsetToLine(content, loc[0]),
			})
		}
	}

	return findings
}

// offsetToLine converts a byte offset into a 1-based line number.
//
// The line is the count of newline characters strictly before offset,
// plus one. Offsets past the end of content clamp to the last line.
func offsetToLine(content string, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return strings.Count(content[:offset], "\n") + 1
}
