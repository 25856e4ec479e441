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

import "fmt"

// DedupeLintIssues collapses duplicate diagnostics.
//
// Description:
//
//	Two diagnostics are duplicates iff their (line, message) pair is
//	equal. The key deliberately ignores file path, column, severity, and
//	rule: issues on the same line with the same message are collapsed
//	even across files. First occurrence wins; relative order among
//	survivors is preserved. The pass is idempotent.
func DedupeLintIssues(issues []LintIssue) []LintIssue {
	seen := make(map[string]bool, len(issues))
	result := make([]LintIssue, 0, len(issues))
	for _, issue := range issues {
		key := fmt.Sprintf("%d\x00%s", issue.Line, issue.Message)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, issue)
	}
	return result
}

// DedupeSecurityIssues collapses duplicate findings.
//
// Description:
//
//	Two findings are duplicates iff their (location, title) pair is
//	equal, irrespective of file path or description. Same first-wins,
//	order-preserving, idempotent semantics as DedupeLintIssues.
func DedupeSecurityIssues(issues []SecurityIssue) []SecurityIssue {
	seen := make(map[string]bool, len(issues))
	result := make([]SecurityIssue, 0, len(issues))
	for _, issue := range issues {
		key := issue.Location + "\x00" + issue.Title
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, issue)
	}
	return result
}
