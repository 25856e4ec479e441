// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package language

import (
	"regexp"
	"strings"
)

// Marker patterns checked by Classify, pre-compiled at package init.
//
// The checks are ordered: component markup before generic script markers
// (a React file also contains "const"), markup and stylesheets before
// Python (an HTML file can contain "class"). Order changes here change
// classification results.
var (
	jsxMarkers = regexp.MustCompile(`(?m)import\s+React|from\s+['"]react['"]|className=|useState\s*\(|useEffect\s*\(|<[A-Z][A-Za-z0-9]*[\s/>]`)

	jsMarkers = regexp.MustCompile(`(?m)\bfunction\s|=>|\b(const|let|var)\s`)

	htmlMarkers = regexp.MustCompile(`(?i)<!DOCTYPE\s+html|<html\b|<head\b|<body\b|<div\b`)

	cssMarkers = regexp.MustCompile(`(?m)^\s*[.#]?[A-Za-z][\w-]*\s*\{[^}]*:[^}]*\}`)

	pyMarkers = regexp.MustCompile(`(?m)^\s*(def\s+\w+\s*\(|import\s+\w|from\s+\w+\s+import|class\s+\w+\s*[(:])`)
)

// Classify guesses the language of free-text source content.
//
// Description:
//
//	Best-effort heuristic for snippets, where no file extension is
//	available. Checks component-framework markers first, then generic
//	script markers, then markup, then stylesheet, then Python markers.
//	Falls back to JS so that small expression fragments are still
//	analyzable.
//
// Inputs:
//
//	content - The source text. May be empty.
//
// Outputs:
//
//	Language - Always a valid value; Classify never fails. Callers decide
//	whether the result is acceptable (see Language.SnippetSupported).
func Classify(content string) Language {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Unknown
	}

	if jsxMarkers.MatchString(trimmed) {
		return JSX
	}
	if jsMarkers.MatchString(trimmed) {
		return JS
	}
	if htmlMarkers.MatchString(trimmed) {
		return HTML
	}
	if cssMarkers.MatchString(trimmed) {
		return CSS
	}
	if pyMarkers.MatchString(trimmed) {
		return Python
	}

	return JS
}
