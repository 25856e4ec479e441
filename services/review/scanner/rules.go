// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package scanner

import (
	"regexp"

	"github.com/AleutianAI/AleutianReview/services/review/language"
)

// Rule describes one security pattern.
//
// Rules are static and process-wide: the catalog is built once at startup
// and never mutated at request time. A rule with an empty Languages list
// applies to every language.
//
// Thread Safety: Immutable after construction.
type Rule struct {
	// ID identifies the rule in findings and logs.
	ID string

	// Pattern is the compiled match expression.
	Pattern *regexp.Regexp

	// Title is the short human-readable name reported per finding.
	Title string

	// Description explains why the matched construct is risky.
	Description string

	// Languages restricts the rule to a language subset. Empty = all.
	Languages []language.Language
}

// AppliesTo reports whether the rule is in scope for lang.
func (r *Rule) AppliesTo(lang language.Language) bool {
	if len(r.Languages) == 0 {
		return true
	}
	for _, l := range r.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Language scope shorthands used by the catalog.
var (
	scriptLangs = []language.Language{language.JS, language.JSX, language.TS, language.TSX}
	markupLangs = []language.Language{language.JSX, language.TSX}
	pyOnly      = []language.Language{language.Python}
)

// defaultCatalog is the built-in rule set, in reporting order.
//
// Findings preserve catalog order, so rules are listed roughly by
// severity of the construct they detect.
var defaultCatalog = []Rule{
	{
		ID:          "dynamic-eval",
		Pattern:     regexp.MustCompile(`\beval\s*\(`),
		Title:       "Dangerous use of eval()",
		Description: "eval() executes arbitrary strings as code. An attacker who controls any part of the argument controls the process.",
		Languages:   []language.Language{language.JS, language.JSX, language.TS, language.TSX, language.Python},
	},
	{
		ID:          "python-exec",
		Pattern:     regexp.MustCompile(`\bexec\s*\(`),
		Title:       "Dynamic code execution via exec()",
		Description: "exec() runs arbitrary Python. Avoid it entirely, or restrict the globals/locals it can see.",
		Languages:   pyOnly,
	},
	{
		ID:          "new-function",
		Pattern:     regexp.MustCompile(`new\s+Function\s*\(`),
		Title:       "Dynamic code execution via Function constructor",
		Description: "new Function() compiles strings to code, with the same injection risks as eval().",
		Languages:   scriptLangs,
	},
	{
		ID:          "os-command",
		Pattern:     regexp.MustCompile(`os\.system\s*\(|subprocess\.(call|run|Popen)\s*\(`),
		Title:       "Shell command construction",
		Description: "os.system and subprocess invocations built from dynamic input allow command injection. Prefer argument lists and validate inputs.",
		Languages:   pyOnly,
	},
	{
		ID:          "document-write",
		Pattern:     regexp.MustCompile(`document\.write(ln)?\s*\(`),
		Title:       "Unsafe DOM write via document.write()",
		Description: "document.write with untrusted data leads to cross-site scripting. Use DOM node creation instead.",
		Languages:   scriptLangs,
	},
	{
		ID:          "inner-html",
		Pattern:     regexp.MustCompile(`\.innerHTML\s*=`),
		Title:       "Unsafe HTML injection via innerHTML",
		Description: "Assigning to innerHTML renders markup from data. Untrusted content must be sanitized or assigned via textContent.",
		Languages:   scriptLangs,
	},
	{
		ID:          "dangerously-set-inner-html",
		Pattern:     regexp.MustCompile(`dangerouslySetInnerHTML`),
		Title:       "Unsafe HTML injection via dangerouslySetInnerHTML",
		Description: "dangerouslySetInnerHTML bypasses React's escaping. Sanitize the payload or restructure the component.",
		Languages:   markupLangs,
	},
	{
		ID:          "web-storage-secrets",
		Pattern:     regexp.MustCompile(`(?i)(localStorage|sessionStorage)\.setItem\s*\(\s*['"][^'"]*(token|password|secret|auth|key)`),
		Title:       "Sensitive data in browser storage",
		Description: "localStorage and sessionStorage are readable by any script on the page. Keep tokens in httpOnly cookies or memory.",
		Languages:   scriptLangs,
	},
	{
		ID:          "hardcoded-credentials",
		Pattern:     regexp.MustCompile(`(?i)\b(password|passwd|pwd)\s*[:=]\s*['"][^'"]{4,}['"]`),
		Title:       "Hardcoded credential",
		Description: "A credential-shaped literal is embedded in source. Move secrets to environment variables or a secret manager.",
	},
	{
		ID:          "api-key-literal",
		Pattern:     regexp.MustCompile(`(?i)\b(api[_-]?key|apikey|secret[_-]?key|access[_-]?token)\s*[:=]\s*['"][A-Za-z0-9_\-]{16,}['"]`),
		Title:       "Hardcoded API key",
		Description: "An API-key-shaped literal is embedded in source. Rotate the key and load it from configuration at runtime.",
	},
	{
		ID:          "sql-concat-request",
		Pattern:     regexp.MustCompile(`\+\s*req\.(query|params|body)\b`),
		Title:       "Unsanitized request data in query",
		Description: "Concatenating request fields into a query or command enables injection. Use parameterized queries.",
		Languages:   scriptLangs,
	},
	{
		ID:          "sql-fstring",
		Pattern:     regexp.MustCompile(`execute\s*\(\s*f['"]`),
		Title:       "Query built with f-string interpolation",
		Description: "Interpolating values into SQL with f-strings enables injection. Pass parameters separately to execute().",
		Languages:   pyOnly,
	},
	{
		ID:          "plaintext-http",
		Pattern:     regexp.MustCompile(`\bhttp://[^\s'"` + "`" + `]+`),
		Title:       "Plaintext HTTP URL",
		Description: "Traffic to http:// endpoints is unencrypted and can be intercepted or modified. Use https://.",
	},
	{
		ID:          "unsafe-deserialization",
		Pattern:     regexp.MustCompile(`pickle\.loads?\s*\(|yaml\.load\s*\(`),
		Title:       "Unsafe deserialization",
		Description: "pickle.load and yaml.load can execute code from the payload. Use safe loaders for untrusted data.",
		Languages:   pyOnly,
	},
	{
		ID:          "unvalidated-input",
		Pattern:     regexp.MustCompile(`\binput\s*\(`),
		Title:       "Dynamic input consumed without validation",
		Description: "input() returns attacker-controlled text. Validate and bound it before use, especially in numeric or path contexts.",
		Languages:   pyOnly,
	},
}

// Catalog returns the built-in rule catalog.
//
// The returned slice is shared; callers must not mutate it.
func Catalog() []Rule {
	return defaultCatalog
}
