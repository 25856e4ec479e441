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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianReview/services/review/language"
)

func TestScan_EvalSnippet(t *testing.T) {
	s := NewScanner()

	findings := s.Scan("eval(userInput)", language.JS)

	require.Len(t, findings, 1)
	assert.Equal(t, "dynamic-eval", findings[0].RuleID)
	assert.Equal(t, "Dangerous use of eval()", findings[0].Title)
	assert.Equal(t, 1, findings[0].Line)
}

func TestScan_LineNumbers(t *testing.T) {
	s := NewScanner()

	content := "const a = 1;\nconst b = 2;\ndocument.write(b);\n"
	findings := s.Scan(content, language.JS)

	require.Len(t, findings, 1)
	assert.Equal(t, "document-write", findings[0].RuleID)
	assert.Equal(t, 3, findings[0].Line)
}

func TestScan_MultipleMatchesOfOneRule(t *testing.T) {
	s := NewScanner()

	content := "eval(a);\neval(b);\neval(c);"
	findings := s.Scan(content, language.JS)

	require.Len(t, findings, 3)
	for i, f := range findings {
		assert.Equal(t, "dynamic-eval", f.RuleID)
		assert.Equal(t, i+1, f.Line, "match order must follow content order")
	}
}

func TestScan_LanguageScoping(t *testing.T) {
	s := NewScanner()

	// innerHTML is a browser construct; the rule must not fire for
	// Python even when the text would match.
	content := "x.innerHTML = payload"
	assert.NotEmpty(t, s.Scan(content, language.JS))
	assert.Empty(t, s.Scan(content, language.Python))

	// os.system is a Python construct; the rule must not fire for JS.
	content = `os.system("rm -rf /")`
	assert.NotEmpty(t, s.Scan(content, language.Python))
	assert.Empty(t, s.Scan(content, language.JS))
}

func TestScan_UnrestrictedRuleAppliesEverywhere(t *testing.T) {
	s := NewScanner()

	content := "url = 'http://internal.example/api'"
	for _, lang := range []language.Language{language.JS, language.JSX, language.TS, language.TSX, language.Python} {
		findings := s.Scan(content, lang)
		require.Len(t, findings, 1, "lang %s", lang)
		assert.Equal(t, "plaintext-http", findings[0].RuleID)
	}
}

func TestScan_HTTPSNotFlagged(t *testing.T) {
	s := NewScanner()
	findings := s.Scan("fetch('https://example.com')", language.JS)
	assert.Empty(t, findings)
}

func TestScan_CatalogOrderPreserved(t *testing.T) {
	s := NewScanner()

	// document.write appears before innerHTML in the content, but
	// findings are grouped by catalog order first.
	content := "el.innerHTML = x;\ndocument.write(y);"
	findings := s.Scan(content, language.JS)

	require.Len(t, findings, 2)
	assert.Equal(t, "document-write", findings[0].RuleID)
	assert.Equal(t, "inner-html", findings[1].RuleID)
}

func TestScan_EmptyResultIsValid(t *testing.T) {
	s := NewScanner()
	findings := s.Scan("const x = 1;", language.JS)
	assert.NotNil(t, findings)
	assert.Empty(t, findings)
}

func TestScan_PythonCatalog(t *testing.T) {
	s := NewScanner()

	tests := []struct {
		content string
		ruleID  string
	}{
		{"exec(code)", "python-exec"},
		{"subprocess.run(cmd)", "os-command"},
		{"pickle.loads(blob)", "unsafe-deserialization"},
		{"yaml.load(stream)", "unsafe-deserialization"},
		{"n = input()", "unvalidated-input"},
		{`cursor.execute(f"SELECT * FROM users WHERE id={uid}")`, "sql-fstring"},
	}
	for _, tt := range tests {
		findings := s.Scan(tt.content, language.Python)
		require.NotEmpty(t, findings, "content %q", tt.content)
		assert.Equal(t, tt.ruleID, findings[0].RuleID, "content %q", tt.content)
	}
}

func TestScan_CredentialShapedLiterals(t *testing.T) {
	s := NewScanner()

	findings := s.Scan(`password = "hunter22"`, language.Python)
	require.Len(t, findings, 1)
	assert.Equal(t, "hardcoded-credentials", findings[0].RuleID)

	findings = s.Scan(`const apiKey = "sk_live_abcdefghij1234567890";`, language.JS)
	require.Len(t, findings, 1)
	assert.Equal(t, "api-key-literal", findings[0].RuleID)
}

func TestScan_DangerouslySetInnerHTMLOnlyForMarkupDialects(t *testing.T) {
	s := NewScanner()

	content := `<div dangerouslySetInnerHTML={{__html: data}} />`
	assert.NotEmpty(t, s.Scan(content, language.JSX))
	assert.NotEmpty(t, s.Scan(content, language.TSX))
	assert.Empty(t, s.Scan(content, language.JS))
}

func TestOffsetToLine(t *testing.T) {
	content := "a\nbb\nccc\n"
	tests := []struct {
		offset int
		want   int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{4, 2},
		{5, 3},
		{8, 3},
		{9, 4},
		{100, 4}, // past-the-end clamps
	}
	for _, tt := range tests {
		if got := offsetToLine(content, tt.offset); got != tt.want {
			t.Errorf("offsetToLine(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestRuleAppliesTo(t *testing.T) {
	unrestricted := Rule{ID: "any", Pattern: regexp.MustCompile("x")}
	assert.True(t, unrestricted.AppliesTo(language.JS))
	assert.True(t, unrestricted.AppliesTo(language.Python))

	scoped := Rule{ID: "py", Pattern: regexp.MustCompile("x"), Languages: []language.Language{language.Python}}
	assert.True(t, scoped.AppliesTo(language.Python))
	assert.False(t, scoped.AppliesTo(language.JS))
}
