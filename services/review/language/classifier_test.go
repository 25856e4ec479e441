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

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Language
	}{
		{
			name:    "react import is jsx",
			content: "import React from 'react';\n\nexport default function App() { return null; }",
			want:    JSX,
		},
		{
			name:    "component markup is jsx",
			content: "const x = 1;\nreturn <Widget title=\"hi\" />;",
			want:    JSX,
		},
		{
			name:    "plain function is js",
			content: "function add(a, b) {\n  return a + b;\n}",
			want:    JS,
		},
		{
			name:    "arrow function is js",
			content: "const add = (a, b) => a + b;",
			want:    JS,
		},
		{
			name:    "doctype is html",
			content: "<!DOCTYPE html>\n<html><body>hi</body></html>",
			want:    HTML,
		},
		{
			name:    "stylesheet is css",
			content: ".header {\n  color: red;\n}",
			want:    CSS,
		},
		{
			name:    "def marker is python",
			content: "def greet(name):\n    return 'hi ' + name",
			want:    Python,
		},
		{
			name:    "import marker is python",
			content: "import os\nos.getcwd()",
			want:    Python,
		},
		{
			name:    "bare expression falls back to js",
			content: "eval(userInput)",
			want:    JS,
		},
		{
			name:    "empty is unknown",
			content: "   \n\t ",
			want:    Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.content); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify_OrderSensitive(t *testing.T) {
	// A React component also contains generic script markers; the jsx
	// check must win because it runs first.
	content := "import React from 'react';\nconst App = () => <div className=\"app\" />;"
	if got := Classify(content); got != JSX {
		t.Errorf("Classify() = %q, want jsx despite js markers", got)
	}

	// An HTML page can contain the word class; markup must win over
	// the Python check.
	content = "<html><body class=\"page\">class notes</body></html>"
	if got := Classify(content); got != HTML {
		t.Errorf("Classify() = %q, want html despite class keyword", got)
	}
}

func TestFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"src/app.js", JS},
		{"src/App.jsx", JSX},
		{"lib/util.ts", TS},
		{"ui/Panel.tsx", TSX},
		{"tools/run.py", Python},
		{"README.md", Unknown},
		{"styles/site.css", Unknown},
		{"Makefile", Unknown},
	}
	for _, tt := range tests {
		if got := FromPath(tt.path); got != tt.want {
			t.Errorf("FromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLanguagePredicates(t *testing.T) {
	for _, lang := range []Language{JS, JSX, TS, TSX, Python} {
		if !lang.Lintable() {
			t.Errorf("%q should be lintable", lang)
		}
	}
	for _, lang := range []Language{HTML, CSS, Unknown} {
		if lang.Lintable() {
			t.Errorf("%q should not be lintable", lang)
		}
	}

	for _, lang := range []Language{Python, JS, JSX} {
		if !lang.SnippetSupported() {
			t.Errorf("%q should be accepted on the snippet path", lang)
		}
	}
	for _, lang := range []Language{TS, TSX, HTML, CSS, Unknown} {
		if lang.SnippetSupported() {
			t.Errorf("%q should be rejected on the snippet path", lang)
		}
	}
}
