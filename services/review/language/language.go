// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package language classifies source text and file paths into the
// languages the review pipeline understands.
package language

import "path/filepath"

// Language identifies a source language or dialect.
//
// Only a subset of values is accepted by the analysis pipeline; HTML and
// CSS exist so the classifier can name what it saw when rejecting input.
type Language string

const (
	// JS is plain JavaScript.
	JS Language = "js"

	// JSX is JavaScript with component markup.
	JSX Language = "jsx"

	// TS is TypeScript.
	TS Language = "ts"

	// TSX is TypeScript with component markup.
	TSX Language = "tsx"

	// Python is Python source.
	Python Language = "py"

	// HTML is markup. Not analyzable.
	HTML Language = "html"

	// CSS is a stylesheet. Not analyzable.
	CSS Language = "css"

	// Unknown is anything the classifier could not place.
	Unknown Language = "unknown"
)

// extensionMap maps file extensions to languages for repository files,
// where the extension is authoritative and no content sniffing is needed.
var extensionMap = map[string]Language{
	".js":  JS,
	".jsx": JSX,
	".ts":  TS,
	".tsx": TSX,
	".py":  Python,
}

// FromPath returns the language implied by a file path's extension.
//
// Outputs:
//
//	Language - The mapped language, or Unknown for unsupported extensions.
func FromPath(path string) Language {
	if lang, ok := extensionMap[filepath.Ext(path)]; ok {
		return lang
	}
	return Unknown
}

// SupportedExtensions returns the extensions accepted for repository files.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionMap))
	for ext := range extensionMap {
		exts = append(exts, ext)
	}
	return exts
}

// Lintable reports whether the lint pipeline is defined for the language.
//
// Markup, stylesheets, and unclassified input are not lintable; they are
// either rejected upstream or scanned for security patterns only.
func (l Language) Lintable() bool {
	switch l {
	case JS, JSX, TS, TSX, Python:
		return true
	default:
		return false
	}
}

// SnippetSupported reports whether a free-text snippet classified as l
// may enter the analysis pipeline.
//
// The snippet path is narrower than the repository path: without a file
// extension to confirm the guess, only the languages the classifier
// detects reliably are allowed through.
func (l Language) SnippetSupported() bool {
	switch l {
	case Python, JS, JSX:
		return true
	default:
		return false
	}
}

// String returns the language tag.
func (l Language) String() string {
	return string(l)
}
