// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package repo collects analyzable source files from a remote
// repository reference.
package repo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/AleutianAI/AleutianReview/services/review/language"
)

// ErrInvalidSource indicates the URL is not a recognizable repository
// reference. Raised before any fetch is attempted.
var ErrInvalidSource = errors.New("not a valid repository reference")

// repositoryURLPattern accepts GitHub repository references, with or
// without a trailing .git suffix or slash.
var repositoryURLPattern = regexp.MustCompile(`^https?://(www\.)?github\.com/[\w.-]+/[\w.-]+?(\.git)?/?$`)

// excludedDirs are directory names pruned entirely during collection.
// Build output, dependency trees, version-control metadata, and caches
// never contain reviewable first-party source.
var excludedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"target":       true,
	"coverage":     true,
	"__pycache__":  true,
	".next":        true,
	".cache":       true,
	".venv":        true,
	"venv":         true,
}

// IsRepositoryURL reports whether raw looks like a repository reference.
func IsRepositoryURL(raw string) bool {
	return repositoryURLPattern.MatchString(strings.TrimSpace(raw))
}

// ExcludedDir reports whether a directory name is in the exclusion set.
func ExcludedDir(name string) bool {
	return excludedDirs[name]
}

// File is one collected source unit.
//
// Thread Safety: Immutable once collected.
type File struct {
	// Path is relative to the repository root, slash-separated.
	Path string

	// Lang is derived from the file extension.
	Lang language.Language

	// Content is the file's UTF-8 text.
	Content string
}

// Collector filters a fetched repository tree down to analyzable files.
//
// # Thread Safety
//
// Safe for concurrent use if the underlying Source is.
type Collector struct {
	source Source
}

// NewCollector creates a collector over the given source.
func NewCollector(source Source) *Collector {
	return &Collector{source: source}
}

// Collect fetches url and returns its analyzable files.
//
// Description:
//
//	Validates url as a repository reference before any fetch is
//	attempted, delegates fetching to the Source, then filters the
//	returned tree: any path with an excluded directory component is
//	dropped, and remaining files are kept only when their extension maps
//	to a supported language. Results are sorted by path so collection
//	order is deterministic regardless of Source iteration order.
//
// Inputs:
//
//	ctx - Context for the fetch.
//	url - The repository reference.
//
// Outputs:
//
//	[]File - Accepted files in path order. May be empty; the caller
//	decides whether an empty result is an error.
//	error - ErrInvalidSource for a malformed reference, or the Source's
//	fetch failure.
func (c *Collector) Collect(ctx context.Context, url string) ([]File, error) {
	if !IsRepositoryURL(url) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSource, url)
	}

	tree, err := c.source.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching repository: %w", err)
	}

	files := make([]File, 0, len(tree))
	for path, content := range tree {
		if pathExcluded(path) {
			continue
		}
		lang := language.FromPath(path)
		if lang == language.Unknown {
			continue
		}
		files = append(files, File{Path: path, Lang: lang, Content: content})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// pathExcluded reports whether any directory component of path is in
// the exclusion set. Defense in depth: sources prune these directories
// during their own walk, but a Source is not required to.
func pathExcluded(path string) bool {
	parts := strings.Split(path, "/")
	for _, part := range parts[:len(parts)-1] {
		if excludedDirs[part] {
			return true
		}
	}
	return false
}
