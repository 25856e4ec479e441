// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package repo

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Source materializes a repository's file tree.
//
// Implementations are responsible for acquiring and releasing any
// transient storage: after Fetch returns (success or failure), nothing
// must remain on disk.
type Source interface {
	// Fetch returns a mapping of relative file path to file content.
	Fetch(ctx context.Context, url string) (map[string]string, error)
}

// defaultCloneTimeout bounds one clone including checkout.
const defaultCloneTimeout = 2 * time.Minute

// GitCloneSource fetches repositories with a shallow git clone.
//
// # Description
//
// Clones into a fresh temporary directory, walks the checkout reading
// candidate files into memory, and removes the directory before
// returning. Directories in the exclusion set are pruned during the
// walk, so their contents are never read.
//
// # Thread Safety
//
// Safe for concurrent use. Each Fetch uses its own clone directory.
type GitCloneSource struct {
	timeout      time.Duration
	maxFileBytes int64
}

// NewGitCloneSource creates a clone-backed source.
//
// Inputs:
//
//	timeout - Maximum duration for the clone; zero uses the default.
//	maxFileBytes - Files larger than this are skipped during the walk;
//	zero disables the guard.
func NewGitCloneSource(timeout time.Duration, maxFileBytes int64) *GitCloneSource {
	if timeout <= 0 {
		timeout = defaultCloneTimeout
	}
	return &GitCloneSource{timeout: timeout, maxFileBytes: maxFileBytes}
}

// Fetch clones url and returns its file tree.
//
// Outputs:
//
//	map[string]string - Relative path (slash-separated) to content.
//	error - Non-nil if the clone or the walk fails. The clone directory
//	is removed on every exit path.
func (s *GitCloneSource) Fetch(ctx context.Context, url string) (map[string]string, error) {
	dir, err := os.MkdirTemp("", "reviewd-clone-")
	if err != nil {
		return nil, fmt.Errorf("creating clone dir: %w", err)
	}
	defer os.RemoveAll(dir)

	cloneCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(cloneCtx, "git", "clone", "--depth", "1", "--single-branch", url, dir)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("git clone %s: %w: %s", url, err, string(out))
	}

	files := make(map[string]string)
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if ExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		if s.maxFileBytes > 0 {
			info, err := d.Info()
			if err != nil {
				return err
			}
			if info.Size() > s.maxFileBytes {
				return nil
			}
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(content)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("reading clone tree: %w", walkErr)
	}

	return files, nil
}
