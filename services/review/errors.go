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

import "errors"

// Sentinel errors for the review service. Together with
// repo.ErrInvalidSource they form the request-level failure taxonomy:
// handlers map them to HTTP statuses, everything else is an opaque
// internal error.
var (
	// ErrInvalidInput indicates missing content or a bad request shape.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedLanguage indicates a snippet classified outside the
	// supported language subset.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrEmptyResult indicates a repository yielded no supported files.
	ErrEmptyResult = errors.New("no supported files found")
)
