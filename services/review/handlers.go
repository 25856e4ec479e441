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

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AleutianAI/AleutianReview/services/review/repo"
)

// Handlers contains the HTTP handlers for the review service.
//
// Thread Safety: Handlers is safe for concurrent use.
type Handlers struct {
	svc *Service
}

// NewHandlers creates handlers over the given service.
//
// Inputs:
//
//	svc - The analysis orchestrator. Must not be nil.
func NewHandlers(svc *Service) *Handlers {
	return &Handlers{svc: svc}
}

// HandleAnalyze handles POST /v1/review/analyze.
//
// Description:
//
//	Accepts {type: "code"|"repo", content} and runs the matching
//	analysis pipeline. Snippet responses carry lintIssues,
//	securityIssues, and aiReview; repository responses additionally
//	carry repositoryUrl, fileCount, and processedFiles.
//
// Response:
//
//	200 OK: AnalyzeResponse
//	400 Bad Request: missing content, unknown type, unsupported snippet
//	language, or malformed repository reference
//	404 Not Found: repository yielded no supported files
//	500 Internal Server Error: unexpected failure
//
// Thread Safety: This method is safe for concurrent use.
func (h *Handlers) HandleAnalyze(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleAnalyze")
	start := time.Now()

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		observeAnalysis("invalid", "error", start, nil)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		logger.Warn("Empty content")
		observeAnalysis(req.Type, "error", start, nil)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "No content provided",
			Code:  "EMPTY_CONTENT",
		})
		return
	}

	var (
		report *Report
		err    error
	)
	switch req.Type {
	case RequestTypeCode:
		logger.Info("Analyzing snippet", "content_len", len(req.Content))
		report, err = h.svc.AnalyzeSnippet(c.Request.Context(), req.Content)
	case RequestTypeRepo:
		logger.Info("Analyzing repository", "url", req.Content)
		report, err = h.svc.AnalyzeRepository(c.Request.Context(), req.Content)
	default:
		logger.Warn("Unknown analysis type", "type", req.Type)
		observeAnalysis(req.Type, "error", start, nil)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Unknown analysis type: expected \"code\" or \"repo\"",
			Code:  "INVALID_TYPE",
		})
		return
	}

	if err != nil {
		status, code := classifyError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Analysis failed", "error", err)
		} else {
			logger.Warn("Analysis rejected", "error", err)
		}
		observeAnalysis(req.Type, "error", start, nil)
		c.JSON(status, ErrorResponse{Error: errorMessage(err, status), Code: code})
		return
	}

	resp := AnalyzeResponse{
		LintIssues:     report.LintIssues,
		SecurityIssues: report.SecurityIssues,
		AIReview:       report.Advisory,
	}
	if req.Type == RequestTypeRepo {
		resp.RepositoryURL = req.Content
		resp.FileCount = report.FileCount
		resp.ProcessedFiles = report.ProcessedFiles
	}

	logger.Info("Analysis complete",
		"lint_issues", len(report.LintIssues),
		"security_issues", len(report.SecurityIssues),
		"files", report.FileCount,
		"duration_ms", time.Since(start).Milliseconds())
	observeAnalysis(req.Type, "ok", start, report)
	c.JSON(http.StatusOK, resp)
}

// HandleHealth handles GET /v1/review/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "aleutian-review"})
}

// classifyError maps the failure taxonomy to an HTTP status and code.
//
// Anything outside the taxonomy is an opaque internal error: the only
// class surfaced as a 500.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, ErrUnsupportedLanguage):
		return http.StatusBadRequest, "UNSUPPORTED_LANGUAGE"
	case errors.Is(err, repo.ErrInvalidSource):
		return http.StatusBadRequest, "INVALID_SOURCE"
	case errors.Is(err, ErrEmptyResult):
		return http.StatusNotFound, "NO_SUPPORTED_FILES"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// errorMessage returns the client-visible message for err. Taxonomy
// errors are descriptive and safe to surface; internal errors are not.
func errorMessage(err error, status int) string {
	if status == http.StatusInternalServerError {
		return "Analysis failed due to an internal error"
	}
	return err.Error()
}

// getOrCreateRequestID returns the caller's X-Request-ID or generates
// one.
func getOrCreateRequestID(c *gin.Context) string {
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}
