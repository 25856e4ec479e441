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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysisRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reviewd",
		Name:      "analysis_requests_total",
		Help:      "Analysis requests by type and outcome status.",
	}, []string{"type", "status"})

	issuesReported = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reviewd",
		Name:      "issues_reported_total",
		Help:      "Issues reported after deduplication, by kind.",
	}, []string{"kind"})

	analysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "reviewd",
		Name:      "analysis_duration_seconds",
		Help:      "End-to-end analysis duration by request type.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	}, []string{"type"})
)

// observeAnalysis records request-level metrics for one analysis.
func observeAnalysis(reqType, status string, start time.Time, report *Report) {
	analysisRequests.WithLabelValues(reqType, status).Inc()
	analysisDuration.WithLabelValues(reqType).Observe(time.Since(start).Seconds())
	if report != nil {
		issuesReported.WithLabelValues("lint").Add(float64(len(report.LintIssues)))
		issuesReported.WithLabelValues("security").Add(float64(len(report.SecurityIssues)))
	}
}
