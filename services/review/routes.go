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
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all review routes with the router.
//
// Description:
//
//	Registers the /v1/review/* endpoints with the given Gin router
//	group. The router group should already have any required middleware
//	applied.
//
// Inputs:
//
//	rg - Gin router group (typically /v1)
//	handlers - The handlers instance
//
// Endpoints:
//
//	POST /v1/review/analyze - Analyze a snippet or repository
//	GET  /v1/review/health - Health check
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	review := rg.Group("/review")
	{
		review.POST("/analyze", handlers.HandleAnalyze)
		review.GET("/health", handlers.HandleHealth)
	}
}
