// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command reviewd starts the Aleutian Review API server.
//
// Usage:
//
//	go run ./cmd/reviewd
//	go run ./cmd/reviewd -port 9090 -config reviewd.yaml
//
// Example requests:
//
//	# Health check
//	curl http://localhost:8080/v1/review/health
//
//	# Analyze a snippet
//	curl -X POST http://localhost:8080/v1/review/analyze \
//	  -H "Content-Type: application/json" \
//	  -d '{"type": "code", "content": "eval(userInput)"}'
//
//	# Analyze a repository
//	curl -X POST http://localhost:8080/v1/review/analyze \
//	  -H "Content-Type: application/json" \
//	  -d '{"type": "repo", "content": "https://github.com/owner/repo"}'
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AleutianAI/AleutianReview/pkg/logging"
	"github.com/AleutianAI/AleutianReview/services/review"
	"github.com/AleutianAI/AleutianReview/services/review/advisor"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	port := flag.Int("port", 0, "Override the configured listen port")
	debug := flag.Bool("debug", false, "Enable debug mode")
	flag.Parse()

	cfg, err := review.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Port = *port
	}

	level := logging.LevelInfo
	if *debug {
		level = logging.LevelDebug
	}
	logger, err := logging.New(logging.Config{
		Level:   level,
		LogDir:  cfg.LogDir,
		Service: "reviewd",
	})
	if err != nil {
		slog.Error("Failed to initialize logging", "error", err)
		os.Exit(1)
	}
	defer logger.Close()
	slog.SetDefault(logger.Logger)

	deps := review.Dependencies{Logger: logger.Logger}
	if cfg.Advisor.Enabled {
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			slog.Warn("Advisor enabled but OPENAI_API_KEY not set; advisory pass disabled")
		} else {
			deps.Advisor = advisor.NewOpenAIAdvisor(apiKey, cfg.Advisor.Model)
		}
	}

	svc := review.NewService(cfg, deps)
	handlers := review.NewHandlers(svc)

	if *debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if *debug {
		router.Use(gin.Logger())
	}

	v1 := router.Group("/v1")
	review.RegisterRoutes(v1, handlers)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Starting Aleutian Review server",
		"addr", addr,
		"workers", cfg.Workers,
		"advisor_enabled", deps.Advisor != nil)
	if err := router.Run(addr); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
