//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

// Package server provides the HTTP surface for the HR Assistant API.
package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/leyredelacalzada/azure-search-openai-demo/internal/config"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/pipeline"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/specialist"
)

// ChatPipeline is the orchestration entry point the server drives.
type ChatPipeline interface {
	Run(ctx context.Context, req pipeline.Request) <-chan pipeline.Event
}

// Server is the HTTP server for the HR Assistant API.
type Server struct {
	config   *config.Config
	pipeline ChatPipeline
	registry *specialist.Registry
	logger   *slog.Logger
	server   *http.Server
	mux      *http.ServeMux
}

// New creates a new HTTP server.
func New(
	cfg *config.Config,
	p ChatPipeline,
	registry *specialist.Registry,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:   cfg,
		pipeline: p,
		registry: registry,
		logger:   logger,
		mux:      http.NewServeMux(),
	}

	s.setupRoutes()

	return s
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.ListenAddress, s.config.Server.Port)

	s.server = &http.Server{
		Addr:        addr,
		Handler:     s.applyMiddleware(s.mux),
		ReadTimeout: 30 * time.Second,
		// No write timeout: chat responses stream for as long as the
		// model generates.
		IdleTimeout: 120 * time.Second,
	}

	s.logger.Info("starting server",
		"address", addr,
		"tls", s.config.Server.TLS.Enabled)

	if s.config.Server.TLS.Enabled {
		return s.serveTLS()
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	return s.server.Serve(listener)
}

// serveTLS starts the server with TLS.
func (s *Server) serveTLS() error {
	s.server.TLSConfig = &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	return s.server.ListenAndServeTLS(
		s.config.Server.TLS.CertFile,
		s.config.Server.TLS.KeyFile,
	)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}

	return nil
}

// Addr returns the server's address. Returns empty string if not started.
func (s *Server) Addr() string {
	if s.server != nil {
		return s.server.Addr
	}
	return ""
}
