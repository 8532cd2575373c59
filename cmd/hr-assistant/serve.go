//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leyredelacalzada/azure-search-openai-demo/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		a, err := newApp(flagConfig, logger)
		if err != nil {
			logger.Error("startup failed", "error", err)
			return err
		}

		srv := server.New(a.cfg, a.orchestrator, a.registry, logger)

		shutdownCh := make(chan os.Signal, 1)
		signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			logger.Error("server failed", "error", err)
			return err
		case sig := <-shutdownCh:
			logger.Info("received shutdown signal", "signal", sig)

			// Give 30 seconds for graceful shutdown
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			return srv.Shutdown(ctx)
		}
	},
}
