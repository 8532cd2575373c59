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
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leyredelacalzada/azure-search-openai-demo/internal/config"
)

// Version information - set via ldflags during build
var (
	version   = "1.0.0"
	buildTime = "unknown"
	gitCommit = "unknown"
)

var (
	flagConfig string
	flagKB     string
)

var rootCmd = &cobra.Command{
	Use:   "hr-assistant",
	Short: "HR Assistant - multi-specialist question answering",
	Long: `HR Assistant routes employee questions to domain specialists
(benefits, HR policy, perks, career/roles), grounds each answer in the
company knowledge base, and streams the response with routing metadata.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("HR Assistant\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Build Time: %s\n", buildTime)
		fmt.Printf("  Git Commit: %s\n", gitCommit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&flagKB, "kb",
		config.DefaultKnowledgeBaseVariant,
		"Knowledge base variant (base, with-sharepoint, with-web, with-web-and-sharepoint)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(validateCmd)
}

// newLogger builds the process logger.
func newLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// kbVariant resolves the variant flag, honoring the environment when the
// flag is left at its default.
func kbVariant() string {
	if flagKB != config.DefaultKnowledgeBaseVariant {
		return flagKB
	}
	if v := os.Getenv(config.EnvKBVariant); v != "" {
		return v
	}
	return flagKB
}
