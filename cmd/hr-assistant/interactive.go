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
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Ask questions in a loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		a, err := newApp(flagConfig, logger)
		if err != nil {
			return err
		}

		fmt.Println("🤖 HR Assistant")
		fmt.Println("\nI can help you with:")
		fmt.Println("  • Health benefits and insurance plans")
		fmt.Println("  • Workplace policies and procedures")
		fmt.Println("  • Employee perks and wellness programs")
		fmt.Println("  • Job roles and career development")
		fmt.Println("\nType 'quit' or 'exit' to end the session.")

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("\n❓ Your question: ")
			if !scanner.Scan() {
				break
			}

			query := strings.TrimSpace(scanner.Text())
			if query == "" {
				continue
			}
			switch strings.ToLower(query) {
			case "quit", "exit", "q":
				fmt.Println("\n👋 Goodbye!")
				return nil
			}

			fmt.Println()
			if err := runAndRender(cmd.Context(), a, query, kbVariant()); err != nil {
				logger.Warn("query failed", "error", err)
			}
		}

		return scanner.Err()
	},
}
