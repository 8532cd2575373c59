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
	"time"

	"github.com/spf13/cobra"
)

// demoQueries exercises each specialist.
var demoQueries = []string{
	"What's the difference between Northwind Health Plus and Standard plans?",
	"What is the company's policy on remote work?",
	"What wellness benefits does the company offer?",
	"How much vacation time do senior employees get?",
	"What's the deductible for the health insurance?",
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run demonstration queries",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		a, err := newApp(flagConfig, logger)
		if err != nil {
			return err
		}

		fmt.Println("🎯 HR Assistant Demo")
		fmt.Printf("Knowledge base variant: %s\n", kbVariant())

		for i, query := range demoQueries {
			fmt.Printf("\n📝 Demo query %d/%d: %q\n\n", i+1, len(demoQueries), query)

			if err := runAndRender(cmd.Context(), a, query, kbVariant()); err != nil {
				logger.Warn("demo query failed", "error", err)
			}

			if i < len(demoQueries)-1 {
				time.Sleep(2 * time.Second)
			}
		}

		fmt.Println("\n✅ Demo complete")
		return nil
	},
}
