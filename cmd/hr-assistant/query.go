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

	"github.com/spf13/cobra"
)

var flagQuery string

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a single question through the pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagQuery == "" {
			return fmt.Errorf("a question is required: use -q/--query")
		}

		logger := newLogger()

		a, err := newApp(flagConfig, logger)
		if err != nil {
			return err
		}

		fmt.Printf("📝 Query: %s\n\n", flagQuery)
		return runAndRender(cmd.Context(), a, flagQuery, kbVariant())
	},
}

func init() {
	queryCmd.Flags().StringVarP(&flagQuery, "query", "q", "",
		"The question to ask")
}
