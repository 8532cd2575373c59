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

	"github.com/leyredelacalzada/azure-search-openai-demo/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			fmt.Printf("❌ Configuration invalid:\n   %v\n", err)
			return err
		}

		fmt.Println("✅ Configuration is valid!")
		fmt.Printf("   Search Endpoint: %s\n", cfg.Azure.SearchEndpoint)
		fmt.Printf("   OpenAI Endpoint: %s\n", cfg.Azure.OpenAIEndpoint)
		fmt.Printf("   Deployment:      %s\n", cfg.Azure.OpenAIDeployment)
		fmt.Printf("   Retrieval Mode:  %s\n", cfg.Retrieval.Mode)
		return nil
	},
}
