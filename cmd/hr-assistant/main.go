//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

// Command hr-assistant routes employee questions to domain specialists
// grounded on the company knowledge base, as an HTTP service or from the
// terminal.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
