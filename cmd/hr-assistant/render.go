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
	"fmt"
	"strings"

	"github.com/leyredelacalzada/azure-search-openai-demo/internal/pipeline"
)

// runAndRender executes one pipeline run and renders its events to the
// terminal. Returns an error when the run terminated with an error event.
func runAndRender(ctx context.Context, a *app, query, kb string) error {
	events := a.orchestrator.Run(ctx, pipeline.Request{
		Query:     query,
		KBVariant: kb,
	})

	var failed error

	for ev := range events {
		switch ev.Type {
		case pipeline.EventKBInfo:
			fmt.Printf("📚 Knowledge base: %s (%s)\n",
				ev.KBName, strings.Join(ev.Sources, ", "))

		case pipeline.EventStatus:
			fmt.Printf("⏳ [%s] %s\n", ev.Agent, ev.Message)

		case pipeline.EventRouting:
			fmt.Printf("🔀 Routing to: %s\n   Reason: %s\n", ev.To, ev.Reason)

		case pipeline.EventContext:
			if len(ev.Sources) == 0 {
				fmt.Println("📄 No sources retrieved")
			} else {
				fmt.Printf("📄 Sources: %s\n", strings.Join(ev.Sources, ", "))
			}

		case pipeline.EventResponseStart:
			fmt.Printf("\n💬 Response:\n")

		case pipeline.EventResponseChunk:
			fmt.Print(ev.Content)

		case pipeline.EventResponseEnd:
			fmt.Println()

		case pipeline.EventError:
			failed = fmt.Errorf("pipeline error: %s", ev.Message)
			fmt.Printf("\n❌ Error: %s\n", ev.Message)
		}
	}

	return failed
}
