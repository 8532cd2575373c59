//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

package router

import (
	"strings"
	"unicode"

	"github.com/leyredelacalzada/azure-search-openai-demo/internal/specialist"
)

// stopWords contains common English words excluded from keyword matching.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "by": true, "for": true, "from": true,
	"has": true, "he": true, "in": true, "is": true, "it": true,
	"its": true, "of": true, "on": true, "or": true, "that": true,
	"the": true, "to": true, "was": true, "were": true, "will": true,
	"with": true, "this": true, "but": true, "they": true, "have": true,
	"had": true, "what": true, "when": true, "where": true, "who": true,
	"which": true, "why": true, "how": true, "all": true, "each": true,
	"do": true, "does": true, "get": true, "my": true, "i": true,
	"you": true, "we": true, "me": true, "your": true, "our": true,
	"can": true, "should": true, "much": true, "many": true,
}

// tokenize splits text into lowercase tokens, dropping stop words and
// punctuation.
func tokenize(text string) map[string]bool {
	text = strings.ToLower(text)

	tokens := make(map[string]bool)
	var current strings.Builder
	flush := func() {
		if current.Len() == 0 {
			return
		}
		token := current.String()
		current.Reset()
		if !stopWords[token] {
			tokens[token] = true
		}
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// matchKeywords scans specialists in registry priority order and returns
// the first whose keyword list intersects the text's tokens. When a query
// matches several specialists, the earliest declared wins.
func matchKeywords(text string, registry *specialist.Registry) (*specialist.Specialist, bool) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil, false
	}

	for _, sp := range registry.Ordered() {
		for _, kw := range sp.Keywords {
			if tokens[kw] {
				return sp, true
			}
		}
	}

	return nil, false
}
