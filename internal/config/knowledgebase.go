//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

package config

// DefaultKnowledgeBaseVariant is the variant used when a request does not
// select one, or selects one that does not exist.
const DefaultKnowledgeBaseVariant = "base"

// KnowledgeBase describes one knowledge base variant: the underlying
// knowledge base name in the search service plus the data sources that
// back it.
type KnowledgeBase struct {
	Variant     string   `json:"variant"`
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Sources     []string `json:"sources"`
}

// KnowledgeBases returns the static catalog of knowledge base variants,
// keyed by variant identifier. The catalog is rebuilt on each call so
// callers can never mutate shared state.
func KnowledgeBases() map[string]KnowledgeBase {
	return map[string]KnowledgeBase{
		"base": {
			Variant:     "base",
			Name:        "gptkbindex-agent-upgrade",
			Label:       "Base (Documents Only)",
			Description: "HR documents from indexed PDFs",
			Sources:     []string{"gptkbindex"},
		},
		"with-sharepoint": {
			Variant:     "with-sharepoint",
			Name:        "gptkbindex-agent-upgrade-with-sp",
			Label:       "+ SharePoint",
			Description: "HR docs + live SharePoint search",
			Sources:     []string{"gptkbindex", "sharepoint"},
		},
		"with-web": {
			Variant:     "with-web",
			Name:        "gptkbindex-agent-upgrade-with-web",
			Label:       "+ Web Search",
			Description: "HR docs + public web search",
			Sources:     []string{"gptkbindex", "web"},
		},
		"with-web-and-sharepoint": {
			Variant:     "with-web-and-sharepoint",
			Name:        "gptkbindex-agent-upgrade-with-web-and-sp",
			Label:       "+ Web + SharePoint",
			Description: "All sources combined",
			Sources:     []string{"gptkbindex", "web", "sharepoint"},
		},
	}
}

// KnowledgeBaseFor resolves a variant selector to its knowledge base
// configuration, falling back to the base variant for unknown selectors.
func KnowledgeBaseFor(variant string) KnowledgeBase {
	kbs := KnowledgeBases()
	if kb, ok := kbs[variant]; ok {
		return kb
	}
	return kbs[DefaultKnowledgeBaseVariant]
}

// KnowledgeBaseVariants returns the valid variant identifiers.
func KnowledgeBaseVariants() []string {
	return []string{
		"base",
		"with-sharepoint",
		"with-web",
		"with-web-and-sharepoint",
	}
}
