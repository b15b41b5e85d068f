package search

import "context"

type Item struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type Results struct {
	Items             []Item         `json:"items"`
	SearchInformation map[string]any `json:"searchInformation"`
}

type Searcher interface {
	Search(ctx context.Context, query string) (*Results, error)
}
