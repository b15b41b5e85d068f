package search

import (
	"context"
	"fmt"
)

// MockGoogleSearcher returns canned results. It stands in for the real
// Custom Search API until billing is sorted out.
type MockGoogleSearcher struct{}

func NewMockGoogleSearcher() *MockGoogleSearcher {
	return &MockGoogleSearcher{}
}

func (s *MockGoogleSearcher) Search(ctx context.Context, query string) (*Results, error) {
	return &Results{
		Items: []Item{
			{
				Title:   fmt.Sprintf("Mock result 1 for: %s", query),
				Link:    "https://example.com/mock-result-1",
				Snippet: fmt.Sprintf("This is a mock search result snippet about %s.", query),
			},
			{
				Title:   fmt.Sprintf("Mock result 2 for: %s", query),
				Link:    "https://example.com/mock-result-2",
				Snippet: fmt.Sprintf("Another mock snippet with information related to %s.", query),
			},
		},
		SearchInformation: map[string]any{
			"totalResults": "2",
		},
	}, nil
}
