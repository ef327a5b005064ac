// Package search wraps the Google Custom Search API used by the company
// research agent to discover pages about the target company.
package search

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Result is one search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Searcher performs web searches for company research.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// GoogleSearcher implements Searcher over the Custom Search API.
type GoogleSearcher struct {
	svc *customsearch.Service
	cx  string
}

// NewGoogleSearcher creates a searcher with an API key and search engine ID.
func NewGoogleSearcher(ctx context.Context, apiKey, cx string) (*GoogleSearcher, error) {
	if apiKey == "" || cx == "" {
		return nil, fmt.Errorf("search API key and engine ID are required")
	}
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &GoogleSearcher{svc: svc, cx: cx}, nil
}

// Search runs one query and returns up to limit results.
func (s *GoogleSearcher) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 5
	}
	resp, err := s.svc.Cse.List().Context(ctx).Cx(s.cx).Q(query).Num(int64(limit)).Do()
	if err != nil {
		return nil, fmt.Errorf("search failed for %q: %w", query, err)
	}

	results := make([]Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, Result{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}
	return results, nil
}

// CompanyQueries returns the queries the research agent issues for a company:
// recent news, culture and values, and interview process.
func CompanyQueries(company string) []string {
	return []string{
		fmt.Sprintf("%s company news 2026", company),
		fmt.Sprintf("%s company culture values mission", company),
		fmt.Sprintf("%s interview process engineering", company),
	}
}
