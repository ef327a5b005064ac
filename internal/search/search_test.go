package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGoogleSearcher_RequiresCredentials(t *testing.T) {
	_, err := NewGoogleSearcher(context.Background(), "", "cx")
	assert.Error(t, err)

	_, err = NewGoogleSearcher(context.Background(), "key", "")
	assert.Error(t, err)
}

func TestCompanyQueries_MentionCompany(t *testing.T) {
	queries := CompanyQueries("Acme")

	assert.Len(t, queries, 3)
	for _, q := range queries {
		assert.Contains(t, q, "Acme")
	}
}
