package agent

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const minSearchWordLen = 3

// SmartSearch runs the whole query first and, when that finds nothing,
// searches each word of three or more characters. Merged results keep
// first-seen order and contain each product once. Search errors count as
// empty results.
func SmartSearch(ctx context.Context, catalog TextSearcher, query string) []Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Product{}
	}

	results, err := catalog.SearchByText(ctx, query)
	if err == nil && len(results) > 0 {
		return results
	}

	merged := make([]Product, 0)
	seen := make(map[uuid.UUID]bool)
	for _, word := range strings.Fields(query) {
		if utf8.RuneCountInString(word) < minSearchWordLen {
			continue
		}
		hits, err := catalog.SearchByText(ctx, word)
		if err != nil {
			continue
		}
		for _, product := range hits {
			if seen[product.ID] {
				continue
			}
			seen[product.ID] = true
			merged = append(merged, product)
		}
	}
	return merged
}
