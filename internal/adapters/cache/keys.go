package cache

import "strings"

// NormalizeQuery lowercases and trims a geocode query so that lookups for
// "Gare Centrale" and " gare centrale" share a cache entry.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// uniqueQueries normalizes queries, dropping blanks and duplicates while
// keeping first-seen order.
func uniqueQueries(queries []string) []string {
	seen := make(map[string]struct{}, len(queries))
	out := make([]string, 0, len(queries))
	for _, q := range queries {
		q = NormalizeQuery(q)
		if q == "" {
			continue
		}
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out
}
