package engine

import "strings"

// FilterKeywords keeps, in order, every item whose text contains at least one
// keyword (case-insensitive substring). No keywords means no matches.
func FilterKeywords(items []TriviaItem, keywords []string) []TriviaItem {
	lowered := lowerAll(keywords)
	out := []TriviaItem{}
	if len(lowered) == 0 {
		return out
	}
	for _, it := range items {
		_, text := it.Clean()
		if containsAny(strings.ToLower(text), lowered) {
			out = append(out, it)
		}
	}
	return out
}
