package engine

import "strings"

// BirthName extracts the display name of a notable birth: the text up to
// the first comma ("Ada Lovelace, English mathematician" -> "Ada Lovelace").
func BirthName(item TriviaItem) string {
	_, text := item.Clean()
	if text == "" {
		return ""
	}
	name, _, _ := strings.Cut(text, ",")
	return strings.TrimSpace(name)
}

// PickFamous returns up to n unique, positive-ish notable names born on the
// date. With more than n candidates the choice is sampled from seed+OffsetFamousPicker.
func PickFamous(births []TriviaItem, seed int64, n int, c *Classifier) []string {
	seen := make(map[string]struct{})
	uniq := []string{}
	for _, b := range births {
		_, text := b.Clean()
		if text == "" || !c.IsPositiveish(text) {
			continue
		}
		name := BirthName(b)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		uniq = append(uniq, name)
	}
	return Sample(uniq, n, seed+OffsetFamousPicker)
}
