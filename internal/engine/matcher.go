package engine

import (
	"cmp"
	"slices"
	"strings"
)

// MatchDate returns every record born on (month, day), ordered by apparent
// surname (last word of the name) and then by full name, case-insensitively.
func MatchDate(records []BirthdayRecord, month, day int) []BirthdayRecord {
	hits := []BirthdayRecord{}
	for _, r := range records {
		if int(r.Month) == month && int(r.Day) == day {
			hits = append(hits, r)
		}
	}
	slices.SortStableFunc(hits, compareBySurname)
	return hits
}

func compareBySurname(a, b BirthdayRecord) int {
	ka, na := surnameKey(a.Name)
	kb, nb := surnameKey(b.Name)
	return cmp.Or(strings.Compare(ka, kb), strings.Compare(na, nb))
}

// surnameKey returns the lowered last token and the lowered full name.
func surnameKey(name string) (string, string) {
	name = strings.ToLower(strings.TrimSpace(name))
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", name
	}
	return parts[len(parts)-1], name
}

// BuildIndex maps "MM-DD" to the names born that day, sorted
// case-insensitively. Records with an impossible date or no name are skipped.
func BuildIndex(records []BirthdayRecord) map[string][]string {
	idx := make(map[string][]string)
	for _, r := range records {
		m, d := int(r.Month), int(r.Day)
		if m <= 0 || d <= 0 || m > 12 || d > 31 {
			continue
		}
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		key := FormatMonthDay(m, d)
		idx[key] = append(idx[key], name)
	}
	for k := range idx {
		slices.SortStableFunc(idx[k], func(a, b string) int {
			return strings.Compare(strings.ToLower(a), strings.ToLower(b))
		})
	}
	return idx
}

// Names returns the display names of the records, in order.
func Names(records []BirthdayRecord, fallback string) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.DisplayName(fallback))
	}
	return out
}
