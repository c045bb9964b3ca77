package store

import (
	"strings"

	"github.com/tartampluch/this-day/internal/config"
	"github.com/tartampluch/this-day/internal/engine"
)

// PhoneEntry is one line of the copy/paste recipient list.
type PhoneEntry struct {
	Phone string
	Label string
}

// Digits keeps only the ASCII digits of s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhone formats ten-digit numbers as DDD-DDD-DDDD and returns
// anything else trimmed but otherwise untouched.
func NormalizePhone(s string) string {
	d := Digits(s)
	if len(d) == config.PhoneDigits {
		return d[0:3] + "-" + d[3:6] + "-" + d[6:10]
	}
	return strings.TrimSpace(s)
}

// PhoneList extracts the phones of every person, first occurrence wins
// when two entries share the same digits.
func PhoneList(records []engine.BirthdayRecord) []PhoneEntry {
	seen := make(map[string]struct{})
	out := []PhoneEntry{}
	for _, r := range records {
		phone := NormalizePhone(r.Phone)
		d := Digits(phone)
		if phone == "" || d == "" {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, PhoneEntry{Phone: phone, Label: strings.TrimSpace(r.Name)})
	}
	return out
}

// RecipientField renders the list for a messaging app "To:" field.
func RecipientField(phones []PhoneEntry) string {
	nums := make([]string, 0, len(phones))
	for _, p := range phones {
		if v := strings.TrimSpace(p.Phone); v != "" {
			nums = append(nums, v)
		}
	}
	return strings.Join(nums, ", ")
}
