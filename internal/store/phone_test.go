package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/this-day/internal/engine"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"6175550100", "617-555-0100"},
		{"(617) 555-0100", "617-555-0100"},
		{" 617.555.0100 ", "617-555-0100"},
		{"+1 617 555 0100", "+1 617 555 0100"}, // 11 digits stay as typed
		{"  555-0100 ", "555-0100"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in), tt.in)
	}
}

func TestPhoneList_DedupesByDigits(t *testing.T) {
	records := []engine.BirthdayRecord{
		{Name: "Patti", Phone: "617-555-0100"},
		{Name: "Dup", Phone: "(617) 555 0100"},
		{Name: "NoPhone"},
		{Name: "Letters", Phone: "call me"},
		{Name: " Bob ", Phone: "6175550199"},
	}

	list := PhoneList(records)

	assert.Equal(t, []PhoneEntry{
		{Phone: "617-555-0100", Label: "Patti"},
		{Phone: "617-555-0199", Label: "Bob"},
	}, list)
	assert.Equal(t, "617-555-0100, 617-555-0199", RecipientField(list))
	assert.Equal(t, "", RecipientField(nil))
}
