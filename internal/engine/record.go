package engine

import (
	"bytes"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// TriviaItem is a single dated historical record for a calendar date.
type TriviaItem struct {
	Year string `json:"year"`
	Text string `json:"text"`
}

// UnmarshalJSON accepts the year as a JSON number (Wikimedia) or a string.
// Other fields of the upstream object (pages, thumbnails) are ignored.
func (t *TriviaItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Year json.RawMessage `json:"year"`
		Text json.RawMessage `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Year = rawToText(raw.Year)
	t.Text = rawToText(raw.Text)
	return nil
}

// Clean returns the trimmed year and text.
func (t TriviaItem) Clean() (string, string) {
	return strings.TrimSpace(t.Year), strings.TrimSpace(t.Text)
}

// Payload is the almanac response for one date.
type Payload struct {
	Events []TriviaItem `json:"events"`
	Births []TriviaItem `json:"births"`
}

// EmptyPayload is handed to the core whenever the upstream data is unavailable.
func EmptyPayload() Payload {
	return Payload{Events: []TriviaItem{}, Births: []TriviaItem{}}
}

// BirthdayRecord is a person entry from birthdays.json.
type BirthdayRecord struct {
	Name     string     `json:"name"`
	Month    LenientInt `json:"month"`
	Day      LenientInt `json:"day"`
	Relation string     `json:"relation"`
	Note     string     `json:"note"`
	Phone    string     `json:"phone"`

	// Extra holds keys added to birthdays.json by hand. They are written
	// back unchanged after the known fields.
	Extra map[string]json.RawMessage `json:"-"`
}

// recordFields are the keys decoded into named fields.
var recordFields = map[string]struct{}{
	"name": {}, "month": {}, "day": {}, "relation": {}, "note": {}, "phone": {},
}

// recordJSON has the same fields as BirthdayRecord without its methods.
type recordJSON BirthdayRecord

// UnmarshalJSON decodes the known fields and keeps every other key in Extra.
func (b *BirthdayRecord) UnmarshalJSON(data []byte) error {
	var r recordJSON
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if _, known := recordFields[k]; known {
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]json.RawMessage)
		}
		r.Extra[k] = v
	}
	*b = BirthdayRecord(r)
	return nil
}

// MarshalJSON writes the known fields first, then Extra in key order.
func (b BirthdayRecord) MarshalJSON() ([]byte, error) {
	base, err := marshalNoEscape(recordJSON(b))
	if err != nil || len(b.Extra) == 0 {
		return base, err
	}

	keys := make([]string, 0, len(b.Extra))
	for k := range b.Extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var buf bytes.Buffer
	buf.Write(base[:len(base)-1]) // drop '}'
	for _, k := range keys {
		name, err := marshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(b.Extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalNoEscape encodes v keeping '<', '>' and '&' literal.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// DisplayName returns the trimmed name, or fallback when blank.
func (b BirthdayRecord) DisplayName(fallback string) string {
	if name := strings.TrimSpace(b.Name); name != "" {
		return name
	}
	return fallback
}

// LenientInt decodes JSON numbers (truncated toward zero) and integer strings.
// Anything else (null, booleans, "5.0", garbage) decodes to 0, which never
// matches a valid month or day.
type LenientInt int

// UnmarshalJSON never fails so that one bad entry does not reject the whole file.
func (n *LenientInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '"' {
		f, err := strconv.ParseFloat(rawToText(data), 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = LenientInt(int(f))
		return nil
	}
	*n = LenientInt(ToInt(rawToText(data)))
	return nil
}

// ToInt parses a base-10 integer, returning 0 when the value is not one.
func ToInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// rawToText renders a raw JSON scalar as text: strings are unquoted,
// numbers are kept verbatim, everything else becomes "".
func rawToText(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ""
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ""
		}
		return s
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return string(data)
	default:
		return ""
	}
}
