package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/this-day/internal/config"
)

// ReadVCards decodes a vCard stream into people. Cards without a usable
// BDAY are skipped; malformed cards are logged and skipped.
func ReadVCards(ctx context.Context, r io.Reader) ([]Person, error) {
	decoder := vcard.NewDecoder(r)
	var people []Person

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompStore,
				config.LogKeyError, err)
			if errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			continue
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || strings.TrimSpace(bday.Value) == "" {
			continue
		}
		date, err := parseDate(strings.TrimSpace(bday.Value))
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompStore,
				config.LogKeyValue, bday.Value)
			continue
		}

		people = append(people, Person{
			Name:  cardName(card),
			Month: int(date.Month()),
			Day:   date.Day(),
			Note:  fieldValue(card, config.VCardNote),
			Phone: fieldValue(card, config.VCardTEL),
		})
	}
	return people, nil
}

// ImportVCardFile reads path and upserts every person found into s.
func (s *FileStore) ImportVCardFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = f.Close() }()

	people, err := ReadVCards(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	return s.Import(people)
}

// cardName prefers FN over a flattened N, then the fallback name.
func cardName(card vcard.Card) string {
	if fn := fieldValue(card, config.VCardFN); fn != "" {
		return fn
	}
	if n := card.Name(); n != nil {
		parts := []string{n.HonorificPrefix, n.GivenName, n.AdditionalName, n.FamilyName, n.HonorificSuffix}
		if name := strings.Join(strings.Fields(strings.Join(parts, " ")), " "); name != "" {
			return name
		}
	}
	return config.FallbackName
}

func fieldValue(card vcard.Card, key string) string {
	if f := card.Get(key); f != nil {
		return strings.TrimSpace(f.Value)
	}
	return ""
}

// parseDate accepts full dates and the year-less --MM-DD / --MMDD forms.
// Year-less dates are anchored on a leap year so that --0229 survives.
func parseDate(value string) (time.Time, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}

	for _, f := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.New(config.ErrDateParse)
}
