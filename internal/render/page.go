// Package render turns a curated digest into the family HTML page.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/tartampluch/this-day/internal/config"
	"github.com/tartampluch/this-day/internal/engine"
	"github.com/tartampluch/this-day/internal/store"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Page is everything one rendering needs. Digest is only read when Show is set.
type Page struct {
	Title    string
	Subtitle string
	Lang     string
	Now      time.Time

	Month int
	Day   int
	Show  bool

	Digest      engine.Digest
	EventsTotal int
	BirthsTotal int
	Debug       string

	Records        []engine.BirthdayRecord
	SportsKeywords []string
	RockKeywords   []string
}

// Renderer is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
	tr   *Translator
}

const pageTemplate = "page.html.tmpl"

// itemList feeds the "items" sub-template.
type itemList struct {
	Items []engine.TriviaItem
	Empty string
}

var funcs = template.FuncMap{
	"args": func(items []engine.TriviaItem, empty string) itemList {
		return itemList{Items: items, Empty: empty}
	},
}

// NewRenderer parses the embedded page template.
func NewRenderer(tr *Translator) (*Renderer, error) {
	tmpl, err := template.New(pageTemplate).Funcs(funcs).ParseFS(templateFS, "templates/"+pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrTemplate, err)
	}
	return &Renderer{tmpl: tmpl, tr: tr}, nil
}

// Translator exposes the translator the renderer was built with.
func (r *Renderer) Translator() *Translator {
	return r.tr
}

// Render writes the page. The output is buffered so a template failure
// never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, p Page) error {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, r.view(p)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrRender, err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteResp, err)
	}
	return nil
}

// view is the template's data.
type view struct {
	Page
	loc *Localizer

	DateLabel string
	DateKey   string
	Grid      MonthGrid
	Weekdays  []string
	Upcoming  []engine.UpcomingBirthday
	Phones    string

	SportsFilter string
	RockFilter   string
}

func (r *Renderer) view(p Page) view {
	loc := r.tr.Localizer(p.Lang)
	if p.Now.IsZero() {
		p.Now = time.Now()
	}
	p.Lang = loc.Lang()

	rock := p.RockKeywords
	rockFilter := strings.Join(rock, ", ")
	if len(rock) > config.RockKeywordsShown {
		rockFilter = strings.Join(rock[:config.RockKeywordsShown], ", ") + "…"
	}

	return view{
		Page:      p,
		loc:       loc,
		DateLabel: engine.DateLabel(p.Month, p.Day),
		DateKey:   engine.FormatMonthDay(p.Month, p.Day),
		Grid: BuildMonthGrid(GridYear(p.Now.Year(), p.Month, p.Day), p.Month, p.Day, p.Now,
			engine.BuildIndex(p.Records), loc.List(config.TKeyMonths)),
		Weekdays:     loc.List(config.TKeyWeekdays),
		Upcoming:     engine.Upcoming(p.Records, p.Now, config.UpcomingCount),
		Phones:       store.RecipientField(store.PhoneList(p.Records)),
		SportsFilter: strings.Join(p.SportsKeywords, ", "),
		RockFilter:   rockFilter,
	}
}

// T translates key for the page language.
func (v view) T(key string) string {
	return v.loc.Msg(key)
}

// Filtered renders the "(Filtered by: ...)" line.
func (v view) Filtered(keywords string) string {
	return v.loc.MsgData(config.TKeyFilteredBy, map[string]any{"Keywords": keywords})
}

// When renders the distance to an upcoming birthday.
func (v view) When(u engine.UpcomingBirthday) string {
	if u.DaysUntil == 0 {
		return v.loc.Msg(config.TKeyUpcomingToday)
	}
	return v.loc.MsgData(config.TKeyUpcomingInDays, map[string]any{"Days": u.DaysUntil})
}

// Closer is the footer line in the page language. It names the family
// members born on the selected date, or invites the reader to add some.
func (v view) Closer() string {
	names := engine.Names(v.Digest.BirthdayHits, v.loc.Msg(config.TKeyCloserSomeone))
	switch len(names) {
	case 0:
		return v.loc.Msg(config.TKeyCloserInvite)
	case 1:
		return v.loc.MsgData(config.TKeyCloserOne, map[string]any{"Last": names[0]})
	case 2:
		return v.loc.MsgData(config.TKeyCloserTwo, map[string]any{"First": names[0], "Last": names[1]})
	}
	last := len(names) - 1
	return v.loc.MsgData(config.TKeyCloserMany, map[string]any{
		"First": strings.Join(names[:last], ", "),
		"Last":  names[last],
	})
}

// Link builds a page URL for a date key.
func (v view) Link(key string, show bool) string {
	q := config.QueryDate + "=" + key
	if show {
		q += "&" + config.QueryShow + "=1"
	}
	if v.Lang != "" {
		q += "&" + config.QueryLang + "=" + v.Lang
	}
	return config.RouteRoot + "?" + q
}
