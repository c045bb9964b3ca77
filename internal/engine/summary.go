package engine

import (
	"fmt"
	"strings"
)

var openers = []string{
	"🎉 Hear ye, hear ye: it’s %s and the vibes are birthday-shaped.",
	"✨ Family bulletin! %s just walked in wearing confetti and demanding cake.",
	"🎈Okay team: %s fun facts incoming — helmets optional, joy required.",
	"💌 A cheerful %s dispatch from the ‘this day’ department of whimsy (now with extra sparkle).",
}

var rituals = []string{
	"Today’s tiny mission: send one nice text, eat one good snack, and do one dramatic “ta-da!” for no reason.",
	"Birthday protocol: deploy emojis, deliver compliments, and do not let the cake-to-fun ratio fall below 1:1.",
	"Your assignment (should you choose to accept it): be kind, be goofy, and pretend you’re in a celebratory montage.",
	"Mandatory holiday for the soul: laugh once, hype someone up, and consider a second dessert purely on principle.",
}

var birthdayLines = []string{
	"🎂 And MOST importantly: happy birthday to %s! May your day be fun, your cake be generous, and your group chat be appropriately chaotic.",
	"🥳 Birthday alert for %s! Wishing you big laughs, good food, and absolutely zero responsibilities (except enjoying yourself).",
	"🎉 It’s %s’s birthday! Everyone send love, memes, and possibly a ridiculous amount of cake emojis. 🎂🎂🎂",
	"🎈 Today we celebrate %s! Hope your day is a highlight reel and your year is even better.",
}

var signoffs = []string{
	"Love you all — now go forth and be delightful.",
	"End of bulletin. Please celebrate responsibly (or at least enthusiastically).",
	"This message was brought to you by the Spirit of Patti™ and the Department of Good Vibes.",
	"Alright, that’s the report. Somebody cue the birthday playlist!",
}

const (
	headlineFormat    = "On this day in %s: %s"
	headlineFallback  = "On this day in history: something interesting definitely happened, and we’re choosing to focus on the sparkle"
	funFactFormat     = "Did you know? %s"
	sportsFormat      = "🏟️ Boston sports corner: %s — %s"
	rockFormat        = "🎸 Classic rock time machine: %s — %s"
	famousFormat      = "⭐ Famous birthday roll call: %s share this date too"
	famousTheme       = "So yes, today’s theme is: ‘legendary company, acceptable levels of chaos.’"
	birthdayCallout   = "Everybody say happy birthday right now (yes, even the lurkers) 🎊"
	stealthBirthday   = "And if it’s secretly your birthday and you didn’t tell us… congrats on the stealth mission. 😄"
	stealthCookie     = "Still: you deserve a cookie for surviving today. 🍪"
	birthdayFallback  = "someone"
	sentenceTerminals = ".!?"
)

// SummaryInput is everything the composer needs for one date.
type SummaryInput struct {
	DateLabel    string
	FunFact      string
	Featured     []TriviaItem
	Sports       []TriviaItem
	Rock         []TriviaItem
	BirthdayHits []BirthdayRecord
	FamousNames  []string
	Seed         int64
}

// Composer writes the shareable family summary.
type Composer struct {
	Classifier *Classifier
}

// NewComposer returns a composer using c, or the default classifier when c is nil.
func NewComposer(c *Classifier) *Composer {
	if c == nil {
		c = DefaultClassifier()
	}
	return &Composer{Classifier: c}
}

// Compose builds the summary paragraph. The output is a pure function of in.
func (c *Composer) Compose(in SummaryInput) string {
	var parts []string
	add := func(s string) {
		if s = Sentence(s); s != "" {
			parts = append(parts, s)
		}
	}

	add(fmt.Sprintf(choose(openers, in.Seed+OffsetOpener), in.DateLabel))

	if it, ok := PickPositive(in.Featured, in.Seed+OffsetHeadlinePick, c.Classifier); ok {
		year, text := it.Clean()
		add(fmt.Sprintf(headlineFormat, year, text))
	} else {
		add(headlineFallback)
	}

	if fact := strings.TrimSpace(in.FunFact); fact != "" {
		add(fmt.Sprintf(funFactFormat, fact))
	}

	if it, ok := PickPositive(in.Sports, in.Seed+OffsetSportsPick, c.Classifier); ok {
		year, text := it.Clean()
		add(fmt.Sprintf(sportsFormat, year, text))
	}
	if it, ok := PickPositive(in.Rock, in.Seed+OffsetRockPick, c.Classifier); ok {
		year, text := it.Clean()
		add(fmt.Sprintf(rockFormat, year, text))
	}

	if len(in.FamousNames) > 0 {
		add(fmt.Sprintf(famousFormat, JoinNames(in.FamousNames)))
		add(famousTheme)
	}

	add(choose(rituals, in.Seed+OffsetRitual))

	if len(in.BirthdayHits) > 0 {
		names := JoinNames(Names(in.BirthdayHits, birthdayFallback))
		add(fmt.Sprintf(choose(birthdayLines, in.Seed+OffsetBirthdayLine), names))
		add(birthdayCallout)
	} else {
		add(stealthBirthday)
		add(stealthCookie)
	}

	add(choose(signoffs, in.Seed+OffsetSignoff))
	return strings.Join(parts, " ")
}

// PickPositive chooses one headline-worthy item. Items with blank or negative
// text are skipped; items carrying a positive hint are preferred.
func PickPositive(items []TriviaItem, seed int64, c *Classifier) (TriviaItem, bool) {
	var good, better []TriviaItem
	for _, it := range items {
		_, text := it.Clean()
		if text == "" {
			continue
		}
		tone := c.Classify(text)
		if tone.Negative {
			continue
		}
		good = append(good, it)
		if tone.Positive {
			better = append(better, it)
		}
	}
	pool := better
	if len(pool) == 0 {
		pool = good
	}
	if len(pool) == 0 {
		return TriviaItem{}, false
	}
	return pool[newRand(seed).IntN(len(pool))], true
}

// JoinNames renders "A", "A and B" or "A, B, and C". Blank names are dropped.
func JoinNames(names []string) string {
	clean := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			clean = append(clean, n)
		}
	}
	switch len(clean) {
	case 0:
		return ""
	case 1:
		return clean[0]
	case 2:
		return clean[0] + " and " + clean[1]
	}
	return strings.Join(clean[:len(clean)-1], ", ") + ", and " + clean[len(clean)-1]
}

// Sentence trims s and terminates it with a period unless it already ends
// with '.', '!' or '?'.
func Sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s[len(s)-1:], sentenceTerminals) {
		return s
	}
	return s + "."
}
