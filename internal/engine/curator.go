package engine

import "github.com/tartampluch/this-day/internal/config"

// DigestInput is the raw material for one date.
type DigestInput struct {
	Month   int
	Day     int
	Payload Payload
	FunFact string
	Records []BirthdayRecord
}

// Digest holds every selection shown on the page for one date.
type Digest struct {
	Month     int
	Day       int
	DateLabel string
	Seed      int64
	FunFact   string

	FeaturedEvents []TriviaItem
	FeaturedBirths []TriviaItem
	SportsAll      []TriviaItem
	SportsFeatured []TriviaItem
	RockAll        []TriviaItem
	RockFeatured   []TriviaItem

	FamousSummary []string
	FamousCard    []string

	BirthdayHits []BirthdayRecord
	Summary      string
}

// Curator runs the selection pipeline. It holds no mutable state and can be
// shared between goroutines.
type Curator struct {
	Classifier     *Classifier
	Composer       *Composer
	SportsKeywords []string
	RockKeywords   []string
}

// NewCurator wires a curator around the default classifier.
func NewCurator(sports, rock []string) *Curator {
	c := DefaultClassifier()
	return &Curator{
		Classifier:     c,
		Composer:       NewComposer(c),
		SportsKeywords: config.KeywordsOrDefault(sports, config.DefaultSportsKeywords),
		RockKeywords:   config.KeywordsOrDefault(rock, config.DefaultRockKeywords),
	}
}

// Curate computes the digest for in. Same input, same digest.
func (c *Curator) Curate(in DigestInput) Digest {
	seed := Seed(in.Month, in.Day)
	events, births := in.Payload.Events, in.Payload.Births

	d := Digest{
		Month:     in.Month,
		Day:       in.Day,
		DateLabel: DateLabel(in.Month, in.Day),
		Seed:      seed,
		FunFact:   in.FunFact,

		FeaturedEvents: Sample(events, config.FeaturedEventsCount, seed+OffsetFeaturedEvents),
		FeaturedBirths: Sample(births, config.FeaturedBirthsCount, seed+OffsetFeaturedBirths),
		SportsAll:      FilterKeywords(events, c.SportsKeywords),
		RockAll:        FilterKeywords(events, c.RockKeywords),

		FamousSummary: PickFamous(births, seed, config.FamousSummaryCount, c.Classifier),
		FamousCard:    PickFamous(births, seed+OffsetFamousCard, config.FamousCardCount, c.Classifier),

		BirthdayHits: MatchDate(in.Records, in.Month, in.Day),
	}
	d.SportsFeatured = Sample(d.SportsAll, config.SportsFeaturedCount, seed+OffsetSportsSample)
	d.RockFeatured = Sample(d.RockAll, config.RockFeaturedCount, seed+OffsetRockSample)

	d.Summary = c.Composer.Compose(SummaryInput{
		DateLabel:    d.DateLabel,
		FunFact:      in.FunFact,
		Featured:     d.FeaturedEvents,
		Sports:       d.SportsFeatured,
		Rock:         d.RockFeatured,
		BirthdayHits: d.BirthdayHits,
		FamousNames:  d.FamousSummary,
		Seed:         seed,
	})
	return d
}
