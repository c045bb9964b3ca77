package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tartampluch/this-day/internal/auth"
	"github.com/tartampluch/this-day/internal/config"
	"github.com/tartampluch/this-day/internal/engine"
	"github.com/tartampluch/this-day/internal/store"
)

// options mirrors the command line. Empty strings mean "not given".
type options struct {
	version bool
	debug   bool
	serve   bool
	addr    string

	date string
	out  string
	show bool

	birthdays string
	cacheDir  string
	title     string
	subtitle  string
	sports    string
	rock      string

	addBirthday string
	bdayDate    string
	relation    string
	note        string
	phone       string
	addPhone    string
	label       string
	removePhone string
	importVCF   string
	setPassword bool
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var o options
	fs.BoolVar(&o.version, config.FlagVersion, false, config.FlagDescVersion)
	fs.BoolVar(&o.debug, config.FlagDebug, false, config.FlagDescDebug)
	fs.BoolVar(&o.serve, config.FlagServe, false, config.FlagDescServe)
	fs.StringVar(&o.addr, config.FlagAddr, "", config.FlagDescAddr)

	fs.StringVar(&o.date, config.FlagDate, "", config.FlagDescDate)
	fs.StringVar(&o.out, config.FlagOut, config.DefaultOut, config.FlagDescOut)
	fs.BoolVar(&o.show, config.FlagShow, false, config.FlagDescShow)

	fs.StringVar(&o.birthdays, config.FlagBirthdays, "", config.FlagDescBirthdays)
	fs.StringVar(&o.cacheDir, config.FlagCacheDir, "", config.FlagDescCacheDir)
	fs.StringVar(&o.title, config.FlagTitle, "", config.FlagDescTitle)
	fs.StringVar(&o.subtitle, config.FlagSubtitle, "", config.FlagDescSubtitle)
	fs.StringVar(&o.sports, config.FlagSports, "", config.FlagDescSports)
	fs.StringVar(&o.rock, config.FlagRock, "", config.FlagDescRock)

	fs.StringVar(&o.addBirthday, config.FlagAddBirthday, "", config.FlagDescAddBirthday)
	fs.StringVar(&o.bdayDate, config.FlagBdayDate, "", config.FlagDescBdayDate)
	fs.StringVar(&o.relation, config.FlagRelation, "", config.FlagDescRelation)
	fs.StringVar(&o.note, config.FlagNote, "", config.FlagDescNote)
	fs.StringVar(&o.phone, config.FlagPhone, "", config.FlagDescPhone)
	fs.StringVar(&o.addPhone, config.FlagAddPhone, "", config.FlagDescAddPhone)
	fs.StringVar(&o.label, config.FlagLabel, "", config.FlagDescLabel)
	fs.StringVar(&o.removePhone, config.FlagRemovePhone, "", config.FlagDescRemovePhone)
	fs.StringVar(&o.importVCF, config.FlagImportVCF, "", config.FlagDescImportVCF)
	fs.BoolVar(&o.setPassword, config.FlagSetPassword, false, config.FlagDescSetPassword)

	err := fs.Parse(args)
	return o, err
}

// apply lets flags override the environment for this run.
func (o options) apply(s *config.Settings) {
	if o.birthdays != "" {
		s.BirthdaysFile = o.birthdays
	}
	if o.cacheDir != "" {
		s.CacheDir = o.cacheDir
	}
	if o.title != "" {
		s.Title = o.title
	}
	if o.subtitle != "" {
		s.Subtitle = o.subtitle
	}
	if o.addr != "" {
		s.ListenAddr = o.addr
	}
	if kw := config.SplitKeywords(o.sports); len(kw) > 0 {
		s.SportsKeywords = kw
	}
	if kw := config.SplitKeywords(o.rock); len(kw) > 0 {
		s.RockKeywords = kw
	}
}

// manages reports whether a birthdays.json maintenance command was given.
func (o options) manages() bool {
	return o.addBirthday != "" || o.addPhone != "" || o.removePhone != "" || o.importVCF != ""
}

// run dispatches to the requested mode. Maintenance commands run in a
// fixed order and exit; otherwise the server or the static export runs.
func run(ctx context.Context, o options, s *config.Settings, stdout io.Writer) error {
	if o.setPassword {
		if err := auth.StorePassword(s.User, s.Pass); err != nil {
			return err
		}
		fmt.Fprintf(stdout, config.MsgCLIPassword, s.User)
		return nil
	}

	fs := store.NewFileStore(s.BirthdaysFile)
	if o.manages() {
		return manage(ctx, o, fs, stdout)
	}
	if o.serve {
		return serve(ctx, s, fs)
	}
	return export(ctx, o, s, fs, stdout)
}

func manage(ctx context.Context, o options, fs *store.FileStore, stdout io.Writer) error {
	if o.addBirthday != "" {
		if strings.TrimSpace(o.bdayDate) == "" {
			return errors.New(config.ErrBdayDateMissing)
		}
		month, day, err := engine.ParseMonthDay(o.bdayDate)
		if err != nil {
			return err
		}
		if err := fs.Upsert(store.Person{
			Name:     o.addBirthday,
			Month:    month,
			Day:      day,
			Relation: o.relation,
			Note:     o.note,
			Phone:    o.phone,
		}); err != nil {
			return err
		}
		fmt.Fprintf(stdout, config.MsgCLIPerson, strings.TrimSpace(o.addBirthday), month, day, fs.Path())
	}

	if o.addPhone != "" {
		if err := fs.AddPhone(o.addPhone, o.label); err != nil {
			return err
		}
		fmt.Fprintf(stdout, config.MsgCLIAddPhone, store.NormalizePhone(o.addPhone), fs.Path())
	}

	if o.removePhone != "" {
		if _, err := fs.RemovePhone(o.removePhone); err != nil {
			return err
		}
		fmt.Fprintf(stdout, config.MsgCLIRemPhone, store.NormalizePhone(o.removePhone), fs.Path())
	}

	if o.importVCF != "" {
		n, err := fs.ImportVCardFile(ctx, o.importVCF)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, config.MsgCLIImported, n, o.importVCF, fs.Path())
	}
	return nil
}

// export writes one static page. The almanac cache is only opened when the
// facts are requested.
func export(ctx context.Context, o options, s *config.Settings, fs *store.FileStore, stdout io.Writer) error {
	if err := fs.Ensure(); err != nil {
		return err
	}

	deps, err := newDeps(s, fs, o.show)
	if err != nil {
		return err
	}
	defer deps.Close()

	f, err := os.Create(o.out)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteResp, err)
	}

	genErr := deps.pages.Generate(ctx, pageRequest(o, s), f)
	if closeErr := f.Close(); genErr == nil && closeErr != nil {
		genErr = fmt.Errorf("%s: %w", config.ErrWriteResp, closeErr)
	}
	if genErr != nil {
		_ = os.Remove(o.out)
		return genErr
	}

	fmt.Fprintf(stdout, config.MsgCLIWrote, o.out)
	return nil
}
