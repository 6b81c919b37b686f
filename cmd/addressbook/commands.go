package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tartampluch/addressbook/internal/book"
	"github.com/tartampluch/addressbook/internal/config"
	"github.com/tartampluch/addressbook/internal/exchange"
	"github.com/tartampluch/addressbook/internal/i18n"
)

var (
	errUsage          = errors.New(config.ErrUsage)
	errUnknownCommand = errors.New(config.ErrUnknownCommand)
	errRecordMissing  = errors.New(config.ErrRecordMissing)
	errExportFormat   = errors.New(config.ErrExportFormat)
)

func isUsageError(err error) bool {
	return errors.Is(err, errUsage) || errors.Is(err, errUnknownCommand)
}

// app carries the state shared by every command of one run.
type app struct {
	out      io.Writer
	tr       *i18n.Translator
	settings *config.Settings
	clock    book.Clock
	book     *book.AddressBook
}

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, config.ListSeparator) }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func (a *app) usage(fs *flag.FlagSet) {
	fmt.Fprintln(fs.Output(), a.tr.T(i18n.KeyUsage, nil))
	fs.PrintDefaults()
}

// dispatch loads the book, runs one command and saves the book when the
// command changed it.
func (a *app) dispatch(cmd string, args []string) error {
	type command struct {
		run     func(args []string) error
		mutates bool
	}
	commands := map[string]command{
		config.CmdAdd:       {a.cmdAdd, true},
		config.CmdSet:       {a.cmdSet, true},
		config.CmdEdit:      {a.cmdEdit, true},
		config.CmdRemove:    {a.cmdRemove, true},
		config.CmdDelete:    {a.cmdDelete, true},
		config.CmdShow:      {a.cmdShow, false},
		config.CmdList:      {a.cmdList, false},
		config.CmdSearch:    {a.cmdSearch, false},
		config.CmdBirthdays: {a.cmdBirthdays, false},
		config.CmdImport:    {a.cmdImport, true},
		config.CmdExport:    {a.cmdExport, false},
		config.CmdDemo:      {a.cmdDemo, false}, // saves and reloads on its own
	}

	c, ok := commands[cmd]
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownCommand, cmd)
	}

	if err := a.loadBook(); err != nil {
		return err
	}
	if err := c.run(args); err != nil {
		return err
	}
	if c.mutates {
		return a.book.Save(a.settings.BookPath)
	}
	return nil
}

// loadBook reads the configured book file. A missing file yields an empty book.
func (a *app) loadBook() error {
	a.book = book.New()
	err := a.book.Load(a.settings.BookPath)
	if errors.Is(err, book.ErrNotFound) {
		slog.Info(config.MsgBookMissing,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyFile, a.settings.BookPath,
		)
		return nil
	}
	return err
}

func (a *app) lookup(name string) (*book.Record, error) {
	r, ok := a.book.Record(name)
	if !ok {
		fmt.Fprintln(a.out, a.tr.T(i18n.KeyRecordMissing, map[string]any{"Name": name}))
		return nil, fmt.Errorf("%w: %q", errRecordMissing, name)
	}
	return r, nil
}

func parseCategory(s string) (book.Category, error) {
	c, err := book.ParseCategory(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errUsage, err)
	}
	return c, nil
}

// cmdAdd creates or replaces a contact: add NAME [-birthday D] [-phone P]... [-email E]...
func (a *app) cmdAdd(args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return errUsage
	}
	name := args[0]

	fs := flag.NewFlagSet(config.CmdAdd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	birthday := fs.String(config.FlagBirthday, "", config.FlagDescBirthday)
	var phones, emails stringList
	fs.Var(&phones, config.FlagPhone, config.FlagDescPhone)
	fs.Var(&emails, config.FlagEmail, config.FlagDescEmail)
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() != 0 {
		return errUsage
	}

	r, err := book.NewRecord(name, *birthday)
	if err != nil {
		return err
	}
	for _, p := range phones {
		if err := r.AddField(book.Phones, p); err != nil {
			return err
		}
	}
	for _, e := range emails {
		if err := r.AddField(book.Emails, e); err != nil {
			return err
		}
	}

	a.book.AddRecord(r)
	fmt.Fprintln(a.out, a.tr.T(i18n.KeyRecordAdded, map[string]any{"Name": name}))
	return nil
}

// cmdSet adds a phone or email, or replaces the birthday: set NAME CATEGORY VALUE
func (a *app) cmdSet(args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	c, err := parseCategory(args[1])
	if err != nil {
		return err
	}
	r, err := a.lookup(args[0])
	if err != nil {
		return err
	}
	if err := r.AddField(c, args[2]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.tr.T(i18n.KeyRecordUpdated, map[string]any{"Name": r.Name()}))
	return nil
}

// cmdEdit replaces one field value: edit NAME CATEGORY OLD NEW
func (a *app) cmdEdit(args []string) error {
	if len(args) != 4 {
		return errUsage
	}
	c, err := parseCategory(args[1])
	if err != nil {
		return err
	}
	r, err := a.lookup(args[0])
	if err != nil {
		return err
	}
	if err := r.EditField(c, args[2], args[3]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.tr.T(i18n.KeyRecordUpdated, map[string]any{"Name": r.Name()}))
	return nil
}

// cmdRemove drops list entries: rm NAME CATEGORY VALUE
func (a *app) cmdRemove(args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	c, err := parseCategory(args[1])
	if err != nil {
		return err
	}
	r, err := a.lookup(args[0])
	if err != nil {
		return err
	}
	r.RemoveField(c, args[2])
	fmt.Fprintln(a.out, a.tr.T(i18n.KeyRecordUpdated, map[string]any{"Name": r.Name()}))
	return nil
}

// cmdDelete removes a whole contact: delete NAME
func (a *app) cmdDelete(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if !a.book.RemoveRecord(args[0]) {
		fmt.Fprintln(a.out, a.tr.T(i18n.KeyRecordMissing, map[string]any{"Name": args[0]}))
		return fmt.Errorf("%w: %q", errRecordMissing, args[0])
	}
	fmt.Fprintln(a.out, a.tr.T(i18n.KeyRecordRemoved, map[string]any{"Name": args[0]}))
	return nil
}

func (a *app) cmdShow(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	r, err := a.lookup(args[0])
	if err != nil {
		return err
	}
	a.printRecord(r)
	return nil
}

func (a *app) cmdList(args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	if a.book.Len() == 0 {
		fmt.Fprintln(a.out, a.tr.T(i18n.KeyEmptyBook, nil))
		return nil
	}
	fmt.Fprintln(a.out, a.tr.T(i18n.KeyAllRecords, nil))
	for r := range a.book.All() {
		a.printRecord(r)
	}
	return nil
}

func (a *app) cmdSearch(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	a.printSearch(a.book, args[0])
	return nil
}

func (a *app) printSearch(b *book.AddressBook, query string) {
	found := b.Search(query)
	data := map[string]any{"Query": query}
	if len(found) == 0 {
		fmt.Fprintln(a.out, a.tr.T(i18n.KeyNoResults, data))
		return
	}
	fmt.Fprintln(a.out, a.tr.T(i18n.KeySearchResults, data))
	for _, r := range found {
		a.printRecord(r)
	}
}

// cmdBirthdays lists the birthdays within the configured window.
func (a *app) cmdBirthdays(args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	days := a.settings.UpcomingDays
	upcoming := a.book.Upcoming(a.clock.Now(), days)
	if len(upcoming) == 0 {
		fmt.Fprintln(a.out, a.tr.T(i18n.KeyNoUpcoming, map[string]any{"Days": days}))
		return nil
	}
	fmt.Fprintln(a.out, a.tr.T(i18n.KeyUpcoming, map[string]any{"Days": days}))
	for _, u := range upcoming {
		when := a.tr.T(i18n.KeyBirthdayToday, nil)
		if u.DaysLeft > 0 {
			when = a.tr.N(i18n.KeyDaysLeft, u.DaysLeft, nil)
		}
		fmt.Fprintf(a.out, "  %s  %s (%d), %s\n",
			u.Next.Format(config.DateFormatBirthday), u.Name, u.Age, when)
	}
	return nil
}

// cmdImport merges the contacts of a vCard file into the book.
func (a *app) cmdImport(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close() // Read-only, close error is irrelevant
	}()

	res, err := exchange.DecodeVCards(f)
	if err != nil {
		return err
	}
	for _, r := range res.Records {
		a.book.AddRecord(r)
	}
	fmt.Fprintln(a.out, a.tr.N(i18n.KeyImported, len(res.Records), map[string]any{"Skipped": res.Skipped}))
	return nil
}

// cmdExport writes the book in the format chosen by the file extension.
func (a *app) cmdExport(args []string) (err error) {
	if len(args) != 1 {
		return errUsage
	}
	path := args[0]

	var encode func(io.Writer) (int, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case config.ExtVCF, config.ExtVCard:
		encode = func(w io.Writer) (int, error) { return exchange.EncodeVCards(w, a.book.All()) }
	case config.ExtICS:
		cal := &exchange.Calendar{
			Clock:           a.clock,
			ReminderTrigger: a.settings.ReminderTrigger,
			FormatSummary: func(name string, age int) string {
				return a.tr.T(i18n.KeyEventSummary, map[string]any{"Name": name, "Age": age})
			},
		}
		encode = func(w io.Writer) (int, error) { return cal.Encode(w, a.book.All()) }
	case config.ExtXLSX:
		encode = func(w io.Writer) (int, error) { return exchange.EncodeSheet(w, a.book.All()) }
	default:
		return fmt.Errorf("%w: %q", errExportFormat, ext)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	n, err := encode(f)
	if err != nil {
		return err
	}
	slog.Info(config.MsgExported,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyFile, path,
		config.LogKeyCount, n,
	)
	fmt.Fprintln(a.out, a.tr.N(i18n.KeyExported, n, map[string]any{"File": path}))
	return nil
}

// cmdDemo stores two sample contacts, reloads the file into a fresh book and
// searches it.
func (a *app) cmdDemo(args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	samples := []struct {
		name, birthday, phone, email string
	}{
		{"Jan Kowalski", "1990-05-15", "123-456-7890", "jan.kowalski@gmail.com"},
		{"Zofia Nowak", "1985-08-22", "987-654-3210", "zofia.nowak@gmail.com"},
	}
	for _, s := range samples {
		r, err := book.NewRecord(s.name, s.birthday)
		if err != nil {
			return err
		}
		if err := r.AddField(book.Phones, s.phone); err != nil {
			return err
		}
		if err := r.AddField(book.Emails, s.email); err != nil {
			return err
		}
		a.book.AddRecord(r)
	}
	if err := a.book.Save(a.settings.BookPath); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.tr.T(i18n.KeyDemoSaved, map[string]any{"File": a.settings.BookPath}))

	loaded := book.New()
	if err := loaded.Load(a.settings.BookPath); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.tr.T(i18n.KeyAllRecords, nil))
	for r := range loaded.All() {
		a.printRecord(r)
	}
	a.printSearch(loaded, samples[0].name)
	return nil
}

func (a *app) printRecord(r *book.Record) {
	fmt.Fprintf(a.out, "%s: %s\n", a.tr.T(i18n.KeyLabelName, nil), r.Name())
	if phones := r.Phones(); len(phones) > 0 {
		fmt.Fprintf(a.out, "  %s: %s\n", a.tr.T(i18n.KeyLabelPhones, nil), strings.Join(phones, config.ListSeparator))
	}
	if emails := r.Emails(); len(emails) > 0 {
		fmt.Fprintf(a.out, "  %s: %s\n", a.tr.T(i18n.KeyLabelEmails, nil), strings.Join(emails, config.ListSeparator))
	}
	if bday, ok := r.Birthday(); ok {
		line := bday
		if days, err := r.DaysToBirthday(a.clock.Now()); err == nil {
			line += " " + a.tr.N(i18n.KeyNextBirthdayIn, days, nil)
		}
		fmt.Fprintf(a.out, "  %s: %s\n", a.tr.T(i18n.KeyLabelBirthday, nil), line)
	}
}
