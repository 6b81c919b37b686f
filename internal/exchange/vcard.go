package exchange

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/addressbook/internal/book"
	"github.com/tartampluch/addressbook/internal/config"
)

// ImportResult summarizes a vCard import.
type ImportResult struct {
	Records []*book.Record
	Skipped int // cards without a usable name
}

// EncodeVCards writes every record as a vCard 4.0 entry.
func EncodeVCards(w io.Writer, records iter.Seq[*book.Record]) (int, error) {
	enc := vcard.NewEncoder(w)
	count := 0
	for r := range records {
		if err := enc.Encode(toCard(r)); err != nil {
			return count, fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
		count++
	}
	slog.Info(config.MsgExported,
		config.LogKeyComponent, config.CompExchange,
		config.LogKeyFormat, config.ExtVCF,
		config.LogKeyCount, count)
	return count, nil
}

func toCard(r *book.Record) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, config.VCardVersion)
	card.SetValue(vcard.FieldProductID, config.ProductID)
	card.SetValue(vcard.FieldUID, "urn:uuid:"+ContactUID(r.Name()))
	card.SetValue(vcard.FieldFormattedName, r.Name())
	for _, p := range r.Phones() {
		card.AddValue(vcard.FieldTelephone, p)
	}
	for _, e := range r.Emails() {
		card.AddValue(vcard.FieldEmail, e)
	}
	if b, ok := r.Birthday(); ok {
		card.SetValue(vcard.FieldBirthday, b)
	}
	return card
}

// DecodeVCards reads a vCard stream into records. Malformed cards and cards
// without a name are skipped; invalid phone or birthday values are dropped
// from the record that carries them.
func DecodeVCards(r io.Reader) (*ImportResult, error) {
	dec := vcard.NewDecoder(r)
	result := &ImportResult{}

	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if len(result.Records) == 0 && result.Skipped == 0 {
				// Nothing readable at all: the stream is not vCard.
				return nil, fmt.Errorf("%s: %w", config.ErrVCardDecode, err)
			}
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompExchange,
				config.LogKeyError, err)
			result.Skipped++
			// The decoder cannot resynchronize after a syntax error.
			break
		}

		rec, ok := fromCard(card)
		if !ok {
			result.Skipped++
			continue
		}
		result.Records = append(result.Records, rec)
	}

	slog.Info(config.MsgImported,
		config.LogKeyComponent, config.CompExchange,
		config.LogKeyCount, len(result.Records),
		config.LogKeySkipped, result.Skipped)
	return result, nil
}

func fromCard(card vcard.Card) (*book.Record, bool) {
	name := cardName(card)
	rec, err := book.NewRecord(name, "")
	if err != nil {
		slog.Warn(config.MsgSkippedCard,
			config.LogKeyComponent, config.CompExchange,
			config.LogKeyError, err)
		return nil, false
	}

	for _, p := range card.Values(vcard.FieldTelephone) {
		addOrSkip(rec, book.Phones, strings.TrimPrefix(p, "tel:"))
	}
	for _, e := range card.Values(vcard.FieldEmail) {
		addOrSkip(rec, book.Emails, e)
	}
	if bday := card.Value(vcard.FieldBirthday); bday != "" {
		date, err := parseBirthday(bday)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompExchange,
				config.LogKeyName, name,
				config.LogKeyValue, bday,
				config.LogKeyError, err)
		} else {
			addOrSkip(rec, book.Birthday, date)
		}
	}
	return rec, true
}

// cardName prefers FN (Formatted) over N (Structured).
func cardName(card vcard.Card) string {
	if fn := strings.TrimSpace(card.Value(vcard.FieldFormattedName)); fn != "" {
		return fn
	}
	if n := card.Name(); n != nil {
		return strings.Join(strings.Fields(n.GivenName+" "+n.AdditionalName+" "+n.FamilyName), " ")
	}
	return ""
}

func addOrSkip(rec *book.Record, c book.Category, value string) {
	if err := rec.AddField(c, value); err != nil {
		slog.Debug(config.MsgSkippedField,
			config.LogKeyComponent, config.CompExchange,
			config.LogKeyName, rec.Name(),
			config.LogKeyCategory, string(c),
			config.LogKeyError, err)
	}
}

// errNoYear marks a month-day BDAY (--MMDD): a stored birthday needs a year.
var errNoYear = errors.New(config.ErrBirthdayNoYear)

// birthdayLayouts lists the BDAY forms carrying a full date, most common first.
var birthdayLayouts = []string{
	config.DateFormatBirthday,
	config.DateFormatFullBasic,
	config.DateFormatRFC3339,
	config.DateFormatFullT,
}

// parseBirthday normalizes a vCard BDAY value to the YYYY-MM-DD form of a
// stored birthday.
func parseBirthday(value string) (string, error) {
	value = strings.TrimSpace(value)
	for _, layout := range birthdayLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(config.DateFormatBirthday), nil
		}
	}
	for _, layout := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if _, err := time.Parse(layout, value); err == nil {
			return "", errNoYear
		}
	}
	return "", fmt.Errorf("%s: %q", config.ErrDateParse, value)
}
