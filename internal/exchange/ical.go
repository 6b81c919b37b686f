package exchange

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/addressbook/internal/book"
	"github.com/tartampluch/addressbook/internal/config"
)

// Calendar renders the birthdays of an address book as an iCalendar feed.
type Calendar struct {
	Clock book.Clock // nil means the system clock

	// ReminderTrigger is an ISO8601 duration (e.g. "-P1D"). Empty disables alarms.
	ReminderTrigger string

	// FormatSummary allows the caller to inject localized event titles.
	FormatSummary func(name string, age int) string
}

// Encode writes one all-day event per record and year (previous, current and
// next), skipping years before the person was born. It returns the number of
// events written.
func (c *Calendar) Encode(w io.Writer, records iter.Seq[*book.Record]) (int, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ProductID)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// Birthdays follow the local calendar date; only the stamp is UTC.
	clock := c.Clock
	if clock == nil {
		clock = book.RealClock{}
	}
	now := clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for r := range records {
		b, ok := r.Birthday()
		if !ok {
			continue
		}
		birthDate, err := time.Parse(config.DateFormatBirthday, b)
		if err != nil {
			continue
		}
		for _, e := range c.createEvents(r.Name(), birthDate, now) {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	// An empty VCALENDAR is rejected by the encoder; emit the minimal stub instead.
	if len(cal.Children) == 0 {
		if _, err := fmt.Fprintf(w, config.StubVCalendarFormat, config.ProductID); err != nil {
			return 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
		}
		return 0, nil
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgExported,
		config.LogKeyComponent, config.CompExchange,
		config.LogKeyFormat, config.ExtICS,
		config.LogKeyCount, len(cal.Children))
	return len(cal.Children), nil
}

func (c *Calendar) createEvents(name string, birthDate, now time.Time) []*ical.Event {
	currentYear := now.Year()
	uidBase := ContactUID(name)
	loc := now.Location()

	var events []*ical.Event
	for _, y := range []int{currentYear - 1, currentYear, currentYear + 1} {
		if y < birthDate.Year() {
			continue
		}
		age := y - birthDate.Year()

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))

		summary := fmt.Sprintf(config.FallbackAge, name, age)
		if c.FormatSummary != nil {
			summary = c.FormatSummary(name, age)
		}
		event.Props.SetText(config.PropSummary, summary)

		// time.Date normalizes Feb 29 to March 1st in non-leap years.
		eventDate := time.Date(y, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		if c.ReminderTrigger != "" {
			event.Children = append(event.Children, newAlarm(c.ReminderTrigger, summary))
		}
		events = append(events, event)
	}
	return events
}

// newAlarm builds a DISPLAY reminder firing at trigger, an ISO8601 duration
// relative to the event start. The trigger is a raw value: SetText would
// escape it and tag it VALUE=TEXT.
func newAlarm(trigger, description string) *ical.Component {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.Set(&ical.Prop{Name: config.PropTrigger, Params: ical.Params{}, Value: trigger})
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)
	return alarm
}
