package highlight

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-ethiocal/internal/config"
	"github.com/tartampluch/go-ethiocal/internal/ethiopic"
)

// DecodeContacts turns the BDAY of every vCard in r into a birthday
// highlight. A birthday with a known year is converted to its Ethiopic day
// and recurs on it, with the Ethiopic birth year as Since. A year-less
// birthday (--MM-DD) can only recur on its Gregorian day.
//
// Malformed cards and unparsable dates are logged and skipped.
func DecodeContacts(r io.Reader) ([]Highlight, error) {
	decoder := vcard.NewDecoder(r)
	var out []Highlight
	processed := 0

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompHighlight,
				config.LogKeyError, err)
			// The decoder cannot resync after a syntax error.
			break
		}
		processed++

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birth, yearKnown, err := parseBirthday(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompHighlight,
				config.LogKeyValue, bday.Value)
			continue
		}

		h := Highlight{
			Name:     contactName(card),
			Category: config.CategoryBirthday,
		}
		if uid := card.Get(vcard.FieldUID); uid != nil {
			h.ID = uid.Value
		}

		if yearKnown {
			e := ethiopic.GregorianFromTime(birth).Ethiopic()
			if e.Year() < 1 {
				continue
			}
			h.Calendar = ethiopic.CalendarEthiopic
			h.Month, h.Day, h.Since = int(e.Month()), e.Day(), e.Year()
		} else {
			h.Calendar = ethiopic.CalendarGregorian
			h.Month, h.Day = int(birth.Month()), birth.Day()
		}
		out = append(out, h)
	}

	slog.Debug(config.MsgContactsRead,
		config.LogKeyComponent, config.CompHighlight,
		config.LogKeyTotal, processed,
		config.LogKeyHighlights, len(out))
	return out, nil
}

// contactName prefers FN (formatted) over N (structured).
func contactName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		return fn.Value
	}
	if n := card.Get(config.VCardN); n != nil && n.Value != "" {
		return n.Value
	}
	return config.FallbackName
}

// parseBirthday handles the vCard 3/4 date shapes. Year-less dates are placed
// in a leap year so that --02-29 parses.
func parseBirthday(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
