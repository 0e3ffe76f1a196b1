// Package highlight holds the dated records (holidays, birthdays, personal
// events) that decorate calendar cells and feed the iCalendar export.
package highlight

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/tartampluch/go-ethiocal/internal/config"
	"github.com/tartampluch/go-ethiocal/internal/ethiopic"
)

// Highlight is one recurring (or one-off) dated record.
//
// Month and Day are read in Calendar: Ethiopic records use months 1..13,
// Gregorian records 1..12. Year pins the record to a single year of that
// calendar; zero means every year. Since is the year of origin (a birth
// year, a founding year) used for ages and to suppress occurrences before it.
type Highlight struct {
	ID          string   `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Name        string   `json:"name" yaml:"name" toml:"name"`
	AmharicName string   `json:"amharic_name,omitempty" yaml:"amharic_name,omitempty" toml:"amharic_name,omitempty"`
	Day         int      `json:"day" yaml:"day" toml:"day"`
	Month       int      `json:"month" yaml:"month" toml:"month"`
	Calendar    string   `json:"calendar,omitempty" yaml:"calendar,omitempty" toml:"calendar,omitempty"`
	Year        int      `json:"year,omitempty" yaml:"year,omitempty" toml:"year,omitempty"`
	Since       int      `json:"since,omitempty" yaml:"since,omitempty" toml:"since,omitempty"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
}

// Key returns the record ID, deriving a stable one when none was given.
func (h Highlight) Key() string {
	if h.ID != "" {
		return h.ID
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d|%d|%s", h.calendar(), h.Year, h.Month, h.Day, h.Name)))
	return fmt.Sprintf("%x", sum[:8])
}

// DisplayName picks the Amharic name for "am" when one is set.
func (h Highlight) DisplayName(lang string) string {
	if lang == ethiopic.LangAmharic && h.AmharicName != "" {
		return h.AmharicName
	}
	return h.Name
}

// IsGregorian reports whether Month/Day are Gregorian.
func (h Highlight) IsGregorian() bool {
	return h.calendar() == ethiopic.CalendarGregorian
}

func (h Highlight) calendar() string {
	if h.Calendar == "" {
		return ethiopic.CalendarEthiopic
	}
	return strings.ToLower(h.Calendar)
}

// validate checks the record against the engine's date factories. Recurring
// records are checked against a leap year so that Pagume 6 and 29 February
// are accepted.
func (h Highlight) validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return errors.New("name is required")
	}
	if h.Year < 0 || h.Since < 0 {
		return fmt.Errorf("negative year (year=%d, since=%d)", h.Year, h.Since)
	}
	if h.Year > 0 && h.Since > h.Year {
		return fmt.Errorf("since %d is after year %d", h.Since, h.Year)
	}

	switch h.calendar() {
	case ethiopic.CalendarEthiopic:
		year := h.Year
		if year == 0 {
			year = leapEthiopicYear
		}
		_, err := ethiopic.NewEthiopicDate(year, ethiopic.Month(h.Month), h.Day)
		return err
	case ethiopic.CalendarGregorian:
		year := h.Year
		if year == 0 {
			year = config.DefaultLeapYear
		}
		_, err := ethiopic.NewGregorianDate(year, h.Month, h.Day)
		return err
	default:
		return fmt.Errorf("%s: %q", config.ErrCalendarUnknown, h.Calendar)
	}
}

// leapEthiopicYear is any year with a six-day Pagume.
const leapEthiopicYear = 2015

// Occurrence is a highlight landing on a concrete Ethiopic day.
type Occurrence struct {
	Date      ethiopic.EthiopicDate
	Highlight Highlight
	// Age counts years since Highlight.Since, in the record's own calendar.
	Age      int
	AgeKnown bool
}

// Provider answers which highlights fall on a day or in a month.
type Provider interface {
	OnDay(d ethiopic.EthiopicDate) []Highlight
	InMonth(year int, month ethiopic.Month) (map[string][]Highlight, error)
}

// Merge concatenates record sets. Records sharing a Key are collapsed: the
// later one replaces the earlier in place.
func Merge(sets ...[]Highlight) []Highlight {
	var out []Highlight
	pos := make(map[string]int)
	for _, set := range sets {
		for _, h := range set {
			k := h.Key()
			if i, ok := pos[k]; ok {
				out[i] = h
				continue
			}
			pos[k] = len(out)
			out = append(out, h)
		}
	}
	return out
}
