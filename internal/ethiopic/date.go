// Package ethiopic converts dates between the Ethiopic (Ge'ez) and Gregorian
// calendars, builds month/week display grids and encodes Ge'ez numerals.
//
// Every conversion goes through a Julian Day Number so the two calendars share
// one absolute day axis. All functions are pure and safe for concurrent use.
package ethiopic

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Month is an Ethiopic month, Meskerem (1) through Pagume (13).
type Month int

const (
	Meskerem Month = iota + 1
	Tikimt
	Hidar
	Tahsas
	Tir
	Yekatit
	Megabit
	Miyazya
	Ginbot
	Sene
	Hamle
	Nehase
	Pagume
)

// MonthsPerYear is the number of Ethiopic months, Pagume included.
const MonthsPerYear = 13

// MaxYear bounds the year of both calendars so day counts stay well inside
// int, even on 32-bit platforms.
const MaxYear = 1_000_000

// Valid reports whether m is within [Meskerem, Pagume].
func (m Month) Valid() bool {
	return m >= Meskerem && m <= Pagume
}

// String returns the English transliteration of the month name.
func (m Month) String() string {
	if !m.Valid() {
		return "%!Month(" + strconv.Itoa(int(m)) + ")"
	}
	return monthNames[m-1].English
}

// EthiopicDate is a validated Ethiopic calendar date. The zero value is not a
// valid date; build one with NewEthiopicDate or derive it from a JDN.
type EthiopicDate struct {
	year  int
	month Month
	day   int
}

// NewEthiopicDate validates and returns an Ethiopic date.
func NewEthiopicDate(year int, month Month, day int) (EthiopicDate, error) {
	if year < 1 || year > MaxYear {
		return EthiopicDate{}, invalid(CalendarEthiopic, FieldYear, year)
	}
	dim, err := DaysInMonth(year, month)
	if err != nil {
		return EthiopicDate{}, err
	}
	if day < 1 || day > dim {
		return EthiopicDate{}, invalid(CalendarEthiopic, FieldDay, day)
	}
	return EthiopicDate{year: year, month: month, day: day}, nil
}

// MustEthiopicDate is like NewEthiopicDate but panics on invalid input.
// Intended for constants and tests.
func MustEthiopicDate(year int, month Month, day int) EthiopicDate {
	d, err := NewEthiopicDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

func (d EthiopicDate) Year() int    { return d.year }
func (d EthiopicDate) Month() Month { return d.month }
func (d EthiopicDate) Day() int     { return d.day }

// IsZero reports whether d is the zero value.
func (d EthiopicDate) IsZero() bool {
	return d == EthiopicDate{}
}

// JDN returns the Julian Day Number of d.
func (d EthiopicDate) JDN() JDN {
	return ethiopicJDN(d.year, d.month, d.day)
}

// Gregorian converts d through its JDN.
func (d EthiopicDate) Gregorian() GregorianDate {
	return GregorianFromJDN(d.JDN())
}

// AddDays returns d shifted by n days; n may be negative.
func (d EthiopicDate) AddDays(n int) EthiopicDate {
	return EthiopicFromJDN(d.JDN() + JDN(n))
}

// Equal reports whether d and o are the same calendar day.
func (d EthiopicDate) Equal(o EthiopicDate) bool {
	return d == o
}

// Before reports whether d falls strictly before o.
func (d EthiopicDate) Before(o EthiopicDate) bool {
	return d.JDN() < o.JDN()
}

// SameMonth reports whether d falls in the given year and month.
func (d EthiopicDate) SameMonth(year int, month Month) bool {
	return d.year == year && d.month == month
}

// Key returns the highlight join key "{year}-{MM}-{DD}".
func (d EthiopicDate) Key() string {
	return fmt.Sprintf("%d-%02d-%02d", d.year, int(d.month), d.day)
}

// String returns the join key form, which also parses back with ParseKey.
func (d EthiopicDate) String() string {
	return d.Key()
}

// ParseKey parses a "{year}-{MM}-{DD}" Ethiopic key.
func ParseKey(s string) (EthiopicDate, error) {
	y, m, d, err := splitKey(s)
	if err != nil {
		return EthiopicDate{}, err
	}
	return NewEthiopicDate(y, Month(m), d)
}

// GregorianDate is a validated proleptic Gregorian calendar date.
type GregorianDate struct {
	year  int
	month int
	day   int
}

// NewGregorianDate validates and returns a Gregorian date.
func NewGregorianDate(year, month, day int) (GregorianDate, error) {
	if year < -MaxYear || year > MaxYear {
		return GregorianDate{}, invalid(CalendarGregorian, FieldYear, year)
	}
	if month < 1 || month > 12 {
		return GregorianDate{}, invalid(CalendarGregorian, FieldMonth, month)
	}
	if day < 1 || day > gregorianDaysInMonth(year, month) {
		return GregorianDate{}, invalid(CalendarGregorian, FieldDay, day)
	}
	return GregorianDate{year: year, month: month, day: day}, nil
}

// MustGregorianDate is like NewGregorianDate but panics on invalid input.
func MustGregorianDate(year, month, day int) GregorianDate {
	g, err := NewGregorianDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return g
}

// GregorianFromTime takes the calendar date of t in its own location.
func GregorianFromTime(t time.Time) GregorianDate {
	y, m, d := t.Date()
	return GregorianDate{year: y, month: int(m), day: d}
}

func (g GregorianDate) Year() int  { return g.year }
func (g GregorianDate) Month() int { return g.month }
func (g GregorianDate) Day() int   { return g.day }

// IsZero reports whether g is the zero value.
func (g GregorianDate) IsZero() bool {
	return g == GregorianDate{}
}

// JDN returns the Julian Day Number of g.
func (g GregorianDate) JDN() JDN {
	return gregorianJDN(g.year, g.month, g.day)
}

// Ethiopic converts g through its JDN.
func (g GregorianDate) Ethiopic() EthiopicDate {
	return EthiopicFromJDN(g.JDN())
}

// AddDays returns g shifted by n days; n may be negative.
func (g GregorianDate) AddDays(n int) GregorianDate {
	return GregorianFromJDN(g.JDN() + JDN(n))
}

// Time returns midnight UTC of g.
func (g GregorianDate) Time() time.Time {
	return time.Date(g.year, time.Month(g.month), g.day, 0, 0, 0, 0, time.UTC)
}

// String returns the ISO form YYYY-MM-DD.
func (g GregorianDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", g.year, g.month, g.day)
}

// ParseGregorian parses an ISO YYYY-MM-DD date.
func ParseGregorian(s string) (GregorianDate, error) {
	y, m, d, err := splitKey(s)
	if err != nil {
		return GregorianDate{}, err
	}
	return NewGregorianDate(y, m, d)
}

func splitKey(s string) (int, int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: malformed %q, want YEAR-MM-DD", ErrInvalidDate, s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: malformed %q: %v", ErrInvalidDate, s, err)
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}

type dateJSON struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (d EthiopicDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateJSON{Year: d.year, Month: int(d.month), Day: d.day})
}

func (d *EthiopicDate) UnmarshalJSON(b []byte) error {
	var raw dateJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	v, err := NewEthiopicDate(raw.Year, Month(raw.Month), raw.Day)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (g GregorianDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateJSON{Year: g.year, Month: g.month, Day: g.day})
}

func (g *GregorianDate) UnmarshalJSON(b []byte) error {
	var raw dateJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	v, err := NewGregorianDate(raw.Year, raw.Month, raw.Day)
	if err != nil {
		return err
	}
	*g = v
	return nil
}
