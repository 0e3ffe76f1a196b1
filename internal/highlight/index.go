package highlight

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-ethiocal/internal/config"
	"github.com/tartampluch/go-ethiocal/internal/ethiopic"
)

type monthDay struct{ month, day int }

// Index is a read-only lookup of highlights by day. It is safe for
// concurrent use once built.
type Index struct {
	all       []Highlight
	ethiopic  map[monthDay][]Highlight
	gregorian map[monthDay][]Highlight
}

var _ Provider = (*Index)(nil)

// NewIndex validates and indexes the records. Invalid records are left out
// and reported together in the returned error; the index always holds the
// valid remainder.
func NewIndex(records []Highlight) (*Index, error) {
	idx := &Index{
		ethiopic:  make(map[monthDay][]Highlight),
		gregorian: make(map[monthDay][]Highlight),
	}

	var errs []error
	for i, h := range records {
		if err := h.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s #%d %q: %w", config.ErrHighlightInvalid, i+1, h.Name, err))
			continue
		}
		if h.ID == "" {
			h.ID = h.Key()
		}
		h.Calendar = h.calendar()

		md := monthDay{h.Month, h.Day}
		if h.IsGregorian() {
			idx.gregorian[md] = append(idx.gregorian[md], h)
		} else {
			idx.ethiopic[md] = append(idx.ethiopic[md], h)
		}
		idx.all = append(idx.all, h)
	}
	return idx, errors.Join(errs...)
}

// Len returns the number of indexed records.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.all)
}

// All returns a copy of the indexed records in input order.
func (x *Index) All() []Highlight {
	if x == nil {
		return nil
	}
	return append([]Highlight(nil), x.all...)
}

// OnDay returns the highlights falling on d: Ethiopic records first, then
// Gregorian records matched on d's Gregorian projection.
//
// Pagume 6 records fall back to Pagume 5 in common years, and 29 February
// records to 28 February in common Gregorian years.
func (x *Index) OnDay(d ethiopic.EthiopicDate) []Highlight {
	if x == nil || d.IsZero() {
		return nil
	}

	var out []Highlight

	year := d.Year()
	out = appendActive(out, x.ethiopic[monthDay{int(d.Month()), d.Day()}], year)
	if d.Month() == ethiopic.Pagume && d.Day() == 5 && !ethiopic.IsLeapYear(year) {
		out = appendActive(out, x.ethiopic[monthDay{int(ethiopic.Pagume), 6}], year)
	}

	g := d.Gregorian()
	out = appendActive(out, x.gregorian[monthDay{g.Month(), g.Day()}], g.Year())
	if g.Month() == 2 && g.Day() == 28 && !ethiopic.IsGregorianLeapYear(g.Year()) {
		out = appendActive(out, x.gregorian[monthDay{2, 29}], g.Year())
	}
	return out
}

// appendActive keeps the records that apply in year (of their own calendar).
func appendActive(dst, src []Highlight, year int) []Highlight {
	for _, h := range src {
		if h.Year != 0 && h.Year != year {
			continue
		}
		if h.Since != 0 && year < h.Since {
			continue
		}
		dst = append(dst, h)
	}
	return dst
}

// InMonth maps each day of the month that has highlights, keyed by
// EthiopicDate.Key, to those highlights.
func (x *Index) InMonth(year int, month ethiopic.Month) (map[string][]Highlight, error) {
	dim, err := ethiopic.DaysInMonth(year, month)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]Highlight)
	for day := 1; day <= dim; day++ {
		d, err := ethiopic.NewEthiopicDate(year, month, day)
		if err != nil {
			return nil, err
		}
		if hs := x.OnDay(d); len(hs) > 0 {
			out[d.Key()] = hs
		}
	}
	return out, nil
}

// Occurrences lists every highlight occurrence in an Ethiopic year, ordered
// by date then by OnDay order.
func (x *Index) Occurrences(year int) ([]Occurrence, error) {
	first, err := ethiopic.NewEthiopicDate(year, ethiopic.Meskerem, 1)
	if err != nil {
		return nil, err
	}

	var out []Occurrence
	for i := 0; i < ethiopic.DaysInYear(year); i++ {
		d := first.AddDays(i)
		for _, h := range x.OnDay(d) {
			out = append(out, newOccurrence(d, h))
		}
	}
	return out, nil
}

func newOccurrence(d ethiopic.EthiopicDate, h Highlight) Occurrence {
	occ := Occurrence{Date: d, Highlight: h}
	if h.Since == 0 {
		return occ
	}
	year := d.Year()
	if h.IsGregorian() {
		year = d.Gregorian().Year()
	}
	occ.Age = year - h.Since
	occ.AgeKnown = true
	return occ
}
