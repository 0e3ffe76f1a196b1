package ethiopic_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-ethiocal/internal/ethiopic"
)

func TestIsLeapYear_Parity(t *testing.T) {
	for year := 1; year <= 2100; year++ {
		want := year%4 == 3
		assert.Equal(t, want, ethiopic.IsLeapYear(year), "year %d", year)

		pagume, err := ethiopic.DaysInMonth(year, ethiopic.Pagume)
		require.NoError(t, err)
		if want {
			assert.Equal(t, 6, pagume)
			assert.Equal(t, 366, ethiopic.DaysInYear(year))
		} else {
			assert.Equal(t, 5, pagume)
			assert.Equal(t, 365, ethiopic.DaysInYear(year))
		}
	}
}

// TestIsLeapYear_NoCenturyRule guards against "correcting" the rule to the
// Gregorian one: 1999 and 2099 are leap, 2000 is not.
func TestIsLeapYear_NoCenturyRule(t *testing.T) {
	assert.True(t, ethiopic.IsLeapYear(1999))
	assert.True(t, ethiopic.IsLeapYear(2099))
	assert.False(t, ethiopic.IsLeapYear(2000))
	assert.False(t, ethiopic.IsLeapYear(2100))
}

func TestDaysInMonth(t *testing.T) {
	for m := ethiopic.Meskerem; m < ethiopic.Pagume; m++ {
		dim, err := ethiopic.DaysInMonth(2017, m)
		require.NoError(t, err)
		assert.Equal(t, 30, dim, "month %s", m)
	}

	_, err := ethiopic.DaysInMonth(2017, 0)
	assert.ErrorIs(t, err, ethiopic.ErrInvalidDate)
	_, err = ethiopic.DaysInMonth(2017, 14)
	assert.ErrorIs(t, err, ethiopic.ErrInvalidDate)
	assert.True(t, ethiopic.IsInvalidDate(err))
}

func TestNewDate_YearBounds(t *testing.T) {
	_, err := ethiopic.NewEthiopicDate(ethiopic.MaxYear, ethiopic.Pagume, 1)
	require.NoError(t, err)

	for _, year := range []int{0, -1, ethiopic.MaxYear + 1, math.MaxInt} {
		_, err := ethiopic.NewEthiopicDate(year, ethiopic.Meskerem, 1)
		assert.ErrorIs(t, err, ethiopic.ErrInvalidDate, "ethiopic year %d", year)

		_, err = ethiopic.CalendarMatrix(year, ethiopic.Meskerem)
		assert.ErrorIs(t, err, ethiopic.ErrInvalidDate, "matrix year %d", year)
	}

	_, err = ethiopic.NewGregorianDate(math.MaxInt, 1, 1)
	var ie *ethiopic.InvalidDateError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, ethiopic.FieldYear, ie.Field)
}

func TestAddDays_BackwardPagumeWrap(t *testing.T) {
	got := ethiopic.MustEthiopicDate(2017, ethiopic.Meskerem, 1).AddDays(-1)

	dim, err := ethiopic.DaysInMonth(2016, ethiopic.Pagume)
	require.NoError(t, err)
	assert.Equal(t, ethiopic.MustEthiopicDate(2016, ethiopic.Pagume, dim), got)
	assert.Equal(t, 5, got.Day())

	got = ethiopic.MustEthiopicDate(2016, ethiopic.Meskerem, 1).AddDays(-1)
	assert.Equal(t, ethiopic.MustEthiopicDate(2015, ethiopic.Pagume, 6), got, "2015 is a leap year")
}

func TestAddDays_Symmetry(t *testing.T) {
	base := ethiopic.MustEthiopicDate(2017, ethiopic.Nehase, 28)
	for _, n := range []int{0, 1, 7, 30, 365, 1461, -1, -7, -30, -400} {
		assert.Equal(t, base, base.AddDays(n).AddDays(-n), "n=%d", n)
	}
	assert.Equal(t, ethiopic.MustEthiopicDate(2017, ethiopic.Pagume, 1), base.AddDays(3))
	assert.Equal(t, ethiopic.MustEthiopicDate(2018, ethiopic.Meskerem, 1), base.AddDays(8))
}

func TestGregorianAddDays(t *testing.T) {
	g := ethiopic.MustGregorianDate(2024, 2, 28)
	assert.Equal(t, ethiopic.MustGregorianDate(2024, 2, 29), g.AddDays(1))
	assert.Equal(t, ethiopic.MustGregorianDate(2024, 3, 1), g.AddDays(2))
	assert.Equal(t, ethiopic.MustGregorianDate(2023, 12, 31), ethiopic.MustGregorianDate(2024, 1, 1).AddDays(-1))
}

func TestPrevNextMonth(t *testing.T) {
	y, m := ethiopic.PrevMonth(2017, ethiopic.Meskerem)
	assert.Equal(t, 2016, y)
	assert.Equal(t, ethiopic.Pagume, m)

	y, m = ethiopic.NextMonth(2017, ethiopic.Pagume)
	assert.Equal(t, 2018, y)
	assert.Equal(t, ethiopic.Meskerem, m)

	y, m = ethiopic.NextMonth(2017, ethiopic.Tir)
	assert.Equal(t, 2017, y)
	assert.Equal(t, ethiopic.Yekatit, m)
}

func TestKey_FormatAndParse(t *testing.T) {
	d := ethiopic.MustEthiopicDate(2017, ethiopic.Meskerem, 1)
	assert.Equal(t, "2017-01-01", d.Key())
	assert.Equal(t, "2017-13-05", ethiopic.MustEthiopicDate(2017, ethiopic.Pagume, 5).Key())
	assert.Equal(t, "2017-10-21", ethiopic.MustEthiopicDate(2017, ethiopic.Sene, 21).Key())

	back, err := ethiopic.ParseKey("2017-13-05")
	require.NoError(t, err)
	assert.Equal(t, ethiopic.MustEthiopicDate(2017, ethiopic.Pagume, 5), back)

	_, err = ethiopic.ParseKey("2017-13-06")
	assert.ErrorIs(t, err, ethiopic.ErrInvalidDate)
	_, err = ethiopic.ParseKey("2017/01/01")
	assert.ErrorIs(t, err, ethiopic.ErrInvalidDate)
	_, err = ethiopic.ParseKey("2017-xx-01")
	assert.ErrorIs(t, err, ethiopic.ErrInvalidDate)
}

// TestKey_Unique checks the two-digit padding keeps keys collision-free
// across a whole leap cycle.
func TestKey_Unique(t *testing.T) {
	seen := make(map[string]bool)
	d := ethiopic.MustEthiopicDate(2015, ethiopic.Meskerem, 1)
	for i := 0; i < 1461; i++ {
		k := d.AddDays(i).Key()
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
}

func TestGregorianParseAndTime(t *testing.T) {
	g, err := ethiopic.ParseGregorian("2024-09-11")
	require.NoError(t, err)
	assert.Equal(t, "2024-09-11", g.String())
	assert.Equal(t, time.Date(2024, time.September, 11, 0, 0, 0, 0, time.UTC), g.Time())

	loc := time.FixedZone("EAT", 3*60*60)
	assert.Equal(t, g, ethiopic.GregorianFromTime(time.Date(2024, 9, 11, 23, 30, 0, 0, loc)))
}

func TestDate_JSON(t *testing.T) {
	d := ethiopic.MustEthiopicDate(2017, ethiopic.Pagume, 5)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"year":2017,"month":13,"day":5}`, string(b))

	var back ethiopic.EthiopicDate
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)

	err = json.Unmarshal([]byte(`{"year":2017,"month":13,"day":6}`), &back)
	assert.ErrorIs(t, err, ethiopic.ErrInvalidDate, "unmarshal goes through the checked factory")

	var g ethiopic.GregorianDate
	require.NoError(t, json.Unmarshal([]byte(`{"year":2024,"month":2,"day":29}`), &g))
	assert.Equal(t, ethiopic.MustGregorianDate(2024, 2, 29), g)
}

func TestMonth_String(t *testing.T) {
	assert.Equal(t, "Meskerem", ethiopic.Meskerem.String())
	assert.Equal(t, "Pagume", ethiopic.Pagume.String())
	assert.Equal(t, "%!Month(14)", ethiopic.Month(14).String())
}

func TestMustEthiopicDate_Panics(t *testing.T) {
	assert.Panics(t, func() { ethiopic.MustEthiopicDate(2017, ethiopic.Pagume, 6) })
	assert.True(t, ethiopic.EthiopicDate{}.IsZero())
}
