package ethiopic_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-ethiocal/internal/ethiopic"
)

// TestConversion_KnownDates pins the epoch against dates published on
// Ethiopian civil calendars. An off-by-one epoch would shift every row.
func TestConversion_KnownDates(t *testing.T) {
	tests := []struct {
		name      string
		eth       ethiopic.EthiopicDate
		gregorian ethiopic.GregorianDate
	}{
		{"Enkutatash after a leap year", ethiopic.MustEthiopicDate(2016, ethiopic.Meskerem, 1), ethiopic.MustGregorianDate(2023, 9, 12)},
		{"Enkutatash 2017", ethiopic.MustEthiopicDate(2017, ethiopic.Meskerem, 1), ethiopic.MustGregorianDate(2024, 9, 11)},
		{"Genna 2017", ethiopic.MustEthiopicDate(2017, ethiopic.Tahsas, 29), ethiopic.MustGregorianDate(2025, 1, 7)},
		{"Timket 2017", ethiopic.MustEthiopicDate(2017, ethiopic.Tir, 11), ethiopic.MustGregorianDate(2025, 1, 19)},
		{"Last day of common year", ethiopic.MustEthiopicDate(2017, ethiopic.Pagume, 5), ethiopic.MustGregorianDate(2025, 9, 10)},
		{"Leap day", ethiopic.MustEthiopicDate(2015, ethiopic.Pagume, 6), ethiopic.MustGregorianDate(2023, 9, 11)},
		{"Millennium", ethiopic.MustEthiopicDate(2000, ethiopic.Meskerem, 1), ethiopic.MustGregorianDate(2007, 9, 12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.gregorian, tt.eth.Gregorian())
			assert.Equal(t, tt.eth, tt.gregorian.Ethiopic())
			assert.Equal(t, tt.eth.JDN(), tt.gregorian.JDN(), "both calendars must share the day axis")
		})
	}
}

func TestGregorianToJDN_Anchors(t *testing.T) {
	j, err := ethiopic.GregorianToJDN(2000, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, ethiopic.JDN(2451545), j)

	j, err = ethiopic.GregorianToJDN(1970, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, ethiopic.JDN(2440588), j)

	assert.Equal(t, ethiopic.MustGregorianDate(1858, 11, 17), ethiopic.GregorianFromJDN(2400001))
}

func TestEthiopicToJDN_Epoch(t *testing.T) {
	j, err := ethiopic.EthiopicToJDN(1, ethiopic.Meskerem, 1)
	require.NoError(t, err)
	assert.Equal(t, ethiopic.EpochJDN, j)
	assert.Equal(t, ethiopic.MustEthiopicDate(1, ethiopic.Meskerem, 1), ethiopic.EthiopicFromJDN(ethiopic.EpochJDN))
}

func TestEthiopicToJDN_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month ethiopic.Month
		day   int
		field string
	}{
		{"month zero", 2017, 0, 1, ethiopic.FieldMonth},
		{"month fourteen", 2017, 14, 1, ethiopic.FieldMonth},
		{"day zero", 2017, ethiopic.Meskerem, 0, ethiopic.FieldDay},
		{"day thirty-one", 2017, ethiopic.Tir, 31, ethiopic.FieldDay},
		{"Pagume 6 in common year", 2017, ethiopic.Pagume, 6, ethiopic.FieldDay},
		{"year zero", 0, ethiopic.Meskerem, 1, ethiopic.FieldYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ethiopic.EthiopicToJDN(tt.year, tt.month, tt.day)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ethiopic.ErrInvalidDate))

			var ie *ethiopic.InvalidDateError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, ethiopic.CalendarEthiopic, ie.Calendar)
			assert.Equal(t, tt.field, ie.Field)
		})
	}
}

func TestGregorianToJDN_Invalid(t *testing.T) {
	_, err := ethiopic.GregorianToJDN(2024, 13, 1)
	assert.ErrorIs(t, err, ethiopic.ErrInvalidDate)

	_, err = ethiopic.GregorianToJDN(2023, 2, 29)
	assert.ErrorIs(t, err, ethiopic.ErrInvalidDate)

	_, err = ethiopic.GregorianToJDN(2024, 2, 29)
	assert.NoError(t, err)

	_, err = ethiopic.GregorianToJDN(1900, 2, 29)
	assert.ErrorIs(t, err, ethiopic.ErrInvalidDate, "1900 is not a Gregorian leap year")
}

// TestRoundTrip_Ethiopic walks every valid day of several four-year cycles.
func TestRoundTrip_Ethiopic(t *testing.T) {
	for year := 1; year <= 8; year++ {
		checkYearRoundTrip(t, year)
	}
	for year := 2010; year <= 2030; year++ {
		checkYearRoundTrip(t, year)
	}
}

func checkYearRoundTrip(t *testing.T, year int) {
	t.Helper()
	for m := ethiopic.Meskerem; m <= ethiopic.Pagume; m++ {
		dim, err := ethiopic.DaysInMonth(year, m)
		require.NoError(t, err)
		for d := 1; d <= dim; d++ {
			date := ethiopic.MustEthiopicDate(year, m, d)
			j := date.JDN()
			if !assert.Equal(t, date, ethiopic.EthiopicFromJDN(j), "round trip %s", date) {
				return
			}
			g := ethiopic.ToGregorian(date)
			if !assert.Equal(t, date, ethiopic.ToEthiopic(g), "cross-calendar %s", date) {
				return
			}
		}
	}
}

func TestRoundTrip_GregorianDays(t *testing.T) {
	start := ethiopic.MustGregorianDate(1899, 12, 25).JDN()
	for j := start; j < start+3*146097/100; j++ {
		g := ethiopic.GregorianFromJDN(j)
		back, err := ethiopic.GregorianToJDN(g.Year(), g.Month(), g.Day())
		require.NoError(t, err, "decoded %s must be valid", g)
		require.Equal(t, j, back)
	}
}

func TestConsecutiveJDNs_AreConsecutiveDates(t *testing.T) {
	prev := ethiopic.EthiopicFromJDN(ethiopic.MustEthiopicDate(2014, ethiopic.Nehase, 25).JDN())
	for i := 1; i < 800; i++ {
		next := prev.AddDays(1)
		assert.Equal(t, prev.JDN()+1, next.JDN())
		assert.True(t, prev.Before(next))
		prev = next
	}
}

func TestEthiopicFromJDN_BeforeEpochIsProleptic(t *testing.T) {
	d := ethiopic.EthiopicFromJDN(ethiopic.EpochJDN - 1)
	assert.Equal(t, 0, d.Year())
	assert.Equal(t, ethiopic.Pagume, d.Month())
	assert.Equal(t, 5, d.Day())

	assert.NotPanics(t, func() { ethiopic.EthiopicFromJDN(0) })
}

func TestWeekday(t *testing.T) {
	// 1 Jan 2000 was a Saturday.
	j := ethiopic.MustGregorianDate(2000, 1, 1).JDN()
	assert.Equal(t, 6, j.Weekday())
	assert.Equal(t, 5, j.MondayIndex())

	// 11 Sep 2024 was a Wednesday.
	j = ethiopic.MustEthiopicDate(2017, ethiopic.Meskerem, 1).JDN()
	assert.Equal(t, 3, j.Weekday())
	assert.Equal(t, 2, j.MondayIndex())

	for i := 0; i < 14; i++ {
		jj := j + ethiopic.JDN(i)
		assert.Equal(t, (jj.Weekday()+6)%7, jj.MondayIndex())
		assert.Equal(t, int(ethiopic.GregorianFromJDN(jj).Time().Weekday()), jj.Weekday())
	}
}
