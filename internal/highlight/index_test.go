package highlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-ethiocal/internal/ethiopic"
	"github.com/tartampluch/go-ethiocal/internal/highlight"
)

func names(hs []highlight.Highlight) []string {
	out := make([]string, 0, len(hs))
	for _, h := range hs {
		out = append(out, h.Name)
	}
	return out
}

func mustIndex(t *testing.T, records ...highlight.Highlight) *highlight.Index {
	t.Helper()
	idx, err := highlight.NewIndex(records)
	require.NoError(t, err)
	return idx
}

func TestIndex_OnDay_EthiopicThenGregorian(t *testing.T) {
	idx := mustIndex(t,
		highlight.Highlight{Name: "Labour Day", Calendar: "gregorian", Month: 5, Day: 1},
		highlight.Highlight{Name: "Local Feast", Month: int(ethiopic.Miyazya), Day: 23},
	)

	// 1 May 2025 is Miyazya 23, 2017.
	got := idx.OnDay(ethiopic.MustEthiopicDate(2017, ethiopic.Miyazya, 23))
	assert.Equal(t, []string{"Local Feast", "Labour Day"}, names(got))

	assert.Empty(t, idx.OnDay(ethiopic.MustEthiopicDate(2017, ethiopic.Miyazya, 24)))
	assert.Empty(t, idx.OnDay(ethiopic.EthiopicDate{}))
}

func TestIndex_OnDay_PagumeSixFallsBack(t *testing.T) {
	idx := mustIndex(t, highlight.Highlight{Name: "Leap Day Birthday", Month: 13, Day: 6})

	// 2015 is a leap year: the record keeps its own day.
	assert.Len(t, idx.OnDay(ethiopic.MustEthiopicDate(2015, ethiopic.Pagume, 6)), 1)
	assert.Empty(t, idx.OnDay(ethiopic.MustEthiopicDate(2015, ethiopic.Pagume, 5)))

	// 2017 is common: it moves to Pagume 5.
	assert.Len(t, idx.OnDay(ethiopic.MustEthiopicDate(2017, ethiopic.Pagume, 5)), 1)
}

func TestIndex_OnDay_FebruaryTwentyNinthFallsBack(t *testing.T) {
	idx := mustIndex(t, highlight.Highlight{Name: "Leapling", Calendar: "gregorian", Month: 2, Day: 29})

	// 28 Feb 2025 (common year) is Yekatit 21, 2017.
	assert.Len(t, idx.OnDay(ethiopic.MustEthiopicDate(2017, ethiopic.Yekatit, 21)), 1)

	// In 2024 the record stays on 29 Feb (Yekatit 21, 2016) and not on the 28th.
	assert.Len(t, idx.OnDay(ethiopic.MustEthiopicDate(2016, ethiopic.Yekatit, 21)), 1)
	assert.Empty(t, idx.OnDay(ethiopic.MustEthiopicDate(2016, ethiopic.Yekatit, 20)))
}

func TestIndex_YearAndSinceFilters(t *testing.T) {
	idx := mustIndex(t,
		highlight.Highlight{Name: "One-off", Month: 1, Day: 5, Year: 2017},
		highlight.Highlight{Name: "Founded", Month: 1, Day: 5, Since: 2017},
	)

	assert.Equal(t, []string{"One-off", "Founded"}, names(idx.OnDay(ethiopic.MustEthiopicDate(2017, ethiopic.Meskerem, 5))))
	assert.Empty(t, idx.OnDay(ethiopic.MustEthiopicDate(2016, ethiopic.Meskerem, 5)))
	assert.Equal(t, []string{"Founded"}, names(idx.OnDay(ethiopic.MustEthiopicDate(2018, ethiopic.Meskerem, 5))))
}

func TestNewIndex_InvalidRecords(t *testing.T) {
	idx, err := highlight.NewIndex([]highlight.Highlight{
		{Name: "ok", Month: 1, Day: 1},
		{Name: "bad month", Month: 14, Day: 1},
		{Name: "bad day", Month: 2, Day: 31},
		{Name: "pinned leap day in common year", Month: 13, Day: 6, Year: 2017},
		{Name: "bad feb", Calendar: "gregorian", Month: 2, Day: 30},
		{Name: "", Month: 1, Day: 2},
		{Name: "hebrew", Calendar: "hebrew", Month: 1, Day: 1},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ethiopic.ErrInvalidDate)
	assert.Contains(t, err.Error(), "bad month")
	assert.Contains(t, err.Error(), "hebrew")
	require.NotNil(t, idx)
	assert.Equal(t, 1, idx.Len(), "valid records are kept")
}

func TestNewIndex_DerivesIDs(t *testing.T) {
	idx := mustIndex(t,
		highlight.Highlight{Name: "A", Month: 1, Day: 1},
		highlight.Highlight{ID: "fixed", Name: "B", Month: 1, Day: 2},
	)
	all := idx.All()
	require.Len(t, all, 2)
	assert.NotEmpty(t, all[0].ID)
	assert.Equal(t, all[0].ID, highlight.Highlight{Name: "A", Month: 1, Day: 1}.Key())
	assert.Equal(t, "fixed", all[1].ID)
	assert.Equal(t, "ethiopic", all[0].Calendar)
}

func TestIndex_InMonth(t *testing.T) {
	idx := mustIndex(t,
		highlight.Highlight{Name: "Enkutatash", Month: 1, Day: 1},
		highlight.Highlight{Name: "Meskel", Month: 1, Day: 17},
		highlight.Highlight{Name: "Genna", Month: 4, Day: 29},
	)

	m, err := idx.InMonth(2017, ethiopic.Meskerem)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, []string{"Enkutatash"}, names(m["2017-01-01"]))
	assert.Equal(t, []string{"Meskel"}, names(m["2017-01-17"]))

	_, err = idx.InMonth(2017, 14)
	assert.ErrorIs(t, err, ethiopic.ErrInvalidDate)
}

func TestIndex_Occurrences_Defaults(t *testing.T) {
	defaults, err := highlight.Defaults()
	require.NoError(t, err)
	idx := mustIndex(t, defaults...)

	occ, err := idx.Occurrences(2017)
	require.NoError(t, err)
	require.Len(t, occ, len(defaults))

	keys := make([]string, 0, len(occ))
	for i, o := range occ {
		keys = append(keys, o.Date.Key())
		if i > 0 {
			assert.False(t, o.Date.Before(occ[i-1].Date), "occurrences are ordered")
		}
		assert.False(t, o.AgeKnown)
	}
	assert.Equal(t, []string{
		"2017-01-01", "2017-01-17", "2017-04-29", "2017-05-11",
		"2017-06-23", "2017-08-23", "2017-08-27", "2017-09-20",
	}, keys)

	// Genna 2017 is 7 January 2025.
	assert.Equal(t, ethiopic.MustGregorianDate(2025, 1, 7), occ[2].Date.Gregorian())

	_, err = idx.Occurrences(0)
	assert.ErrorIs(t, err, ethiopic.ErrInvalidDate)
}

func TestDefaults_GennaFollowsSeventhOfJanuary(t *testing.T) {
	defaults, err := highlight.Defaults()
	require.NoError(t, err)
	idx := mustIndex(t, defaults...)

	// 2016 follows the leap year 2015, so 7 January 2024 is Tahsas 28.
	assert.Contains(t, names(idx.OnDay(ethiopic.MustEthiopicDate(2016, ethiopic.Tahsas, 28))), "Genna (Christmas)")
	assert.NotContains(t, names(idx.OnDay(ethiopic.MustEthiopicDate(2016, ethiopic.Tahsas, 29))), "Genna (Christmas)")

	// 7 January 2025 is Tahsas 29, 2017.
	assert.Contains(t, names(idx.OnDay(ethiopic.MustEthiopicDate(2017, ethiopic.Tahsas, 29))), "Genna (Christmas)")
	assert.NotContains(t, names(idx.OnDay(ethiopic.MustEthiopicDate(2017, ethiopic.Tahsas, 28))), "Genna (Christmas)")

	occ, err := idx.Occurrences(2016)
	require.NoError(t, err)
	var genna []ethiopic.EthiopicDate
	for _, o := range occ {
		if o.Highlight.ID == "genna" {
			genna = append(genna, o.Date)
		}
	}
	require.Len(t, genna, 1, "once per Ethiopic year")
	assert.Equal(t, ethiopic.MustGregorianDate(2024, 1, 7), genna[0].Gregorian())
}

func TestIndex_Occurrences_Age(t *testing.T) {
	idx := mustIndex(t,
		highlight.Highlight{Name: "Abebe", Month: 7, Day: 6, Since: 1982, Category: "birthday"},
		highlight.Highlight{Name: "Sara", Calendar: "gregorian", Month: 5, Day: 1, Since: 2000},
	)

	occ, err := idx.Occurrences(2017)
	require.NoError(t, err)
	require.Len(t, occ, 2)

	assert.Equal(t, "Abebe", occ[0].Highlight.Name)
	assert.True(t, occ[0].AgeKnown)
	assert.Equal(t, 35, occ[0].Age)

	// Gregorian records age in Gregorian years: 1 May 2025.
	assert.Equal(t, "Sara", occ[1].Highlight.Name)
	assert.Equal(t, 25, occ[1].Age)
}

func TestNilIndex(t *testing.T) {
	var idx *highlight.Index
	assert.Zero(t, idx.Len())
	assert.Nil(t, idx.All())
	assert.Nil(t, idx.OnDay(ethiopic.MustEthiopicDate(2017, 1, 1)))
}

func TestMerge_LaterWins(t *testing.T) {
	base := []highlight.Highlight{
		{ID: "meskel", Name: "Meskel", Month: 1, Day: 17},
		{ID: "genna", Name: "Genna", Month: 4, Day: 29},
	}
	user := []highlight.Highlight{
		{ID: "meskel", Name: "Meskel (family)", Month: 1, Day: 17},
		{Name: "Wedding", Month: 3, Day: 3},
	}

	got := highlight.Merge(base, user)
	assert.Equal(t, []string{"Meskel (family)", "Genna", "Wedding"}, names(got))
}

func TestHighlight_DisplayName(t *testing.T) {
	h := highlight.Highlight{Name: "Meskel", AmharicName: "መስቀል"}
	assert.Equal(t, "መስቀል", h.DisplayName(ethiopic.LangAmharic))
	assert.Equal(t, "Meskel", h.DisplayName(ethiopic.LangEnglish))
	assert.Equal(t, "X", highlight.Highlight{Name: "X"}.DisplayName(ethiopic.LangAmharic))
}
