package ethiopic

import (
	"fmt"
	"time"
)

// Display languages understood by Formatter.
const (
	LangEnglish = "en"
	LangAmharic = "am"
)

// RangeSeparator joins the two ends of a week range.
const RangeSeparator = " – "

type localName struct {
	English string
	Amharic string
}

func (n localName) in(lang string) string {
	if lang == LangAmharic {
		return n.Amharic
	}
	return n.English
}

var monthNames = [MonthsPerYear]localName{
	{"Meskerem", "መስከረም"},
	{"Tikimt", "ጥቅምት"},
	{"Hidar", "ኅዳር"},
	{"Tahsas", "ታኅሣሥ"},
	{"Tir", "ጥር"},
	{"Yekatit", "የካቲት"},
	{"Megabit", "መጋቢት"},
	{"Miyazya", "ሚያዝያ"},
	{"Ginbot", "ግንቦት"},
	{"Sene", "ሰኔ"},
	{"Hamle", "ሐምሌ"},
	{"Nehase", "ነሐሴ"},
	{"Pagume", "ጳጉሜን"},
}

// Monday first, matching the grid columns.
var weekdayNames = [DaysPerWeek]localName{
	{"Monday", "ሰኞ"},
	{"Tuesday", "ማክሰኞ"},
	{"Wednesday", "ረቡዕ"},
	{"Thursday", "ሐሙስ"},
	{"Friday", "ዓርብ"},
	{"Saturday", "ቅዳሜ"},
	{"Sunday", "እሑድ"},
}

// MonthName returns the month name in lang, falling back to English.
func MonthName(m Month, lang string) string {
	if !m.Valid() {
		return ""
	}
	return monthNames[m-1].in(lang)
}

// WeekdayName returns the name of a Monday-first column index.
func WeekdayName(mondayIndex int, lang string) string {
	if mondayIndex < 0 || mondayIndex >= DaysPerWeek {
		return ""
	}
	return weekdayNames[mondayIndex].in(lang)
}

// Formatter renders dates for display.
type Formatter struct {
	Lang       string
	GeezDigits bool
}

func (f Formatter) num(n int) string {
	return Digits(n, f.GeezDigits)
}

// Date renders "Month D, Y".
func (f Formatter) Date(d EthiopicDate) string {
	return fmt.Sprintf("%s %s, %s", MonthName(d.Month(), f.Lang), f.num(d.Day()), f.num(d.Year()))
}

// MonthTitle renders "Month Y" for grid headers.
func (f Formatter) MonthTitle(year int, month Month) string {
	return fmt.Sprintf("%s %s", MonthName(month, f.Lang), f.num(year))
}

// WeekRange renders the span of a week in one of three shapes depending on
// whether the ends share a month, only a year, or nothing.
func (f Formatter) WeekRange(cells []CalendarCell) string {
	if len(cells) == 0 {
		return ""
	}
	start, end := cells[0].Date, cells[len(cells)-1].Date

	switch {
	case start.Year() == end.Year() && start.Month() == end.Month():
		return fmt.Sprintf("%s %s%s%s, %s",
			MonthName(start.Month(), f.Lang), f.num(start.Day()),
			RangeSeparator,
			f.num(end.Day()), f.num(start.Year()))
	case start.Year() == end.Year():
		return fmt.Sprintf("%s %s%s%s %s, %s",
			MonthName(start.Month(), f.Lang), f.num(start.Day()),
			RangeSeparator,
			MonthName(end.Month(), f.Lang), f.num(end.Day()),
			f.num(start.Year()))
	default:
		return f.Date(start) + RangeSeparator + f.Date(end)
	}
}

// FormatEthiopianDate renders d with English month names, optionally using
// Ge'ez numerals for the day and year.
func FormatEthiopianDate(d EthiopicDate, useGeezDigits bool) string {
	return Formatter{Lang: LangEnglish, GeezDigits: useGeezDigits}.Date(d)
}

// FormatGregorianDate renders "Month D, Y" in Arabic numerals, independent of
// the process locale.
func FormatGregorianDate(g GregorianDate) string {
	return fmt.Sprintf("%s %d, %d", time.Month(g.Month()), g.Day(), g.Year())
}

// FormatWeekRange renders a week's span with English month names.
func FormatWeekRange(cells []CalendarCell, useGeezDigits bool) string {
	return Formatter{Lang: LangEnglish, GeezDigits: useGeezDigits}.WeekRange(cells)
}
