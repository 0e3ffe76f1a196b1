package ethiopic

import (
	"strconv"
	"strings"
)

var (
	geezUnits = [10]string{"", "፩", "፪", "፫", "፬", "፭", "፮", "፯", "፰", "፱"}
	geezTens  = [10]string{"", "፲", "፳", "፴", "፵", "፶", "፷", "፸", "፹", "፺"}
)

const (
	geezHundred     = "፻"
	geezTenThousand = "፼"
)

// magnitude is the grouping class of a value being encoded.
type magnitude int

const (
	magNone magnitude = iota
	magUnits
	magTens
	magHundreds
	magTenThousands
)

func magnitudeOf(v int) magnitude {
	switch {
	case v <= 0:
		return magNone
	case v < 10:
		return magUnits
	case v < 100:
		return magTens
	case v < 10000:
		return magHundreds
	default:
		return magTenThousands
	}
}

// ToGeezNumeral encodes a positive integer as a Ge'ez numeral. Values <= 0
// yield "" so placeholder cells render nothing.
func ToGeezNumeral(value int) string {
	var sb strings.Builder
	writeGeez(&sb, value)
	return sb.String()
}

// Recursive calls only ever receive a quotient or remainder of v, so the
// argument strictly shrinks.
func writeGeez(sb *strings.Builder, v int) {
	switch magnitudeOf(v) {
	case magNone:
	case magUnits:
		sb.WriteString(geezUnits[v])
	case magTens:
		sb.WriteString(geezTens[v/10])
		sb.WriteString(geezUnits[v%10])
	case magHundreds:
		if coef := v / 100; coef > 1 {
			writeGeez(sb, coef)
		}
		sb.WriteString(geezHundred)
		writeGeez(sb, v%100)
	case magTenThousands:
		if coef := v / 10000; coef > 1 {
			writeGeez(sb, coef)
		}
		sb.WriteString(geezTenThousand)
		writeGeez(sb, v%10000)
	}
}

// Digits renders n either as Arabic digits or as a Ge'ez numeral.
func Digits(n int, geez bool) string {
	if geez {
		return ToGeezNumeral(n)
	}
	return strconv.Itoa(n)
}

// GeezNumeralEntry is one row of the reference numeral table.
type GeezNumeralEntry struct {
	Value  int    `json:"value"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// GeezNumeralTable lists the base glyphs with their Amharic names. The encoder
// does not consult it.
var GeezNumeralTable = []GeezNumeralEntry{
	{1, "፩", "አንድ"},
	{2, "፪", "ሁለት"},
	{3, "፫", "ሶስት"},
	{4, "፬", "አራት"},
	{5, "፭", "አምስት"},
	{6, "፮", "ስድስት"},
	{7, "፯", "ሰባት"},
	{8, "፰", "ስምንት"},
	{9, "፱", "ዘጠኝ"},
	{10, "፲", "አስር"},
	{20, "፳", "ሃያ"},
	{30, "፴", "ሰላሳ"},
	{40, "፵", "አርባ"},
	{50, "፶", "ሃምሳ"},
	{60, "፷", "ስልሳ"},
	{70, "፸", "ሰባ"},
	{80, "፹", "ሰማንያ"},
	{90, "፺", "ዘጠና"},
	{100, "፻", "መቶ"},
	{10000, "፼", "አስር ሺህ"},
}
