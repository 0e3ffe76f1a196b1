package ethiopic

// JDN is a Julian Day Number: a continuous count of days shared by both
// calendars.
type JDN int

// EpochJDN is the JDN of 1 Meskerem 1 in the Amete Mihret era
// (29 August 8 CE, Julian).
const EpochJDN JDN = 1724221

// cycleDays is one four-year Ethiopic cycle, leap year last.
const cycleDays = 4*365 + 1

// EthiopicToJDN validates an Ethiopic triple and returns its JDN.
func EthiopicToJDN(year int, month Month, day int) (JDN, error) {
	d, err := NewEthiopicDate(year, month, day)
	if err != nil {
		return 0, err
	}
	return d.JDN(), nil
}

// EthiopicFromJDN is total: JDNs before the epoch give proleptic years <= 0.
func EthiopicFromJDN(j JDN) EthiopicDate {
	// Count from the year before the epoch so each cycle ends on its leap year.
	n := int(j - EpochJDN + 365)
	r := floorMod(n, cycleDays)
	doy := r%365 + 365*(r/(cycleDays-1))
	year := 4*floorDiv(n, cycleDays) + r/365 - r/(cycleDays-1)
	return EthiopicDate{
		year:  year,
		month: Month(doy/30 + 1),
		day:   doy%30 + 1,
	}
}

// GregorianToJDN validates a Gregorian triple and returns its JDN.
func GregorianToJDN(year, month, day int) (JDN, error) {
	g, err := NewGregorianDate(year, month, day)
	if err != nil {
		return 0, err
	}
	return g.JDN(), nil
}

// GregorianFromJDN uses the proleptic Gregorian calendar throughout.
func GregorianFromJDN(j JDN) GregorianDate {
	a := int(j) + 32044
	b := floorDiv(4*a+3, 146097)
	c := a - floorDiv(146097*b, 4)
	d := floorDiv(4*c+3, 1461)
	e := c - floorDiv(1461*d, 4)
	m := floorDiv(5*e+2, 153)
	return GregorianDate{
		year:  100*b + d - 4800 + m/10,
		month: m + 3 - 12*(m/10),
		day:   e - floorDiv(153*m+2, 5) + 1,
	}
}

// ToGregorian converts an Ethiopic date by way of its JDN.
func ToGregorian(d EthiopicDate) GregorianDate {
	return GregorianFromJDN(d.JDN())
}

// ToEthiopic converts a Gregorian date by way of its JDN.
func ToEthiopic(g GregorianDate) EthiopicDate {
	return EthiopicFromJDN(g.JDN())
}

// Weekday returns 0 for Sunday through 6 for Saturday.
func (j JDN) Weekday() int {
	return floorMod(int(j)+1, 7)
}

// MondayIndex rebases Weekday so that Monday is 0 and Sunday is 6.
// Display weeks always start on Monday.
func (j JDN) MondayIndex() int {
	return (j.Weekday() + 6) % 7
}

func ethiopicJDN(year int, month Month, day int) JDN {
	return EpochJDN + JDN(365*(year-1)+floorDiv(year, 4)+30*(int(month)-1)+day-1)
}

func gregorianJDN(year, month, day int) JDN {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return JDN(day + (153*m+2)/5 + 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
