package ethiopic

// DaysPerMonth is the length of Meskerem through Nehase.
const DaysPerMonth = 30

// IsLeapYear reports whether an Ethiopic year has a sixth Pagume day.
// The rule is year mod 4 == 3 with no century exception.
func IsLeapYear(year int) bool {
	return floorMod(year, 4) == 3
}

// DaysInMonth returns 30 for months 1-12 and 5 or 6 for Pagume.
func DaysInMonth(year int, month Month) (int, error) {
	if !month.Valid() {
		return 0, invalid(CalendarEthiopic, FieldMonth, int(month))
	}
	if month != Pagume {
		return DaysPerMonth, nil
	}
	if IsLeapYear(year) {
		return 6, nil
	}
	return 5, nil
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// IsGregorianLeapYear applies the proleptic Gregorian rule.
func IsGregorianLeapYear(year int) bool {
	return floorMod(year, 4) == 0 && (floorMod(year, 100) != 0 || floorMod(year, 400) == 0)
}

func gregorianDaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsGregorianLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// NextMonth returns the month after (year, month), wrapping Pagume into
// Meskerem of the following year.
func NextMonth(year int, month Month) (int, Month) {
	if month >= Pagume {
		return year + 1, Meskerem
	}
	return year, month + 1
}

// PrevMonth returns the month before (year, month), wrapping Meskerem back
// to Pagume of the previous year.
func PrevMonth(year int, month Month) (int, Month) {
	if month <= Meskerem {
		return year - 1, Pagume
	}
	return year, month - 1
}
