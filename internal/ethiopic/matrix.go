package ethiopic

// DaysPerWeek is the number of columns in every grid.
const DaysPerWeek = 7

// MaxMatrixCells bounds CalendarMatrix: six full weeks.
const MaxMatrixCells = 6 * DaysPerWeek

// CalendarCell is one display cell of a month or week grid.
type CalendarCell struct {
	Date           EthiopicDate  `json:"date"`
	Gregorian      GregorianDate `json:"gregorian"`
	IsCurrentMonth bool          `json:"isCurrentMonth"`
}

// Key returns the highlight join key of the cell's Ethiopic date.
func (c CalendarCell) Key() string {
	return c.Date.Key()
}

// WeekView is a Monday-first run of seven cells.
type WeekView struct {
	StartDate EthiopicDate              `json:"startDate"`
	EndDate   EthiopicDate              `json:"endDate"`
	Cells     [DaysPerWeek]CalendarCell `json:"cells"`
}

// CalendarMatrix returns whole Monday-first weeks covering the given month.
// Leading and trailing cells belong to the neighbouring months; the result
// length is a multiple of 7 and never exceeds MaxMatrixCells.
func CalendarMatrix(year int, month Month) ([]CalendarCell, error) {
	first, err := NewEthiopicDate(year, month, 1)
	if err != nil {
		return nil, err
	}
	dim, _ := DaysInMonth(year, month)

	firstJDN := first.JDN()
	lead := firstJDN.MondayIndex()
	total := (lead + dim + DaysPerWeek - 1) / DaysPerWeek * DaysPerWeek

	// Leading cells may reach back past a short Pagume into Nehase, so the
	// grid is filled from a contiguous day range rather than per month.
	start := firstJDN - JDN(lead)
	cells := make([]CalendarCell, total)
	for i := range cells {
		cells[i] = cellAt(start+JDN(i), year, month)
	}
	return cells, nil
}

// WeekCells returns the Monday-first week containing anchor. IsCurrentMonth
// is judged against (year, month), the month selected in the UI, not the
// anchor's own month.
func WeekCells(anchor EthiopicDate, year int, month Month) (WeekView, error) {
	if anchor.IsZero() {
		return WeekView{}, invalid(CalendarEthiopic, FieldYear, 0)
	}
	if year < 1 || year > MaxYear {
		return WeekView{}, invalid(CalendarEthiopic, FieldYear, year)
	}
	if !month.Valid() {
		return WeekView{}, invalid(CalendarEthiopic, FieldMonth, int(month))
	}

	monday := anchor.AddDays(-anchor.JDN().MondayIndex())
	start := monday.JDN()

	var w WeekView
	for i := range w.Cells {
		w.Cells[i] = cellAt(start+JDN(i), year, month)
	}
	w.StartDate = w.Cells[0].Date
	w.EndDate = w.Cells[DaysPerWeek-1].Date
	return w, nil
}

// Weeks splits a grid into rows of seven.
func Weeks(cells []CalendarCell) [][]CalendarCell {
	rows := make([][]CalendarCell, 0, len(cells)/DaysPerWeek)
	for i := 0; i+DaysPerWeek <= len(cells); i += DaysPerWeek {
		rows = append(rows, cells[i:i+DaysPerWeek])
	}
	return rows
}

func cellAt(j JDN, year int, month Month) CalendarCell {
	d := EthiopicFromJDN(j)
	return CalendarCell{
		Date:           d,
		Gregorian:      GregorianFromJDN(j),
		IsCurrentMonth: d.SameMonth(year, month),
	}
}
