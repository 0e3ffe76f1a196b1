package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/tartampluch/go-ethiocal/internal/config"
	"github.com/tartampluch/go-ethiocal/internal/ethiopic"
	"github.com/tartampluch/go-ethiocal/internal/highlight"
)

// --- Views -------------------------------------------------------------------

type highlightView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Calendar string   `json:"calendar"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

type cellView struct {
	Date           ethiopic.EthiopicDate  `json:"date"`
	Key            string                 `json:"key"`
	Gregorian      ethiopic.GregorianDate `json:"gregorian"`
	Label          string                 `json:"label"`
	IsCurrentMonth bool                   `json:"is_current_month"`
	IsToday        bool                   `json:"is_today"`
	Highlights     []highlightView        `json:"highlights,omitempty"`
}

type monthView struct {
	Year     int          `json:"year"`
	Month    int          `json:"month"`
	Title    string       `json:"title"`
	Weekdays []string     `json:"weekdays"`
	Weeks    [][]cellView `json:"weeks"`
}

type weekView struct {
	Range string                `json:"range"`
	Start ethiopic.EthiopicDate `json:"start"`
	End   ethiopic.EthiopicDate `json:"end"`
	Cells []cellView            `json:"cells"`
}

type dateView struct {
	Ethiopic      ethiopic.EthiopicDate  `json:"ethiopic"`
	Gregorian     ethiopic.GregorianDate `json:"gregorian"`
	JDN           int                    `json:"jdn"`
	Weekday       string                 `json:"weekday"`
	EthiopicText  string                 `json:"ethiopic_text"`
	GregorianText string                 `json:"gregorian_text"`
	Highlights    []highlightView        `json:"highlights,omitempty"`
}

type numeralView struct {
	Value int    `json:"value"`
	Geez  string `json:"geez"`
}

// --- Request options -----------------------------------------------------------

// viewOptions reads ?geez= and ?lang=.
func viewOptions(r *http.Request) ethiopic.Formatter {
	q := r.URL.Query()
	geez, _ := strconv.ParseBool(q.Get(config.QueryGeez))
	lang := ethiopic.LangEnglish
	if strings.EqualFold(q.Get(config.QueryLang), ethiopic.LangAmharic) {
		lang = ethiopic.LangAmharic
	}
	return ethiopic.Formatter{Lang: lang, GeezDigits: geez}
}

func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return n, nil
}

// --- Handlers --------------------------------------------------------------------

func (s *CalendarServer) handleToday(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, s.dateView(s.today(), viewOptions(r)))
}

func (s *CalendarServer) handleMonth(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, config.ParamYear)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	month, err := intParam(r, config.ParamMonth)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	cells, err := ethiopic.CalendarMatrix(year, ethiopic.Month(month))
	if err != nil {
		writeDateError(w, err)
		return
	}

	f := viewOptions(r)
	view := monthView{
		Year:     year,
		Month:    month,
		Title:    f.MonthTitle(year, ethiopic.Month(month)),
		Weekdays: weekdayHeaders(f.Lang),
	}
	today := s.today()
	for _, row := range ethiopic.Weeks(cells) {
		view.Weeks = append(view.Weeks, s.cellViews(row, today, f))
	}
	writeSuccess(w, view)
}

func (s *CalendarServer) handleWeek(w http.ResponseWriter, r *http.Request) {
	anchor, err := ethiopic.ParseKey(chi.URLParam(r, config.ParamDate))
	if err != nil {
		writeDateError(w, err)
		return
	}

	// The owning month defaults to the anchor's own.
	year, month := anchor.Year(), anchor.Month()
	q := r.URL.Query()
	if v := q.Get(config.ParamYear); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			writeBadRequest(w, fmt.Sprintf("%s must be an integer, got %q", config.ParamYear, v))
			return
		}
	}
	if v := q.Get(config.ParamMonth); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			writeBadRequest(w, fmt.Sprintf("%s must be an integer, got %q", config.ParamMonth, v))
			return
		}
		month = ethiopic.Month(m)
	}

	wk, err := ethiopic.WeekCells(anchor, year, month)
	if err != nil {
		writeDateError(w, err)
		return
	}

	f := viewOptions(r)
	writeSuccess(w, weekView{
		Range: f.WeekRange(wk.Cells[:]),
		Start: wk.StartDate,
		End:   wk.EndDate,
		Cells: s.cellViews(wk.Cells[:], s.today(), f),
	})
}

func (s *CalendarServer) handleConvert(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, config.ParamDate)

	var d ethiopic.EthiopicDate
	switch strings.ToLower(chi.URLParam(r, config.ParamCalendar)) {
	case ethiopic.CalendarEthiopic:
		e, err := ethiopic.ParseKey(raw)
		if err != nil {
			writeDateError(w, err)
			return
		}
		d = e
	case ethiopic.CalendarGregorian:
		g, err := ethiopic.ParseGregorian(raw)
		if err != nil {
			writeDateError(w, err)
			return
		}
		d = g.Ethiopic()
	default:
		writeBadRequest(w, config.ErrCalendarUnknown)
		return
	}

	writeSuccess(w, s.dateView(d, viewOptions(r)))
}

func (s *CalendarServer) handleNumeral(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r, config.ParamValue)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if n < 1 || n > config.MaxNumeral {
		writeBadRequest(w, config.ErrNumeralRange)
		return
	}
	writeSuccess(w, numeralView{Value: n, Geez: ethiopic.ToGeezNumeral(n)})
}

func (s *CalendarServer) handleNumerals(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, ethiopic.GeezNumeralTable)
}

// --- Helpers ---------------------------------------------------------------------

func (s *CalendarServer) today() ethiopic.EthiopicDate {
	return ethiopic.GregorianFromTime(s.Now()).Ethiopic()
}

func (s *CalendarServer) dateView(d ethiopic.EthiopicDate, f ethiopic.Formatter) dateView {
	g := d.Gregorian()
	return dateView{
		Ethiopic:      d,
		Gregorian:     g,
		JDN:           int(d.JDN()),
		Weekday:       ethiopic.WeekdayName(d.JDN().MondayIndex(), f.Lang),
		EthiopicText:  f.Date(d),
		GregorianText: ethiopic.FormatGregorianDate(g),
		Highlights:    highlightViews(s.provider().OnDay(d), f.Lang),
	}
}

func (s *CalendarServer) cellViews(cells []ethiopic.CalendarCell, today ethiopic.EthiopicDate, f ethiopic.Formatter) []cellView {
	idx := s.provider()
	out := make([]cellView, 0, len(cells))
	for _, c := range cells {
		out = append(out, cellView{
			Date:           c.Date,
			Key:            c.Key(),
			Gregorian:      c.Gregorian,
			Label:          ethiopic.Digits(c.Date.Day(), f.GeezDigits),
			IsCurrentMonth: c.IsCurrentMonth,
			IsToday:        c.Date == today,
			Highlights:     highlightViews(idx.OnDay(c.Date), f.Lang),
		})
	}
	return out
}

func highlightViews(hs []highlight.Highlight, lang string) []highlightView {
	if len(hs) == 0 {
		return nil
	}
	out := make([]highlightView, 0, len(hs))
	for _, h := range hs {
		out = append(out, highlightView{
			ID:       h.ID,
			Name:     h.DisplayName(lang),
			Calendar: h.Calendar,
			Category: h.Category,
			Tags:     h.Tags,
		})
	}
	return out
}

func weekdayHeaders(lang string) []string {
	out := make([]string, ethiopic.DaysPerWeek)
	for i := range out {
		out[i] = ethiopic.WeekdayName(i, lang)
	}
	return out
}
