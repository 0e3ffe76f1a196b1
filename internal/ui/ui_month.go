package ui

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-ethiocal/internal/config"
	"github.com/tartampluch/go-ethiocal/internal/engine"
	"github.com/tartampluch/go-ethiocal/internal/ethiopic"
	"github.com/tartampluch/go-ethiocal/internal/highlight"
)

// monthGrid is the navigation state of the month window. In week mode the
// anchor drives navigation and the owning month follows it.
type monthGrid struct {
	year   int
	month  ethiopic.Month
	anchor ethiopic.EthiopicDate
	mode   string
}

func newMonthGrid(today ethiopic.EthiopicDate) *monthGrid {
	return &monthGrid{
		year:   today.Year(),
		month:  today.Month(),
		anchor: today,
		mode:   config.ViewModeMonth,
	}
}

// shift moves one page forward (delta > 0) or backward. Moves that would
// leave the calendar's range (before 1 Meskerem 1) are ignored.
func (g *monthGrid) shift(delta int) {
	if g.mode == config.ViewModeWeek {
		anchor := g.anchor.AddDays(delta * ethiopic.DaysPerWeek)
		if _, err := ethiopic.NewEthiopicDate(anchor.Year(), anchor.Month(), anchor.Day()); err != nil {
			return
		}
		g.anchor = anchor
		g.year, g.month = anchor.Year(), anchor.Month()
		return
	}

	year, month := ethiopic.PrevMonth(g.year, g.month)
	if delta > 0 {
		year, month = ethiopic.NextMonth(g.year, g.month)
	}
	first, err := ethiopic.NewEthiopicDate(year, month, 1)
	if err != nil {
		return
	}
	g.year, g.month, g.anchor = year, month, first
}

func (g *monthGrid) reset(today ethiopic.EthiopicDate) {
	g.year, g.month, g.anchor = today.Year(), today.Month(), today
}

func (g *monthGrid) cells() ([]ethiopic.CalendarCell, error) {
	if g.mode == config.ViewModeWeek {
		wk, err := ethiopic.WeekCells(g.anchor, g.year, g.month)
		if err != nil {
			return nil, err
		}
		return wk.Cells[:], nil
	}
	return ethiopic.CalendarMatrix(g.year, g.month)
}

func (g *monthGrid) title(f ethiopic.Formatter, cells []ethiopic.CalendarCell) string {
	if g.mode == config.ViewModeWeek {
		return f.WeekRange(cells)
	}
	return f.MonthTitle(g.year, g.month)
}

// cellText renders a day number with today and highlight markers.
func cellText(c ethiopic.CalendarCell, today ethiopic.EthiopicDate, marked bool, geez bool) string {
	text := ethiopic.Digits(c.Date.Day(), geez)
	if c.Date == today {
		text = config.TodayMarker + text
	}
	if marked {
		text += config.HighlightMarker
	}
	return text
}

// highlightLines lists the highlights of the visible page in date order.
// Month pages only list in-month days; week pages list every cell.
func highlightLines(idx *highlight.Index, g *monthGrid, cells []ethiopic.CalendarCell, f ethiopic.Formatter) []string {
	byKey := make(map[string][]highlight.Highlight)
	dates := make(map[string]ethiopic.EthiopicDate)

	if g.mode == config.ViewModeMonth {
		inMonth, err := idx.InMonth(g.year, g.month)
		if err != nil {
			return nil
		}
		byKey = inMonth
		for _, c := range cells {
			if c.IsCurrentMonth {
				dates[c.Key()] = c.Date
			}
		}
	} else {
		for _, c := range cells {
			if hs := idx.OnDay(c.Date); len(hs) > 0 {
				byKey[c.Key()] = hs
				dates[c.Key()] = c.Date
			}
		}
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		names := make([]string, 0, len(byKey[k]))
		for _, h := range byKey[k] {
			names = append(names, h.DisplayName(f.Lang))
		}
		lines = append(lines, fmt.Sprintf(config.HighlightLine, f.Date(dates[k]), strings.Join(names, ", ")))
	}
	return lines
}

// ShowMonthWindow displays the Ethiopic month grid with its highlights.
// Only one instance is kept; a second call focuses it.
func (app *EthioCalApp) ShowMonthWindow() {
	if app.monthWindow != nil {
		app.monthWindow.RequestFocus()
		return
	}

	slog.Info(config.LogMsgOpenMonth, config.LogKeyComponent, config.CompUIMonth)

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinMonth))
	w.Resize(fyne.NewSize(config.MonthWinWidth, config.MonthWinHeight))
	app.monthWindow = w
	app.monthGrid = newMonthGrid(engine.Today(app.Clock))

	w.SetOnClosed(func() {
		app.monthWindow = nil
		app.monthGrid = nil
	})

	app.renderMonth()
	w.Show()
}

// refreshMonthWindow redraws the open month window after a sync.
func (app *EthioCalApp) refreshMonthWindow() {
	if app.monthWindow == nil {
		return
	}
	fyne.Do(app.renderMonth)
}

func (app *EthioCalApp) navigate(delta int) {
	app.monthGrid.shift(delta)
	slog.Debug(config.LogMsgNavigate,
		config.LogKeyComponent, config.CompUIMonth,
		config.LogKeyYear, app.monthGrid.year,
		config.LogKeyMonth, int(app.monthGrid.month),
		config.LogKeyView, app.monthGrid.mode)
	app.renderMonth()
}

// renderMonth rebuilds the window content from the current grid state.
func (app *EthioCalApp) renderMonth() {
	w, g := app.monthWindow, app.monthGrid
	if w == nil || g == nil {
		return
	}

	f := app.formatter()
	today := engine.Today(app.Clock)
	idx := app.highlights()

	cells, err := g.cells()
	if err != nil {
		slog.Error(config.ErrDateParse,
			config.LogKeyComponent, config.CompUIMonth,
			config.LogKeyError, err)
		return
	}

	// --- Navigation ---
	titleLabel := widget.NewLabelWithStyle(g.title(f, cells), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	btnPrev := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnPrev), theme.NavigateBackIcon(), func() { app.navigate(-1) })
	btnNext := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnNext), theme.NavigateNextIcon(), func() { app.navigate(1) })
	btnToday := widget.NewButton(app.GetMsg(config.TKeyBtnToday), func() {
		g.reset(engine.Today(app.Clock))
		app.renderMonth()
	})

	viewLabels := map[string]string{
		app.GetMsg(config.TKeyViewMonth): config.ViewModeMonth,
		app.GetMsg(config.TKeyViewWeek):  config.ViewModeWeek,
	}
	viewSelect := widget.NewRadioGroup([]string{
		app.GetMsg(config.TKeyViewMonth),
		app.GetMsg(config.TKeyViewWeek),
	}, nil)
	viewSelect.Horizontal = true
	for label, mode := range viewLabels {
		if mode == g.mode {
			viewSelect.Selected = label
		}
	}
	viewSelect.OnChanged = func(label string) {
		mode, ok := viewLabels[label]
		if !ok || mode == g.mode {
			return
		}
		g.mode = mode
		if mode == config.ViewModeMonth {
			g.year, g.month = g.anchor.Year(), g.anchor.Month()
		} else if !g.anchor.SameMonth(g.year, g.month) {
			g.anchor = ethiopic.MustEthiopicDate(g.year, g.month, 1)
		}
		app.renderMonth()
	}

	nav := container.NewBorder(nil, nil,
		container.NewHBox(btnPrev, btnToday),
		btnNext,
		titleLabel)

	// --- Grid ---
	grid := container.NewGridWithColumns(ethiopic.DaysPerWeek)
	for i := 0; i < ethiopic.DaysPerWeek; i++ {
		grid.Add(widget.NewLabelWithStyle(ethiopic.WeekdayName(i, f.Lang), fyne.TextAlignCenter, fyne.TextStyle{Italic: true}))
	}
	for _, c := range cells {
		label := widget.NewLabelWithStyle(
			cellText(c, today, len(idx.OnDay(c.Date)) > 0, f.GeezDigits),
			fyne.TextAlignCenter, fyne.TextStyle{Bold: c.Date == today})
		if !c.IsCurrentMonth {
			label.Importance = widget.LowImportance
		}
		grid.Add(label)
	}

	// --- Highlights ---
	lines := highlightLines(idx, g, cells, f)
	if len(lines) == 0 {
		lines = []string{app.GetMsg(config.TKeyLblNoHighlights)}
	}
	list := widget.NewLabel(strings.Join(lines, "\n"))
	list.Wrapping = fyne.TextWrapWord
	highlightsCard := widget.NewCard(app.GetMsg(config.TKeyLblHighlights), "", container.NewVScroll(list))

	content := container.NewBorder(
		container.NewVBox(nav, viewSelect, grid),
		nil, nil, nil,
		highlightsCard,
	)
	w.SetContent(container.NewPadded(content))
}
