package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-ethiocal/internal/config"
	"github.com/tartampluch/go-ethiocal/internal/engine"
	"github.com/tartampluch/go-ethiocal/internal/ethiopic"
	"github.com/tartampluch/go-ethiocal/internal/highlight"
)

func monthCmd() *cobra.Command {
	var disp displayFlags
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "month [<year> <month>]",
		Short: "Print an Ethiopic month grid with its highlights",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return errors.New(config.ErrMonthArgs)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := disp.formatter()
			if err != nil {
				return err
			}

			today := engine.Today(clock)
			year, month := today.Year(), today.Month()
			if len(args) == 2 {
				if year, month, err = parseYearMonth(args[0], args[1]); err != nil {
					return err
				}
			}

			cells, err := ethiopic.CalendarMatrix(year, month)
			if err != nil {
				return err
			}

			idx, err := loadHighlights(cmd.Context(), newGenerator(f), &src)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, f.MonthTitle(year, month))
			if err := printGrid(w, cells, today, idx, f); err != nil {
				return err
			}
			printHighlights(w, idx, cells, true, f)
			return nil
		},
	}

	disp.bind(cmd)
	src.bind(cmd)
	return cmd
}

func weekCmd() *cobra.Command {
	var from string
	var year, month int
	var disp displayFlags
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "week <YYYY-MM-DD>",
		Short: "Print the Monday-first week containing a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := disp.formatter()
			if err != nil {
				return err
			}

			anchor, err := parseDate(args[0], from)
			if err != nil {
				return err
			}

			// The highlighted month defaults to the anchor's own.
			ownerYear, ownerMonth := anchor.Year(), anchor.Month()
			if cmd.Flags().Changed(config.FlagYear) {
				ownerYear = year
			}
			if cmd.Flags().Changed(config.FlagMonth) {
				ownerMonth = ethiopic.Month(month)
			}

			wk, err := ethiopic.WeekCells(anchor, ownerYear, ownerMonth)
			if err != nil {
				return err
			}

			idx, err := loadHighlights(cmd.Context(), newGenerator(f), &src)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, f.WeekRange(wk.Cells[:]))
			if err := printGrid(w, wk.Cells[:], engine.Today(clock), idx, f); err != nil {
				return err
			}
			printHighlights(w, idx, wk.Cells[:], false, f)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, config.FlagFrom, ethiopic.CalendarEthiopic, config.FlagDescFrom)
	cmd.Flags().IntVar(&year, config.FlagYear, 0, config.FlagDescYear)
	cmd.Flags().IntVar(&month, config.FlagMonth, 0, config.FlagDescMonth)
	disp.bind(cmd)
	src.bind(cmd)
	return cmd
}

func parseYearMonth(rawYear, rawMonth string) (int, ethiopic.Month, error) {
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: year %q", ethiopic.ErrInvalidDate, rawYear)
	}
	month, err := strconv.Atoi(rawMonth)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: month %q", ethiopic.ErrInvalidDate, rawMonth)
	}
	return year, ethiopic.Month(month), nil
}

// printGrid writes weekday headers and one row per week. Days outside the
// selected month are parenthesised.
func printGrid(w io.Writer, cells []ethiopic.CalendarCell, today ethiopic.EthiopicDate, idx *highlight.Index, f ethiopic.Formatter) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	headers := make([]string, ethiopic.DaysPerWeek)
	for i := range headers {
		headers[i] = ethiopic.WeekdayName(i, f.Lang)
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for _, row := range ethiopic.Weeks(cells) {
		texts := make([]string, len(row))
		for i, c := range row {
			texts[i] = gridCell(c, today, len(idx.OnDay(c.Date)) > 0, f.GeezDigits)
		}
		fmt.Fprintln(tw, strings.Join(texts, "\t"))
	}
	return tw.Flush()
}

func gridCell(c ethiopic.CalendarCell, today ethiopic.EthiopicDate, marked, geez bool) string {
	text := ethiopic.Digits(c.Date.Day(), geez)
	if !c.IsCurrentMonth {
		text = "(" + text + ")"
	}
	if c.Date == today {
		text = config.TodayMarker + text
	}
	if marked {
		text += config.HighlightMarker
	}
	return text
}

// printHighlights lists highlights in cell order, restricted to the selected
// month when inMonthOnly is set.
func printHighlights(w io.Writer, idx *highlight.Index, cells []ethiopic.CalendarCell, inMonthOnly bool, f ethiopic.Formatter) {
	var lines []string
	for _, c := range cells {
		if inMonthOnly && !c.IsCurrentMonth {
			continue
		}
		hs := idx.OnDay(c.Date)
		if len(hs) == 0 {
			continue
		}
		names := make([]string, 0, len(hs))
		for _, h := range hs {
			names = append(names, h.DisplayName(f.Lang))
		}
		lines = append(lines, fmt.Sprintf(config.HighlightLine, f.Date(c.Date), strings.Join(names, ", ")))
	}
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}
