package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-ethiocal/internal/config"
	"github.com/tartampluch/go-ethiocal/internal/ethiopic"
)

// conversion is the --json shape of convert.
type conversion struct {
	Ethiopic      ethiopic.EthiopicDate  `json:"ethiopic"`
	Gregorian     ethiopic.GregorianDate `json:"gregorian"`
	JDN           int                    `json:"jdn"`
	Weekday       string                 `json:"weekday"`
	EthiopicText  string                 `json:"ethiopic_text"`
	GregorianText string                 `json:"gregorian_text"`
}

func convertCmd() *cobra.Command {
	var from string
	var asJSON bool
	var disp displayFlags

	cmd := &cobra.Command{
		Use:   "convert <YYYY-MM-DD>",
		Short: "Convert a date between the Ethiopic and Gregorian calendars",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := disp.formatter()
			if err != nil {
				return err
			}

			d, err := parseDate(args[0], from)
			if err != nil {
				return err
			}

			g := d.Gregorian()
			out := conversion{
				Ethiopic:      d,
				Gregorian:     g,
				JDN:           int(d.JDN()),
				Weekday:       ethiopic.WeekdayName(d.JDN().MondayIndex(), f.Lang),
				EthiopicText:  f.Date(d),
				GregorianText: ethiopic.FormatGregorianDate(g),
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Ethiopic:  %s (%s)\n", out.EthiopicText, d.Key())
			fmt.Fprintf(w, "Gregorian: %s (%s)\n", out.GregorianText, g.String())
			fmt.Fprintf(w, "Weekday:   %s\n", out.Weekday)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, config.FlagFrom, ethiopic.CalendarEthiopic, config.FlagDescFrom)
	cmd.Flags().BoolVar(&asJSON, config.FlagJSON, false, config.FlagDescJSON)
	disp.bind(cmd)
	return cmd
}

// parseDate reads a YYYY-MM-DD date in the named calendar.
func parseDate(raw, calendar string) (ethiopic.EthiopicDate, error) {
	switch strings.ToLower(calendar) {
	case ethiopic.CalendarEthiopic:
		return ethiopic.ParseKey(raw)
	case ethiopic.CalendarGregorian:
		g, err := ethiopic.ParseGregorian(raw)
		if err != nil {
			return ethiopic.EthiopicDate{}, err
		}
		return g.Ethiopic(), nil
	default:
		return ethiopic.EthiopicDate{}, errors.New(config.ErrCalendarUnknown)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
