package cli

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-ethiocal/internal/config"
	"github.com/tartampluch/go-ethiocal/internal/ethiopic"
)

func numeralCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "numeral [<value>...]",
		Short: "Encode integers as Ge'ez numerals, or list the base glyphs",
		Args:  cobra.MaximumNArgs(config.MaxNumeralArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if len(args) == 0 {
				if asJSON {
					return writeJSON(w, ethiopic.GeezNumeralTable)
				}
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				for _, e := range ethiopic.GeezNumeralTable {
					fmt.Fprintf(tw, "%d\t%s\t%s\n", e.Value, e.Symbol, e.Name)
				}
				return tw.Flush()
			}

			type numeral struct {
				Value int    `json:"value"`
				Geez  string `json:"geez"`
			}
			out := make([]numeral, 0, len(args))
			for _, raw := range args {
				n, err := strconv.Atoi(raw)
				if err != nil {
					return fmt.Errorf("%s: %q", config.ErrNumeralArg, raw)
				}
				if n < 1 || n > config.MaxNumeral {
					return errors.New(config.ErrNumeralRange)
				}
				out = append(out, numeral{Value: n, Geez: ethiopic.ToGeezNumeral(n)})
			}

			if asJSON {
				return writeJSON(w, out)
			}
			for _, n := range out {
				fmt.Fprintf(w, "%d\t%s\n", n.Value, n.Geez)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, config.FlagJSON, false, config.FlagDescJSON)
	return cmd
}
