package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-ethiocal/internal/config"
)

func feedCmd() *cobra.Command {
	var out string
	var disp displayFlags
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Render highlights as an iCalendar feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := disp.formatter()
			if err != nil {
				return err
			}

			ics, _, _, err := newGenerator(f).RunSync(cmd.Context(), src.syncConfig())
			if err != nil {
				return err
			}

			if out == "" {
				if _, err := cmd.OutOrStdout().Write(ics); err != nil {
					return fmt.Errorf("%s: %w", config.ErrFeedWrite, err)
				}
				return nil
			}

			if err := os.WriteFile(out, ics, config.FilePermUserRW); err != nil {
				return fmt.Errorf("%s: %w", config.ErrFeedWrite, err)
			}
			slog.Info(config.MsgFeedWritten,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyPath, out,
				config.LogKeySizeBytes, len(ics),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, config.FlagOut, "o", "", config.FlagDescOut)
	disp.bind(cmd)
	src.bind(cmd)
	return cmd
}
