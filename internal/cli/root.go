// Package cli wires the ethiocal command line: the desktop tray app as the
// default command, plus conversion, grid, numeral, feed and headless server
// subcommands.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-ethiocal/internal/config"
)

// Execute runs the root command and returns the process exit code.
func Execute() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          config.AppBinary,
		Short:        "Ethiopian calendar in the system tray, on the command line and over HTTP",
		Version:      config.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// Subcommands log warnings to stderr; desktop and serve replace this.
			setupConsoleLogging(cmd.ErrOrStderr(), debug)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			closer := setupLogging(debug)
			if closer != nil {
				defer func() { _ = closer.Close() }()
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			logStartupInfo()

			if err := runDesktop(ctx); err != nil {
				slog.Error(config.ErrAppFailed,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyError, err,
				)
				return err
			}

			slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
			return nil
		},
	}

	cmd.SetVersionTemplate(config.MsgVersionTmpl)
	cmd.PersistentFlags().BoolVar(&debug, config.FlagDebug, false, config.FlagDescDebug)

	cmd.AddCommand(
		convertCmd(),
		monthCmd(),
		weekCmd(),
		numeralCmd(),
		feedCmd(),
		serveCmd(),
	)
	return cmd
}

// signalContext is the root context of long-running subcommands.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
