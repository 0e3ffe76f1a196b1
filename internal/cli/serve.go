package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-ethiocal/internal/config"
	"github.com/tartampluch/go-ethiocal/internal/engine"
	"github.com/tartampluch/go-ethiocal/internal/ethiopic"
	"github.com/tartampluch/go-ethiocal/internal/highlight"
	"github.com/tartampluch/go-ethiocal/internal/server"
)

func serveCmd() *cobra.Command {
	var port int
	var source string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the feed and the JSON calendar API without a desktop",
		Long: "Serve reads its settings from ETHIOCAL_* environment variables " +
			"(or a .env file). --port and --source override them.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := serveConfig(cmd, port, source)
			if err != nil {
				return err
			}

			debug, _ := cmd.Flags().GetBool(config.FlagDebug)
			setupServeLogging(cmd.OutOrStdout(), cfg, debug)
			logStartupInfo()

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			srv := server.NewCalendarServer(strconv.Itoa(cfg.Port))
			srv.Bind = cfg.Bind

			h := newHeadless(srv, cfg)
			go h.run(ctx, time.Duration(cfg.RefreshMin)*time.Minute)

			slog.Info(config.MsgServeStart,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyAddr, cfg.Addr(),
				config.LogKeyMode, h.sync.Mode,
			)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, config.FlagPort, 0, config.FlagDescPort)
	cmd.Flags().StringVar(&source, config.FlagSource, "", config.FlagDescSource)
	return cmd
}

// serveConfig merges flag overrides into the environment settings and
// validates the result once.
func serveConfig(cmd *cobra.Command, port int, source string) (*config.ServeConfig, error) {
	cfg, err := config.LoadServe()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed(config.FlagPort) {
		cfg.Port = port
	}
	if cmd.Flags().Changed(config.FlagSource) {
		cfg.Source = source
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrEnvInvalid, err)
	}
	return cfg, nil
}

// headless keeps a CalendarServer fed without the desktop worker: one sync at
// start, then on every tick and on every change of a local source.
type headless struct {
	srv     *server.CalendarServer
	gen     *engine.Generator
	sync    engine.SyncConfig
	changed chan struct{}
}

func newHeadless(srv *server.CalendarServer, cfg *config.ServeConfig) *headless {
	gen := newGenerator(ethiopic.Formatter{Lang: ethiopic.LangEnglish, GeezDigits: cfg.GeezDigits})
	return &headless{
		srv:     srv,
		gen:     gen,
		sync:    syncConfigFor(cfg.Source, cfg.SourceUser, cfg.SourcePass, cfg.IncludeDefaults),
		changed: make(chan struct{}, config.ChannelBufferSize),
	}
}

// refresh runs one sync. A failed sync keeps the previous feed.
func (h *headless) refresh(ctx context.Context) error {
	ics, idx, _, err := h.gen.RunSync(ctx, h.sync)
	if err != nil {
		slog.Error(config.MsgSyncFailed,
			config.LogKeyComponent, config.CompWorker,
			config.LogKeyError, err,
		)
		return err
	}
	h.srv.Update(ics)
	h.srv.SetHighlights(idx)
	return nil
}

// run blocks until ctx is done. interval <= 0 disables the ticker.
func (h *headless) run(ctx context.Context, interval time.Duration) {
	_ = h.refresh(ctx)

	if h.sync.Mode == config.SourceModeLocal {
		w, err := highlight.NewWatcher(h.sync.LocalPath, h.notify)
		if err != nil {
			slog.Warn(config.ErrWatcherInit,
				config.LogKeyComponent, config.CompWatcher,
				config.LogKeyError, err,
			)
		} else {
			go w.Run(ctx)
		}
	}

	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info(config.MsgWorkerStop, config.LogKeyComponent, config.CompWorker)
			return
		case <-tick:
			slog.Debug(config.MsgServeRefresh, config.LogKeyComponent, config.CompWorker)
			_ = h.refresh(ctx)
		case <-h.changed:
			_ = h.refresh(ctx)
		}
	}
}

func (h *headless) notify() {
	select {
	case h.changed <- struct{}{}:
	default:
	}
}
