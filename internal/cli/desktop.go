package cli

import (
	"context"
	"log/slog"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-ethiocal/internal/config"
	"github.com/tartampluch/go-ethiocal/internal/engine"
	"github.com/tartampluch/go-ethiocal/internal/server"
	"github.com/tartampluch/go-ethiocal/internal/ui"
)

// runDesktop starts the tray application and blocks until it quits.
func runDesktop(ctx context.Context) error {
	a := app.NewWithID(config.AppID)

	// Kept for migrations between versions.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)
	srv := server.NewCalendarServer(port)
	fetcher := engine.NewHTTPFetcher()

	gui := ui.NewEthioCalApp(a, ctx, srv, fetcher)

	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	gui.Run()
	return nil
}
