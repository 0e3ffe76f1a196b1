package ui

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-ethiocal/internal/config"
	"github.com/tartampluch/go-ethiocal/internal/engine"
	"github.com/tartampluch/go-ethiocal/internal/ethiopic"
	"github.com/tartampluch/go-ethiocal/internal/highlight"
	"github.com/tartampluch/go-ethiocal/internal/server"
	"github.com/zalando/go-keyring"
)

//go:embed Icon.png
var appIconData []byte

// EthioCalApp encapsulates the UI state, preferences, and background logic.
type EthioCalApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server  *server.CalendarServer
	Fetcher engine.Fetcher
	Clock   engine.Clock

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayMonthItem    *fyne.MenuItem
	TrayRefreshItem  *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string
	sourceChan         chan struct{}

	// Highlights state, shared with the month window.
	IndexMut sync.RWMutex
	Index    *highlight.Index

	monthWindow fyne.Window
	monthGrid   *monthGrid

	// Owned by the background worker.
	watchCancel context.CancelFunc
	watchedPath string
}

// NewEthioCalApp constructs the application and wires dependencies.
func NewEthioCalApp(a fyne.App, ctx context.Context, srv *server.CalendarServer, fetcher engine.Fetcher) *EthioCalApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	return &EthioCalApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Fetcher:            fetcher,
		Clock:              engine.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
		sourceChan:         make(chan struct{}, config.ChannelBufferSize),
	}
}

// Run launches the application services and the main UI loop.
func (app *EthioCalApp) Run() {
	app.SetupI18n()
	app.watchPreferences()

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyPort, app.Server.Port,
			config.LogKeyComponent, config.CompUI)

		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	go app.backgroundWorker()
	app.App.Run()
}

// watchPreferences wakes the worker on any settings change.
func (app *EthioCalApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefInterval:
		default:
		}
	})
}

func (app *EthioCalApp) setupTrayMenu() {
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowMonthWindow()
	})

	app.TrayMonthItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuMonth), func() {
		app.ShowMonthWindow()
	})

	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		go app.performSync(true)
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayMonthItem,
		app.TrayRefreshItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *EthioCalApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayMonthItem.Label = app.GetMsg(config.TKeyMenuMonth)
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// backgroundWorker runs the periodic sync, re-syncs when a watched local
// source changes, and follows interval and source changes in preferences.
func (app *EthioCalApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.performSync(false)
	app.watchSource()

	getInterval := func() time.Duration {
		val := app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)
		if val <= 0 {
			val = config.DefaultRefreshMin
		}
		return time.Duration(val) * time.Minute
	}

	currentDuration := getInterval()
	ticker := time.NewTicker(currentDuration)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, currentDuration)

	for {
		select {
		case <-app.Ctx.Done():
			app.stopWatching()
			log.Info(config.MsgWorkerStop)
			return

		case <-app.configChan:
			newDuration := getInterval()
			if newDuration != currentDuration {
				log.Info(config.MsgUpdateSync, config.LogKeyOld, currentDuration, config.LogKeyNew, newDuration)
				currentDuration = newDuration
				ticker.Reset(currentDuration)
			}
			app.watchSource()

		case <-app.sourceChan:
			app.performSync(false)

		case <-ticker.C:
			app.performSync(false)
		}
	}
}

// watchSource (re)starts the file watcher when the local source path changes
// and stops it when the source is no longer a local file.
func (app *EthioCalApp) watchSource() {
	path := ""
	if app.Preferences.String(config.PrefSourceMode) == config.SourceModeLocal {
		path = app.Preferences.String(config.PrefLocalPath)
	}
	if path == app.watchedPath {
		return
	}
	app.stopWatching()
	if path == "" {
		return
	}

	w, err := highlight.NewWatcher(path, func() {
		select {
		case app.sourceChan <- struct{}{}:
		default:
		}
	})
	if err != nil {
		slog.Warn(config.ErrWatcherInit,
			config.LogKeyComponent, config.CompWorker,
			config.LogKeyPath, path,
			config.LogKeyError, err)
		return
	}

	ctx, cancel := context.WithCancel(app.Ctx)
	app.watchCancel = cancel
	app.watchedPath = path
	go w.Run(ctx)
}

func (app *EthioCalApp) stopWatching() {
	if app.watchCancel != nil {
		app.watchCancel()
	}
	app.watchCancel = nil
	app.watchedPath = ""
}

// performSync executes the pipeline (Load -> Index -> Render) and publishes
// the result to the server, the tray and the month window.
func (app *EthioCalApp) performSync(manual bool) {
	slog.Info(config.MsgSyncReq,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyManual, manual)

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifStart)))
	}

	cfg := app.loadSyncConfig()

	gen := &engine.Generator{
		Clock:         app.Clock,
		Fetcher:       app.Fetcher,
		Lang:          app.language(),
		GeezDigits:    app.Preferences.Bool(config.PrefGeezDigits),
		FormatSummary: app.buildSummaryFormatter(),
	}

	icsData, idx, countToday, err := gen.RunSync(app.Ctx, cfg)
	if err != nil {
		slog.Error(config.MsgSyncFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.TitleSyncError, app.GetMsg(config.TKeyNotifError)))
		}
		app.updateTrayStatus(-1)
		return
	}

	app.IndexMut.Lock()
	app.Index = idx
	app.IndexMut.Unlock()

	app.Server.Update(icsData)
	app.Server.SetHighlights(idx)
	app.updateTrayStatus(countToday)
	app.refreshMonthWindow()

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifSuccess)))
	}
}

// highlights returns the last synced index; nil before the first sync.
func (app *EthioCalApp) highlights() *highlight.Index {
	app.IndexMut.RLock()
	defer app.IndexMut.RUnlock()
	return app.Index
}

func (app *EthioCalApp) language() string {
	return app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
}

func (app *EthioCalApp) formatter() ethiopic.Formatter {
	return ethiopic.Formatter{
		Lang:       app.language(),
		GeezDigits: app.Preferences.Bool(config.PrefGeezDigits),
	}
}

// updateTrayStatus shows today's Ethiopic date and how many highlights fall
// on it. A negative count marks a failed sync.
func (app *EthioCalApp) updateTrayStatus(count int) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	date := app.formatter().Date(engine.Today(app.Clock))

	var label string
	if count < 0 {
		label = config.FallbackTrayError
	} else {
		lc := &i18n.LocalizeConfig{
			MessageID:    config.TKeyTrayStatus,
			TemplateData: map[string]interface{}{"Date": date, "Count": count},
			PluralCount:  count,
		}
		if count == 0 {
			// Zero has its own single-form message.
			lc.MessageID, lc.PluralCount = config.TKeyTrayStatusZero, nil
		}
		if app.Localizer != nil {
			msg, err := app.Localizer.Localize(lc)
			if err == nil {
				label = msg
			}
		}
		if label == "" {
			label = fmt.Sprintf(config.FallbackTrayDefault, date, count)
		}
	}

	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}

// loadSyncConfig assembles the engine configuration from UI preferences and Keyring.
func (app *EthioCalApp) loadSyncConfig() engine.SyncConfig {
	cfg := engine.SyncConfig{
		Mode:            app.Preferences.StringWithFallback(config.PrefSourceMode, config.SourceModeNone),
		LocalPath:       app.Preferences.String(config.PrefLocalPath),
		WebURL:          app.Preferences.String(config.PrefWebURL),
		WebUser:         app.Preferences.String(config.PrefUsername),
		IncludeDefaults: app.Preferences.BoolWithFallback(config.PrefIncludeDefaults, true),
	}

	if cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}

	if app.Preferences.Bool(config.PrefReminderEnabled) {
		val := app.Preferences.IntWithFallback(config.PrefReminderValue, config.DefaultReminderValue)
		unit := app.Preferences.StringWithFallback(config.PrefReminderUnit, config.UnitDays)
		dir := app.Preferences.StringWithFallback(config.PrefReminderDir, config.DirBefore)
		cfg.ReminderTrigger = reminderTrigger(val, unit, dir)
	}

	return cfg
}

// reminderTrigger builds an ISO8601 duration such as "-P1D" or "P2H".
func reminderTrigger(val int, unit, dir string) string {
	sign := config.ISOPeriodPrefix
	if dir == config.DirBefore {
		sign = config.ISONegativePrefix
	}

	switch unit {
	case config.UnitHours:
		return fmt.Sprintf("%s%d%s", sign, val, config.ISOHour)
	case config.UnitMinutes:
		return fmt.Sprintf("%s%d%s", sign, val, config.ISOMinute)
	default:
		return fmt.Sprintf("%s%d%s", sign, val, config.ISODay)
	}
}

// buildSummaryFormatter returns a closure that localizes the event summary.
func (app *EthioCalApp) buildSummaryFormatter() func(name string, age int, ageKnown bool) string {
	return func(name string, age int, ageKnown bool) string {
		id := config.TKeyEvtSummary
		switch {
		case ageKnown && age == 0:
			id = config.TKeyEvtSummaryBirth
		case ageKnown:
			id = config.TKeyEvtSummaryAge
		}

		var msg string
		err := errors.New(config.ErrLocNotInit)
		if app.Localizer != nil {
			msg, err = app.Localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    id,
				TemplateData: map[string]interface{}{"Name": name, "Age": age},
			})
		}

		if err != nil || msg == "" {
			switch id {
			case config.TKeyEvtSummaryBirth:
				return fmt.Sprintf(config.FallbackSummaryBirth, name)
			case config.TKeyEvtSummaryAge:
				return fmt.Sprintf(config.FallbackSummaryAge, name, age)
			}
			return fmt.Sprintf(config.FallbackSummary, name)
		}
		return msg
	}
}
