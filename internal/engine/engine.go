package engine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-ethiocal/internal/config"
	"github.com/tartampluch/go-ethiocal/internal/ethiopic"
	"github.com/tartampluch/go-ethiocal/internal/highlight"
)

// SyncConfig contains all parameters required to perform a synchronization.
type SyncConfig struct {
	Mode            string // config.SourceModeNone, SourceModeLocal or SourceModeWeb
	LocalPath       string // .json, .yaml, .toml or .vcf file
	WebURL          string // Remote file; the extension picks the decoder, vCard otherwise
	WebUser         string // HTTP Basic Auth Username
	WebPass         string // HTTP Basic Auth Password
	ReminderTrigger string // ISO8601 duration string (e.g., "-P1D")
	IncludeDefaults bool   // Merge the built-in public holidays under the source
}

// Generator loads highlights and renders them as an iCalendar feed.
type Generator struct {
	Clock   Clock
	Fetcher Fetcher

	// Lang picks highlight display names ("en" or "am").
	Lang       string
	GeezDigits bool

	// FormatSummary lets the UI inject localized event titles.
	FormatSummary func(name string, age int, ageKnown bool) string
}

type syncStats struct {
	records, occurrences, today int
}

// RunSync loads the configured source, indexes it and renders the feed.
// It returns the ICS data, the index (for the UI and API), the number of
// highlights falling today, and any error.
func (g *Generator) RunSync(ctx context.Context, cfg SyncConfig) ([]byte, *highlight.Index, int, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgSyncStarted)

	idx, err := g.LoadIndex(ctx, cfg)
	if err != nil {
		return nil, nil, 0, err
	}

	ics, today, err := g.Render(ctx, idx, cfg.ReminderTrigger)
	if err != nil {
		return nil, nil, 0, err
	}

	log.Debug(config.MsgSyncFinished, config.LogKeyDuration, time.Since(start).Milliseconds())
	return ics, idx, today, nil
}

// LoadIndex reads the configured source and indexes it with the built-in
// holidays when enabled. Invalid records are logged and left out.
func (g *Generator) LoadIndex(ctx context.Context, cfg SyncConfig) (*highlight.Index, error) {
	records, err := g.loadRecords(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx, err := highlight.NewIndex(records)
	if err != nil {
		// The valid remainder is still served.
		slog.Warn(config.ErrHighlightInvalid,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyError, err)
	}
	return idx, nil
}

// loadRecords merges the built-in holidays (when enabled) with the source.
func (g *Generator) loadRecords(ctx context.Context, cfg SyncConfig) ([]highlight.Highlight, error) {
	var defaults []highlight.Highlight
	if cfg.IncludeDefaults {
		var err error
		if defaults, err = highlight.Defaults(); err != nil {
			return nil, err
		}
	}

	user, err := g.acquireRecords(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrSourceRead, err)
	}

	records := highlight.Merge(defaults, user)
	slog.Debug(config.MsgHighlightsRead,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyTotal, len(records))
	return records, nil
}

// acquireRecords reads the user's highlight source.
func (g *Generator) acquireRecords(ctx context.Context, cfg SyncConfig) ([]highlight.Highlight, error) {
	switch cfg.Mode {
	case config.SourceModeNone, "":
		return nil, nil
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return highlight.Load(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if g.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		format, err := highlight.FormatFromName(cfg.WebURL)
		if err != nil {
			// CardDAV collection URLs rarely carry an extension.
			format = highlight.FormatVCard
		}
		body, err := g.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
		if err != nil {
			return nil, err
		}
		defer func() { _ = body.Close() }()
		return highlight.Decode(body, format)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// Render builds the iCalendar feed for the Ethiopic years around today and
// counts the highlights falling today. An empty index yields a minimal valid
// calendar.
func (g *Generator) Render(ctx context.Context, idx *highlight.Index, reminderTrigger string) ([]byte, int, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	today := Today(g.Clock)
	stats := syncStats{records: idx.Len()}

	for y := today.Year() - config.FeedYearSpan; y <= today.Year()+config.FeedYearSpan; y++ {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		occurrences, err := idx.Occurrences(y)
		if err != nil {
			// Years before 1 have no occurrences.
			continue
		}
		for _, occ := range occurrences {
			event := g.createEvent(occ, reminderTrigger)
			event.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, event.Component)
			stats.occurrences++

			if occ.Date == today {
				stats.today++
				slog.Info(config.MsgHighlightToday,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyName, occ.Highlight.Name,
					config.LogKeyDate, occ.Date.Key())
			}
		}
	}

	if len(cal.Children) == 0 {
		logSuccess(stats)
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	logSuccess(stats)
	return buf.Bytes(), stats.today, nil
}

func logSuccess(stats syncStats) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.records),
			slog.Int(config.LogKeyFound, stats.occurrences),
			slog.Int(config.LogKeyToday, stats.today),
		),
	)
}

// createEvent renders one occurrence as an all-day VEVENT.
func (g *Generator) createEvent(occ highlight.Occurrence, reminderTrigger string) *ical.Event {
	h := occ.Highlight
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, eventUID(h.Key(), occ.Date))

	name := h.DisplayName(g.Lang)
	summary := fmt.Sprintf(config.FallbackSummary, name)
	if g.FormatSummary != nil {
		summary = g.FormatSummary(name, occ.Age, occ.AgeKnown && occ.Age >= 0)
	}
	event.Props.SetText(config.PropSummary, summary)

	formatter := ethiopic.Formatter{Lang: g.Lang, GeezDigits: g.GeezDigits}
	greg := occ.Date.Gregorian()
	event.Props.SetText(config.PropDescription,
		fmt.Sprintf(config.FormatEventDesc, formatter.Date(occ.Date), ethiopic.FormatGregorianDate(greg)))

	if h.Category != "" {
		event.Props.SetText(config.PropCategories, h.Category)
	}

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(greg.Time())
	event.Props.Set(dtStartProp)

	if reminderTrigger != "" {
		addAlarm(event, reminderTrigger, summary)
	}
	return event
}

// eventUID is stable across refreshes for the same record and day.
func eventUID(id string, d ethiopic.EthiopicDate) string {
	input := fmt.Sprintf(config.FormatHashInput, id, d.Key(), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, hash[:config.UIDHashLength], config.ICalDomain)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Raw value, so no VALUE=TEXT parameter is emitted.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
