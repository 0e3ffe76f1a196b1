package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-ethiocal/internal/config"
	"github.com/tartampluch/go-ethiocal/internal/engine"
	"github.com/tartampluch/go-ethiocal/internal/ethiopic"
	"github.com/tartampluch/go-ethiocal/internal/highlight"
)

// displayFlags are shared by every command that prints dates.
type displayFlags struct {
	geez bool
	lang string
}

func (f *displayFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.geez, config.FlagGeez, false, config.FlagDescGeez)
	cmd.Flags().StringVar(&f.lang, config.FlagLang, ethiopic.LangEnglish, config.FlagDescLang)
}

func (f *displayFlags) formatter() (ethiopic.Formatter, error) {
	lang := strings.ToLower(f.lang)
	if lang != ethiopic.LangEnglish && lang != ethiopic.LangAmharic {
		return ethiopic.Formatter{}, errors.New(config.ErrLangUnknown)
	}
	return ethiopic.Formatter{Lang: lang, GeezDigits: f.geez}, nil
}

// sourceFlags select where highlights come from.
type sourceFlags struct {
	source     string
	noDefaults bool
}

func (f *sourceFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.source, config.FlagSource, "", config.FlagDescSource)
	cmd.Flags().BoolVar(&f.noDefaults, config.FlagNoDefault, false, config.FlagDescNoDefault)
}

func (f *sourceFlags) syncConfig() engine.SyncConfig {
	return syncConfigFor(f.source, "", "", !f.noDefaults)
}

// syncConfigFor maps a source string onto a sync mode: http(s) URLs are
// fetched, anything else is a local file and an empty source means the
// built-in holidays only.
func syncConfigFor(source, user, pass string, includeDefaults bool) engine.SyncConfig {
	cfg := engine.SyncConfig{
		Mode:            config.SourceModeNone,
		IncludeDefaults: includeDefaults,
	}
	switch {
	case source == "":
	case isURL(source):
		cfg.Mode = config.SourceModeWeb
		cfg.WebURL = source
		cfg.WebUser = user
		cfg.WebPass = pass
	default:
		cfg.Mode = config.SourceModeLocal
		cfg.LocalPath = source
	}
	return cfg
}

func isURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, config.SchemeHTTP+config.SchemeSeparator) ||
		strings.HasPrefix(lower, config.SchemeHTTPS+config.SchemeSeparator)
}

// clock decides "today" for every command.
var clock engine.Clock = engine.RealClock{}

// newGenerator builds a generator fetching over HTTP.
func newGenerator(f ethiopic.Formatter) *engine.Generator {
	return &engine.Generator{
		Clock:      clock,
		Fetcher:    engine.NewHTTPFetcher(),
		Lang:       f.Lang,
		GeezDigits: f.GeezDigits,
	}
}

// loadHighlights indexes the selected source for the grid commands.
func loadHighlights(ctx context.Context, gen *engine.Generator, src *sourceFlags) (*highlight.Index, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return gen.LoadIndex(ctx, src.syncConfig())
}
