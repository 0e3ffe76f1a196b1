package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tartampluch/go-ethiocal/internal/config"
	"github.com/tartampluch/go-ethiocal/internal/highlight"
)

// cacheItem stores the rendered calendar and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123, as HTTP headers require
}

// CalendarServer serves the generated ICS feed and the JSON calendar API.
//
// The feed and the highlight index are swapped atomically on every sync, so
// the read path never takes a lock.
type CalendarServer struct {
	cache      atomic.Pointer[cacheItem]
	highlights atomic.Pointer[highlight.Index]

	Port string
	Bind string

	// Now is the API's notion of "today". Defaults to time.Now.
	Now func() time.Time
}

// NewCalendarServer creates a server listening on localhost.
func NewCalendarServer(port string) *CalendarServer {
	return &CalendarServer{
		Port: port,
		Bind: config.LocalhostBindAddr,
		Now:  time.Now,
	}
}

// Start runs the HTTP server and blocks until ctx is cancelled.
func (s *CalendarServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	addr := s.Bind + config.AddrSeparator + s.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyAddr, addr,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Handler builds the router:
//
//	GET|HEAD /  and  /calendar.ics          ICS feed
//	GET /api/v1/today
//	GET /api/v1/month/{year}/{month}
//	GET /api/v1/week/{date}?year=&month=
//	GET /api/v1/convert/{calendar}/{date}
//	GET /api/v1/numeral/{value}
//	GET /api/v1/numerals
//
// API routes accept ?geez=true and ?lang=am.
func (s *CalendarServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(recoverer)
	r.Use(requestLogger)

	// The feed handler checks methods itself so it can answer with Allow.
	r.HandleFunc(config.RouteRoot, s.handleCalendarRequest)
	r.HandleFunc(config.RouteCalendar, s.handleCalendarRequest)

	r.Route(config.RouteAPI, func(r chi.Router) {
		r.Get(config.RouteToday, s.handleToday)
		r.Get(config.RouteMonth, s.handleMonth)
		r.Get(config.RouteWeek, s.handleWeek)
		r.Get(config.RouteConvert, s.handleConvert)
		r.Get(config.RouteNumeral, s.handleNumeral)
		r.Get(config.RouteNumerals, s.handleNumerals)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeNotFound(w, config.HTTPMsgNotFound)
	})
	return r
}

// Update atomically replaces the served feed.
func (s *CalendarServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	s.cache.Store(&cacheItem{
		data:         data,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// SetHighlights atomically replaces the index used by the JSON API.
func (s *CalendarServer) SetHighlights(idx *highlight.Index) {
	s.highlights.Store(idx)
	slog.Debug(config.MsgIndexUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyHighlights, idx.Len(),
	)
}

// provider may return nil; a nil *Index answers with no highlights.
func (s *CalendarServer) provider() *highlight.Index {
	return s.highlights.Load()
}

// handleCalendarRequest serves the ICS content with HTTP caching support.
func (s *CalendarServer) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if notModified(r, item) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// notModified evaluates If-None-Match, then If-Modified-Since.
func notModified(r *http.Request, item *cacheItem) bool {
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		return match == item.etag
	}
	since := r.Header.Get(config.HeaderIfModifiedSince)
	if since == "" {
		return false
	}
	clientTime, err := time.Parse(http.TimeFormat, since)
	if err != nil {
		return false
	}
	serverTime, err := time.Parse(http.TimeFormat, item.lastModified)
	if err != nil {
		return false
	}
	return !serverTime.After(clientTime)
}
