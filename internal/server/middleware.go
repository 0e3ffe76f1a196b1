package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/tartampluch/go-ethiocal/internal/config"
)

// requestLogger logs one line per request with its final status.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Debug(config.MsgHTTPRequest,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyMethod, r.Method,
			config.LogKeyPath, r.URL.Path,
			config.LogKeyRemote, r.RemoteAddr,
			config.LogKeyStatus, ww.Status(),
			config.LogKeyDuration, time.Since(start).Milliseconds(),
			config.LogKeyID, middleware.GetReqID(r.Context()),
		)
	})
}

// recoverer turns a handler panic into a 500 envelope and a log line.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				slog.Error(config.HTTPMsgInternalErr,
					config.LogKeyComponent, config.CompServer,
					config.LogKeyPath, r.URL.Path,
					config.LogKeyError, rec,
				)
				writeError(w, http.StatusInternalServerError, config.HTTPMsgInternalErr, config.APICodeInternal)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
