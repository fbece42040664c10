/* middleware.go
 * Contains loadResource, the middleware that resolves the {id} path parameter into a stored record before the
 * record handlers run, and the zerolog access log formatter
 * Authors: Zachary Bower
 */

package web

import (
	"context"
	"net/http"
	"time"

	"axe-throwing-api/api/api"
	"axe-throwing-api/api/models"
	"axe-throwing-api/api/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

// resourceKey is the request context key of a loaded record. Each record type gets its own key.
type resourceKey[T any] struct{}

// loadResource resolves {id} with the resource's lookup. The record is passed on in the request context, an unknown
// id responds 404 and a store failure 500.
func loadResource[T models.Document, C models.Creator[T], P models.Patcher[T]](res *api.Resource[T, C, P], rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := res.Load(r.Context(), chi.URLParam(r, "id"))

			switch result.Status {
			case store.Found:
				ctx := context.WithValue(r.Context(), resourceKey[T]{}, result.Record)
				next.ServeHTTP(w, r.WithContext(ctx))
			case store.NotFound:
				writeMessage(rnd, w, http.StatusNotFound, res.NotFoundMessage())
			default:
				writeMessage(rnd, w, http.StatusInternalServerError, result.Err.Error())
			}
		})
	}
}

// recordFrom returns the record loaded by loadResource
func recordFrom[T any](ctx context.Context) (T, bool) {
	rec, ok := ctx.Value(resourceKey[T]{}).(T)
	return rec, ok
}

// accessLogFormatter writes one info line per request for chi's RequestLogger
type accessLogFormatter struct {
	log zerolog.Logger
}

func (f accessLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &accessLogEntry{
		log: f.log.With().
			Str("requestId", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Logger(),
	}
}

type accessLogEntry struct {
	log zerolog.Logger
}

func (e *accessLogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	e.log.Info().
		Int("status", status).
		Int("bytes", bytes).
		Dur("elapsed", elapsed).
		Msg("request")
}

func (e *accessLogEntry) Panic(v interface{}, stack []byte) {
	e.log.Error().Interface("panic", v).Bytes("stack", stack).Msg("request panicked")
}
