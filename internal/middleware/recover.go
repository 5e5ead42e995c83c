package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/diewo77/faktury/httpx"
	"github.com/diewo77/faktury/i18n"
)

// Recover turns a panic into the localized 500 response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			zerolog.Ctx(r.Context()).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("path", r.URL.Path).
				Msg("handler panic")
			httpx.Text(w, http.StatusInternalServerError, i18n.T(LangFrom(r), "server_error"))
		}()
		next.ServeHTTP(w, r)
	})
}
