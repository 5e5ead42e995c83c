package middleware

import (
	"context"
	"net/http"

	"github.com/diewo77/faktury/i18n"
)

type ctxKey string

const ctxLang ctxKey = "pref_lang"

const langCookieMaxAge = 86400 * 30

// Prefs resolves the language preference (query > cookie > Accept-Language > fallback)
// and stores it in the request context. A language chosen via ?lang= is kept in a cookie.
func Prefs(fallback string) func(http.Handler) http.Handler {
	if !i18n.Supports(fallback) {
		fallback = i18n.Default
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if c, err := r.Cookie("lang"); err == nil && i18n.Supports(c.Value) {
				lang = c.Value
			}
			if ql := r.URL.Query().Get("lang"); i18n.Supports(ql) {
				lang = ql
				http.SetCookie(w, &http.Cookie{Name: "lang", Value: lang, Path: "/", MaxAge: langCookieMaxAge, HttpOnly: true})
			}
			if lang == "" {
				if hl, ok := i18n.Match(r.Header.Get("Accept-Language")); ok {
					lang = hl
				} else {
					lang = fallback
				}
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxLang, lang)))
		})
	}
}

// LangFrom returns language preference from context or fallback.
func LangFrom(r *http.Request) string {
	if v, ok := r.Context().Value(ctxLang).(string); ok && v != "" {
		return v
	}
	return i18n.Default
}
