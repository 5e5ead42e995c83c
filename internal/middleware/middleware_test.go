package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

func langEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(LangFrom(r)))
	})
}

func TestPrefs(t *testing.T) {
	tests := []struct {
		name     string
		fallback string
		target   string
		cookie   string
		accept   string
		want     string
	}{
		{"fallback", "cs", "/", "", "", "cs"},
		{"configured fallback", "en", "/", "", "", "en"},
		{"unknown fallback", "xx", "/", "", "", "cs"},
		{"header", "cs", "/", "", "en-US,en;q=0.9", "en"},
		{"unsupported header", "en", "/", "", "de-DE", "en"},
		{"cookie beats header", "cs", "/", "cs", "en", "cs"},
		{"query beats cookie", "cs", "/?lang=en", "cs", "", "en"},
		{"unsupported query ignored", "cs", "/?lang=xx", "en", "", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "lang", Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rr := httptest.NewRecorder()
			Prefs(tt.fallback)(langEcho()).ServeHTTP(rr, req)
			if rr.Body.String() != tt.want {
				t.Fatalf("lang = %q, want %q", rr.Body.String(), tt.want)
			}
		})
	}
}

func TestPrefsPersistsQueryLanguage(t *testing.T) {
	rr := httptest.NewRecorder()
	Prefs("cs")(langEcho()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?lang=en", nil))
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "lang" || cookies[0].Value != "en" {
		t.Fatalf("expected lang cookie, got %v", cookies)
	}
}

func TestLangFromWithoutMiddleware(t *testing.T) {
	if got := LangFrom(httptest.NewRequest(http.MethodGet, "/", nil)); got != "cs" {
		t.Fatalf("LangFrom = %q", got)
	}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := zlog.Logger
	zlog.Logger = zerolog.New(&buf)
	t.Cleanup(func() { zlog.Logger = prev })
	return &buf
}

func TestRequestLogger(t *testing.T) {
	logs := captureLogs(t)
	var ctxLogged bool
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("inside")
		ctxLogged = true
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/invoice/1", nil))

	id := rr.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected generated request id, got %q", id)
	}
	if !ctxLogged {
		t.Fatalf("handler not called")
	}
	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), logs.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["request_id"] != id || entry["path"] != "/invoice/1" || entry["status"] != float64(http.StatusTeapot) || entry["level"] != "warn" {
		t.Fatalf("unexpected log entry: %v", entry)
	}
	if !strings.Contains(lines[0], id) {
		t.Fatalf("context logger missing request id: %s", lines[0])
	}
}

func TestRequestLoggerKeepsIncomingID(t *testing.T) {
	captureLogs(t)
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, id)
	rr := httptest.NewRecorder()
	RequestLogger(langEcho()).ServeHTTP(rr, req)
	if rr.Header().Get(RequestIDHeader) != id {
		t.Fatalf("request id not propagated")
	}

	req.Header.Set(RequestIDHeader, "not-a-uuid\n")
	rr = httptest.NewRecorder()
	RequestLogger(langEcho()).ServeHTTP(rr, req)
	if rr.Header().Get(RequestIDHeader) == "not-a-uuid\n" {
		t.Fatalf("invalid incoming id should be replaced")
	}
}

func TestRecover(t *testing.T) {
	logs := captureLogs(t)
	h := RequestLogger(Prefs("cs")(Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", rr.Code)
	}
	if rr.Body.String() != "500 - Chyba na straně serveru" {
		t.Fatalf("body = %q", rr.Body.String())
	}
	if !strings.Contains(logs.String(), "handler panic") {
		t.Fatalf("panic not logged: %s", logs.String())
	}
}

func TestRecoverEnglish(t *testing.T) {
	captureLogs(t)
	h := Prefs("en")(Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Body.String() != "500 - Internal server error" {
		t.Fatalf("body = %q", rr.Body.String())
	}
}
