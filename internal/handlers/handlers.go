// Package handlers implements the HTTP endpoints, one handler type per entity.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/diewo77/faktury/httpx"
	"github.com/diewo77/faktury/i18n"
	"github.com/diewo77/faktury/internal/middleware"
	"github.com/diewo77/faktury/internal/registry"
	"github.com/diewo77/faktury/internal/services"
)

// Lookuper finds a company in the business registry by ICO.
type Lookuper interface {
	Lookup(ctx context.Context, ico string) (*registry.Record, error)
}

// Func is a handler that returns its failure instead of writing it.
// ServeHTTP turns the error into the matching plain-text response.
type Func func(w http.ResponseWriter, r *http.Request) error

func (f Func) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := f(w, r)
	if err == nil {
		return
	}
	e := classify(err)
	ev := zerolog.Ctx(r.Context()).Debug()
	if e.Status >= http.StatusInternalServerError {
		ev = zerolog.Ctx(r.Context()).Error()
	}
	ev.Err(err).Int("status", e.Status).Str("path", r.URL.Path).Msg("request failed")
	httpx.Text(w, e.Status, i18n.T(middleware.LangFrom(r), e.Code))
}

// Error is a handler failure carrying the response status and message code.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Code
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func fail(status int, code string, err error) error {
	return &Error{Status: status, Code: code, Err: err}
}

func classify(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	switch {
	case errors.Is(err, services.ErrInvoiceNotFound):
		return &Error{Status: http.StatusNotFound, Code: "invoice_not_found", Err: err}
	case errors.Is(err, services.ErrCustomerNotFound):
		return &Error{Status: http.StatusNotFound, Code: "customer_not_found", Err: err}
	case errors.Is(err, services.ErrProfileNotFound):
		return &Error{Status: http.StatusNotFound, Code: "user_not_found", Err: err}
	case errors.Is(err, services.ErrNotFound):
		return &Error{Status: http.StatusNotFound, Code: "page_not_found", Err: err}
	case errors.Is(err, registry.ErrNotFound):
		return &Error{Status: http.StatusInternalServerError, Code: "registry_not_found", Err: err}
	case errors.Is(err, registry.ErrLookupFailed):
		return &Error{Status: http.StatusInternalServerError, Code: "registry_failed", Err: err}
	default:
		return &Error{Status: http.StatusInternalServerError, Code: "server_error", Err: err}
	}
}

// NotFound answers like an unmatched route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	httpx.Text(w, http.StatusNotFound, i18n.T(middleware.LangFrom(r), "page_not_found"))
}

// pathID parses the {id} wildcard. A malformed id is reported as ErrNotFound.
func pathID(r *http.Request) (uint, error) {
	return parseID(r.PathValue("id"))
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("id %q: %w", raw, services.ErrNotFound)
	}
	return uint(id), nil
}

func title(r *http.Request, code string) string {
	return i18n.T(middleware.LangFrom(r), code)
}
