// Package server wires the handlers, middleware and fallbacks into one http.Handler.
package server

import (
	"net/http"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"github.com/diewo77/faktury/httpx"
	"github.com/diewo77/faktury/i18n"
	"github.com/diewo77/faktury/internal/handlers"
	"github.com/diewo77/faktury/internal/middleware"
	"github.com/diewo77/faktury/internal/services"
	"github.com/diewo77/faktury/view"
)

// Options tune the application handler.
type Options struct {
	DefaultLang string
	Dev         bool
	StaticDir   string // detected when empty
}

// App is the main application handler that sets up all routes.
type App struct {
	mux     *http.ServeMux
	handler http.Handler
	db      *gorm.DB

	customers *handlers.CustomerHandler
	invoices  *handlers.InvoiceHandler
	users     *handlers.UserHandler
	staticDir string
}

// NewApp creates the application with all routes configured.
func NewApp(db *gorm.DB, registry handlers.Lookuper, opts Options) *App {
	customerSvc := services.NewCustomerService(db)
	app := &App{
		mux:       http.NewServeMux(),
		db:        db,
		customers: handlers.NewCustomerHandler(customerSvc, registry),
		invoices:  handlers.NewInvoiceHandler(services.NewInvoiceService(db), customerSvc),
		users:     handlers.NewUserHandler(services.NewUserService(db)),
		staticDir: opts.StaticDir,
	}
	if app.staticDir == "" {
		app.staticDir = detectStatic()
	}
	lang := opts.DefaultLang
	if !i18n.Supports(lang) {
		lang = i18n.Default
	}
	view.SetLangResolver(middleware.LangFrom)
	view.SetDevMode(opts.Dev)

	app.setupRoutes()
	app.handler = middleware.RequestLogger(middleware.Prefs(lang)(middleware.Recover(app.mux)))
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

func (a *App) setupRoutes() {
	ch, ih, uh := a.customers, a.invoices, a.users

	a.mux.Handle("GET /{$}", handlers.Func(ih.Dashboard))

	// Customers
	a.mux.Handle("GET /new-customer", handlers.Func(ch.New))
	a.mux.Handle("POST /add-customer", handlers.Func(ch.Create))
	a.mux.Handle("GET /all-customer", handlers.Func(ch.List))
	a.mux.Handle("GET /edit-customer/{id}", handlers.Func(ch.Edit))
	a.mux.Handle("POST /update-customer/{id}", handlers.Func(ch.Update))
	a.mux.Handle("GET /delete-customer/{id}", handlers.Func(ch.Delete))
	a.mux.Handle("POST /search-customer", handlers.Func(ch.Search))

	// Owner profile
	a.mux.Handle("GET /set-user", handlers.Func(uh.Edit))
	a.mux.Handle("POST /add-user", handlers.Func(uh.Create))
	a.mux.Handle("POST /update-user", handlers.Func(uh.Update))

	// Invoices
	a.mux.Handle("GET /invoice/{id}", handlers.Func(ih.View))
	a.mux.Handle("GET /new-invoice", handlers.Func(ih.New))
	a.mux.Handle("POST /add-invoice", handlers.Func(ih.Create))
	a.mux.Handle("POST /update-invoice/{id}", handlers.Func(ih.Update))
	a.mux.Handle("GET /delete-invoice/{id}", handlers.Func(ih.Delete))
	a.mux.Handle("GET /download-invoice/{id}", handlers.Func(ih.Download))

	a.mux.HandleFunc("GET /healthz", a.healthz)
	a.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(a.staticDir))))

	a.mux.HandleFunc("/", handlers.NotFound)
}

// healthz performs a lightweight DB check (SELECT 1).
func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	if err := a.db.WithContext(r.Context()).Exec("SELECT 1").Error; err != nil {
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func detectStatic() string {
	for _, c := range []string{"static", "../static", "../../static"} {
		if fi, err := os.Stat(c); err == nil && fi.IsDir() {
			return filepath.Clean(c)
		}
	}
	return "static"
}
