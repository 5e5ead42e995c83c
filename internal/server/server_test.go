package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/faktury/internal/db"
	"github.com/diewo77/faktury/internal/models"
	"github.com/diewo77/faktury/internal/registry"
	"github.com/diewo77/faktury/internal/services"
)

type env struct {
	app  *App
	db   *gorm.DB
	ares *httptest.Server
}

func newEnv(t *testing.T) *env {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(conn))

	ares := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ekonomicke-subjekty/27074358" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"ico":"27074358","obchodniJmeno":"Asseco Central Europe, a.s.","adresaDorucovaci":{"radekAdresy1":"Budějovická 778/3a","radekAdresy2":"Michle","radekAdresy3":"14000 Praha 4"}}`))
	}))
	t.Cleanup(ares.Close)

	app := NewApp(conn, registry.New(ares.URL, time.Second), Options{DefaultLang: "cs", Dev: true})
	return &env{app: app, db: conn, ares: ares}
}

func (e *env) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	e.app.ServeHTTP(rr, req)
	return rr
}

func (e *env) seedCustomer(t *testing.T) models.Customer {
	t.Helper()
	c := models.Customer{Name: "Acme", ICO: "12345678"}
	require.NoError(t, services.NewCustomerService(e.db).Create(context.Background(), &c))
	return c
}

func TestAddCustomerRedirectsAndLists(t *testing.T) {
	e := newEnv(t)
	form := url.Values{"name": {"Nová Firma"}, "email": {"a@b.cz"}, "phone": {"1"}, "address": {"Praha"}, "ico": {"1"}, "dico": {"CZ1"}}

	rr := e.do(http.MethodPost, "/add-customer", form)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	rr = e.do(http.MethodGet, "/all-customer", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Nová Firma")
}

func TestMissingInvoiceIs404(t *testing.T) {
	e := newEnv(t)
	rr := e.do(http.MethodGet, "/invoice/999999", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "404 - Stránka nenalezena", rr.Body.String())
}

func TestUnmatchedRoutes(t *testing.T) {
	e := newEnv(t)
	for _, tc := range []struct{ method, target string }{
		{http.MethodGet, "/nope"},
		{http.MethodPost, "/new-customer"},
		{http.MethodGet, "/add-customer"},
		{http.MethodGet, "/invoice/"},
	} {
		rr := e.do(tc.method, tc.target, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code, "%s %s", tc.method, tc.target)
		assert.Equal(t, "404 - Stránka nenalezena", rr.Body.String())
	}

	rr := e.do(http.MethodGet, "/nope?lang=en", nil)
	assert.Equal(t, "404 - Page not found", rr.Body.String())
}

func TestSearchCustomer(t *testing.T) {
	e := newEnv(t)

	rr := e.do(http.MethodPost, "/search-customer", url.Values{"icoSearch": {"27074358"}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "Asseco Central Europe, a.s.")
	assert.Contains(t, rr.Body.String(), "Budějovická 778/3a, Michle, 14000 Praha 4")

	rr = e.do(http.MethodPost, "/search-customer?lang=en", url.Values{"icoSearch": {"00000001"}})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "No subject with this ICO was found in ARES", rr.Body.String())

	e.ares.Close()
	rr = e.do(http.MethodPost, "/search-customer?lang=en", url.Values{"icoSearch": {"27074358"}})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Failed to fetch customer data from ARES API", rr.Body.String())
}

func TestDashboardTotalGrows(t *testing.T) {
	e := newEnv(t)
	c := e.seedCustomer(t)

	rr := e.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `<span id="total">0.00</span>`)

	for _, amount := range []string{"100", "250.25"} {
		rr = e.do(http.MethodPost, "/add-invoice", url.Values{
			"customer_id": {fmt.Sprint(c.ID)}, "amount": {amount},
			"invoice_date": {"2024-01-01"}, "due_date": {"2024-01-31"}, "status": {"pending"},
		})
		require.Equal(t, http.StatusSeeOther, rr.Code, rr.Body.String())
	}

	rr = e.do(http.MethodGet, "/", nil)
	assert.Contains(t, rr.Body.String(), `<th class="num" id="total">350.25</th>`)
}

func TestDownloadInvoice(t *testing.T) {
	e := newEnv(t)
	c := e.seedCustomer(t)
	require.NoError(t, services.NewUserService(e.db).Create(context.Background(), &models.User{Name: "Owner", ICO: "1", DICO: "CZ1", Email: "o@x.cz"}))
	inv := models.Invoice{CustomerID: c.ID, Amount: 10, InvoiceDate: time.Now(), DueDate: time.Now()}
	require.NoError(t, services.NewInvoiceService(e.db).Create(context.Background(), &inv))

	rr := e.do(http.MethodGet, fmt.Sprintf("/download-invoice/%d", inv.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Equal(t, fmt.Sprintf(`attachment; filename="invoice_%d.pdf"`, inv.ID), rr.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rr.Body.String(), "%PDF-"))

	rr = e.do(http.MethodGet, "/download-invoice/424242?lang=en", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Invoice not found", rr.Body.String())
}

func TestDeleteCustomerCascadesThroughRouter(t *testing.T) {
	e := newEnv(t)
	c := e.seedCustomer(t)
	inv := models.Invoice{CustomerID: c.ID, Amount: 10, InvoiceDate: time.Now(), DueDate: time.Now()}
	require.NoError(t, services.NewInvoiceService(e.db).Create(context.Background(), &inv))

	rr := e.do(http.MethodGet, fmt.Sprintf("/delete-customer/%d", c.ID), nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/all-customer", rr.Header().Get("Location"))

	var n int64
	require.NoError(t, e.db.Model(&models.Invoice{}).Count(&n).Error)
	assert.Zero(t, n)

	rr = e.do(http.MethodGet, fmt.Sprintf("/delete-customer/%d?lang=en", c.ID), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Customer not found", rr.Body.String())
}

func TestHealthz(t *testing.T) {
	e := newEnv(t)
	rr := e.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	sqlDB, err := e.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	rr = e.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"status":"degraded"}`, rr.Body.String())
}

func TestStaticAndRequestID(t *testing.T) {
	e := newEnv(t)
	rr := e.do(http.MethodGet, "/static/app.css", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/css")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestPagesRender(t *testing.T) {
	e := newEnv(t)
	c := e.seedCustomer(t)
	for _, target := range []string{"/", "/new-customer", "/all-customer", "/set-user", "/new-invoice", fmt.Sprintf("/edit-customer/%d", c.ID)} {
		rr := e.do(http.MethodGet, target, nil)
		assert.Equal(t, http.StatusOK, rr.Code, target)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/html", target)
	}
}
