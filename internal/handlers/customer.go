package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/diewo77/faktury/httpx"
	"github.com/diewo77/faktury/internal/models"
	"github.com/diewo77/faktury/internal/services"
	"github.com/diewo77/faktury/view"
)

type CustomerHandler struct {
	customers *services.CustomerService
	registry  Lookuper
}

func NewCustomerHandler(customers *services.CustomerService, registry Lookuper) *CustomerHandler {
	return &CustomerHandler{customers: customers, registry: registry}
}

// New shows the empty customer form with the registry search box.
func (h *CustomerHandler) New(w http.ResponseWriter, r *http.Request) error {
	return view.Render(w, r, "new-customer.html", map[string]any{
		"Title": title(r, "title.new_customer"),
	})
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var c models.Customer
	c.Apply(partyForm(r))
	if err := h.customers.Create(r.Context(), &c); err != nil {
		return err
	}
	httpx.SeeOther(w, r, "/")
	return nil
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) error {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		return err
	}
	return view.Render(w, r, "all-customer.html", map[string]any{
		"Title":     title(r, "title.all_customers"),
		"Customers": customers,
	})
}

func (h *CustomerHandler) Edit(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	c, err := h.customers.Get(r.Context(), id)
	if err != nil {
		return err
	}
	return view.Render(w, r, "edit-customer.html", map[string]any{
		"Title":    title(r, "title.edit_customer"),
		"Customer": c,
	})
}

// Update overwrites all six fields. An unknown id updates nothing and still redirects.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	if err := h.customers.Update(r.Context(), id, partyForm(r)); err != nil {
		return err
	}
	httpx.SeeOther(w, r, "/all-customer")
	return nil
}

// Delete removes the customer together with all of its invoices.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return services.ErrCustomerNotFound
	}
	n, err := h.customers.DeleteCascade(r.Context(), id)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return services.ErrCustomerNotFound
	case err != nil:
		return fail(http.StatusInternalServerError, "customer_delete_failed", err)
	}
	zerolog.Ctx(r.Context()).Info().Uint("customer_id", id).Int64("invoices", n).Msg("customer deleted")
	httpx.SeeOther(w, r, "/all-customer")
	return nil
}

// Search looks the ICO up in the registry and shows the form pre-filled with the result.
func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) error {
	ico := strings.TrimSpace(r.PostFormValue("icoSearch"))
	rec, err := h.registry.Lookup(r.Context(), ico)
	if err != nil {
		return fmt.Errorf("search customer %q: %w", ico, err)
	}
	return view.Render(w, r, "new-customer-search.html", map[string]any{
		"Title": title(r, "title.new_customer"),
		"Data":  rec,
	})
}
