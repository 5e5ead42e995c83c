package handlers

import (
	"net/http"

	"github.com/diewo77/faktury/httpx"
	"github.com/diewo77/faktury/internal/models"
	"github.com/diewo77/faktury/internal/pdf"
	"github.com/diewo77/faktury/internal/services"
	"github.com/diewo77/faktury/view"
)

type InvoiceHandler struct {
	invoices  *services.InvoiceService
	customers *services.CustomerService
}

func NewInvoiceHandler(invoices *services.InvoiceService, customers *services.CustomerService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, customers: customers}
}

// Dashboard lists every invoice with its customer's name and the grand total.
func (h *InvoiceHandler) Dashboard(w http.ResponseWriter, r *http.Request) error {
	rows, err := h.invoices.ListWithCustomer(r.Context())
	if err != nil {
		return err
	}
	total, err := h.invoices.Total(r.Context())
	if err != nil {
		return err
	}
	return view.Render(w, r, "index.html", map[string]any{
		"Title":       title(r, "title.invoices"),
		"Invoices":    rows,
		"TotalAmount": total,
	})
}

func (h *InvoiceHandler) View(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	inv, err := h.invoices.Detail(r.Context(), id)
	if err != nil {
		return err
	}
	return view.Render(w, r, "invoice.html", map[string]any{
		"Title":   title(r, "title.invoice"),
		"Invoice": inv,
	})
}

func (h *InvoiceHandler) New(w http.ResponseWriter, r *http.Request) error {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		return err
	}
	return view.Render(w, r, "new-invoice.html", map[string]any{
		"Title":     title(r, "title.new_invoice"),
		"Customers": customers,
	})
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) error {
	customerID, err := parseCustomerID(r.PostFormValue("customer_id"))
	if err != nil {
		return err
	}
	f, err := invoiceForm(r)
	if err != nil {
		return err
	}
	inv := models.Invoice{
		CustomerID:  customerID,
		Amount:      f.Amount,
		InvoiceDate: f.InvoiceDate,
		DueDate:     f.DueDate,
		Status:      f.Status,
		InvoiceText: f.InvoiceText,
	}
	if err := h.invoices.Create(r.Context(), &inv); err != nil {
		return err
	}
	httpx.SeeOther(w, r, "/")
	return nil
}

// Update replaces amount, dates, status and text. An unknown id updates nothing and still redirects.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	f, err := invoiceForm(r)
	if err != nil {
		return err
	}
	if err := h.invoices.Update(r.Context(), id, f); err != nil {
		return err
	}
	httpx.SeeOther(w, r, "/")
	return nil
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	if err := h.invoices.Delete(r.Context(), id); err != nil {
		return err
	}
	httpx.SeeOther(w, r, "/")
	return nil
}

// Download streams the invoice document as a PDF attachment.
func (h *InvoiceHandler) Download(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return services.ErrInvoiceNotFound
	}
	parts, err := h.invoices.DocumentParts(r.Context(), id)
	if err != nil {
		return err
	}
	httpx.Attachment(w, "application/pdf", pdf.Filename(parts.Invoice.ID))
	if err := pdf.Render(w, parts.User, parts.Customer, parts.Invoice); err != nil {
		w.Header().Del("Content-Disposition")
		return fail(http.StatusInternalServerError, "pdf_failed", err)
	}
	return nil
}
