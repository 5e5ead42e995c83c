package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/faktury/internal/models"
)

const formDate = "2006-01-02"

func partyForm(r *http.Request) models.CustomerFields {
	return models.CustomerFields{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Phone:   r.PostFormValue("phone"),
		Address: r.PostFormValue("address"),
		ICO:     r.PostFormValue("ico"),
		DICO:    r.PostFormValue("dico"),
	}
}

// invoiceForm reads the editable invoice fields. Values that cannot be
// converted are returned as errors; nothing else is validated.
func invoiceForm(r *http.Request) (models.InvoiceFields, error) {
	var f models.InvoiceFields
	amount, err := parseAmount(r.PostFormValue("amount"))
	if err != nil {
		return f, err
	}
	issued, err := parseDate("invoice_date", r.PostFormValue("invoice_date"))
	if err != nil {
		return f, err
	}
	due, err := parseDate("due_date", r.PostFormValue("due_date"))
	if err != nil {
		return f, err
	}
	f.Amount = amount
	f.InvoiceDate = issued
	f.DueDate = due
	f.Status = models.StatusOrDefault(r.PostFormValue("status"))
	f.InvoiceText = r.PostFormValue("invoice_text")
	return f, nil
}

// parseAmount accepts a decimal comma as typed in Czech locales.
func parseAmount(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", raw, err)
	}
	return v, nil
}

func parseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(formDate, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s %q: %w", field, raw, err)
	}
	return t, nil
}

func parseCustomerID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("customer_id %q: %w", raw, err)
	}
	return uint(id), nil
}
