package models

import (
	"time"

	"github.com/samber/lo"
)

// InvoiceStatus represents the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// InvoiceStatuses lists the accepted statuses in form order.
var InvoiceStatuses = []InvoiceStatus{InvoiceStatusPaid, InvoiceStatusPending, InvoiceStatusOverdue}

// Valid reports whether s is one of the known statuses.
func (s InvoiceStatus) Valid() bool {
	return lo.Contains(InvoiceStatuses, s)
}

// StatusOrDefault maps an empty form value to the column default.
// Unknown values are passed through; the database CHECK constraint rejects them.
func StatusOrDefault(raw string) InvoiceStatus {
	if raw == "" {
		return InvoiceStatusPending
	}
	return InvoiceStatus(raw)
}

// Invoice is a single amount billed to a customer.
type Invoice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CustomerID uint      `gorm:"index;not null" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`

	Amount      float64       `gorm:"type:decimal(10,2);not null" json:"amount"`
	InvoiceDate time.Time     `gorm:"type:date;not null" json:"invoice_date"`
	DueDate     time.Time     `gorm:"type:date;not null" json:"due_date"`
	Status      InvoiceStatus `gorm:"size:10;default:'pending';check:status IN ('paid','pending','overdue')" json:"status"`
	InvoiceText string        `gorm:"type:text" json:"invoice_text,omitempty"`
}

// InvoiceFields is the field set replaced wholesale by the update form.
type InvoiceFields struct {
	Amount      float64
	InvoiceDate time.Time
	DueDate     time.Time
	Status      InvoiceStatus
	InvoiceText string
}

// Columns maps the fields to column names for a full (zero values included) update.
func (f InvoiceFields) Columns() map[string]any {
	return map[string]any{
		"amount":       f.Amount,
		"invoice_date": f.InvoiceDate,
		"due_date":     f.DueDate,
		"status":       f.Status,
		"invoice_text": f.InvoiceText,
	}
}

// InvoiceRow is an invoice joined with its customer's name for the dashboard.
// CustomerName is nil when the customer row no longer exists.
type InvoiceRow struct {
	Invoice
	CustomerName *string `gorm:"column:customer_name" json:"customer_name"`
}

// InvoiceDetail is an invoice joined with the customer contact fields.
type InvoiceDetail struct {
	Invoice
	CustomerICO     *string `gorm:"column:customer_ico" json:"customer_ico"`
	CustomerName    *string `gorm:"column:customer_name" json:"customer_name"`
	CustomerEmail   *string `gorm:"column:customer_email" json:"customer_email"`
	CustomerPhone   *string `gorm:"column:customer_phone" json:"customer_phone"`
	CustomerAddress *string `gorm:"column:customer_address" json:"customer_address"`
}
