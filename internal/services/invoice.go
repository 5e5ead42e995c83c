package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/faktury/internal/models"
)

// InvoiceService owns reads and writes of the invoices table.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// ListWithCustomer returns all invoices with their customer's name.
// Invoices whose customer is gone are kept with a nil name.
func (s *InvoiceService) ListWithCustomer(ctx context.Context) ([]models.InvoiceRow, error) {
	var rows []models.InvoiceRow
	err := s.db.WithContext(ctx).Model(&models.Invoice{}).
		Select("invoices.*, customers.name AS customer_name").
		Joins("LEFT JOIN customers ON customers.id = invoices.customer_id").
		Order("invoices.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return rows, nil
}

// Total returns the sum of all invoice amounts, 0 when there are none.
func (s *InvoiceService) Total(ctx context.Context) (float64, error) {
	var total float64
	row := s.db.WithContext(ctx).Model(&models.Invoice{}).Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("sum invoice amounts: %w", err)
	}
	return total, nil
}

// Detail returns one invoice joined with its customer's contact fields, or ErrNotFound.
func (s *InvoiceService) Detail(ctx context.Context, id uint) (*models.InvoiceDetail, error) {
	var d models.InvoiceDetail
	res := s.db.WithContext(ctx).Model(&models.Invoice{}).
		Select("invoices.*, customers.ico AS customer_ico, customers.name AS customer_name, " +
			"customers.email AS customer_email, customers.phone AS customer_phone, customers.address AS customer_address").
		Joins("LEFT JOIN customers ON customers.id = invoices.customer_id").
		Where("invoices.id = ?", id).
		Limit(1).
		Scan(&d)
	if res.Error != nil {
		return nil, fmt.Errorf("load invoice %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &d, nil
}

// Get returns the invoice row without joins, or ErrNotFound.
func (s *InvoiceService) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.db.WithContext(ctx).First(&inv, id).Error; err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

// Create inserts the invoice. An empty status falls back to pending.
// Referencing a missing customer fails with the database's foreign key error.
func (s *InvoiceService) Create(ctx context.Context, inv *models.Invoice) error {
	if inv.Status == "" {
		inv.Status = models.InvoiceStatusPending
	}
	if err := s.db.WithContext(ctx).Create(inv).Error; err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

// Update replaces all editable fields of the invoice.
func (s *InvoiceService) Update(ctx context.Context, id uint, f models.InvoiceFields) error {
	if f.Status == "" {
		f.Status = models.InvoiceStatusPending
	}
	err := s.db.WithContext(ctx).Model(&models.Invoice{}).Where("id = ?", id).Updates(f.Columns()).Error
	if err != nil {
		return fmt.Errorf("update invoice %d: %w", id, err)
	}
	return nil
}

// Delete removes one invoice, or returns ErrNotFound.
func (s *InvoiceService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Invoice{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete invoice %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DocumentParts is everything the invoice document prints.
type DocumentParts struct {
	Invoice  models.Invoice
	Customer models.Customer
	User     models.User
}

// DocumentParts loads the invoice, its customer and the owner profile.
// The returned error is ErrInvoiceNotFound, ErrCustomerNotFound or ErrProfileNotFound
// when the corresponding row is missing.
func (s *InvoiceService) DocumentParts(ctx context.Context, id uint) (*DocumentParts, error) {
	db := s.db.WithContext(ctx)
	var p DocumentParts

	if err := db.First(&p.Invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("load invoice %d: %w", id, err)
	}
	if err := db.First(&p.Customer, p.Invoice.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("load customer %d: %w", p.Invoice.CustomerID, err)
	}
	user, err := NewUserService(s.db).Primary(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("load owner profile: %w", err)
	}
	p.User = *user
	return &p, nil
}
