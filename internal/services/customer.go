package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/faktury/internal/models"
)

// CustomerService owns reads and writes of the customers table.
type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

// List returns every customer in insertion order.
func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.WithContext(ctx).Order("id").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// Get returns the customer with the given id or ErrNotFound.
func (s *CustomerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// Create inserts the customer and sets its ID.
func (s *CustomerService) Create(ctx context.Context, c *models.Customer) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

// Update overwrites all editable fields of the customer.
// A missing id is not an error; the statement simply affects no rows.
func (s *CustomerService) Update(ctx context.Context, id uint, f models.CustomerFields) error {
	err := s.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Updates(f.Columns()).Error
	if err != nil {
		return fmt.Errorf("update customer %d: %w", id, err)
	}
	return nil
}

// DeleteCascade removes the customer's invoices and then the customer, in one transaction.
// It returns the number of invoices removed, or ErrNotFound (with nothing removed)
// when the customer does not exist.
func (s *CustomerService) DeleteCascade(ctx context.Context, id uint) (int64, error) {
	var invoicesDeleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("customer_id = ?", id).Delete(&models.Invoice{})
		if res.Error != nil {
			return fmt.Errorf("delete invoices of customer %d: %w", id, res.Error)
		}
		invoicesDeleted = res.RowsAffected

		res = tx.Delete(&models.Customer{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete customer %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return invoicesDeleted, nil
}
