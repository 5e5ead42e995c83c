package db

import "github.com/diewo77/faktury/internal/models"

// Models returns the persisted models in dependency order.
func Models() []any {
	return []any{&models.Customer{}, &models.User{}, &models.Invoice{}}
}
