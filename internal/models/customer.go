package models

// Customer is a business the owner issues invoices to.
// Deleting a customer removes its invoices first (see services.CustomerService.DeleteCascade).
type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:255" json:"name"`
	Email   string `gorm:"size:255" json:"email"`
	Phone   string `gorm:"size:50" json:"phone"`
	Address string `gorm:"size:500" json:"address"`

	// Registration and tax numbers.
	ICO  string `gorm:"column:ico;size:20" json:"ico"`
	DICO string `gorm:"column:dico;size:20" json:"dico"`
}

// CustomerFields is the editable field set shared by the add and update forms.
type CustomerFields struct {
	Name    string
	Email   string
	Phone   string
	Address string
	ICO     string
	DICO    string
}

// Fields returns the editable part of the customer.
func (c *Customer) Fields() CustomerFields {
	return CustomerFields{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
		ICO:     c.ICO,
		DICO:    c.DICO,
	}
}

// Apply copies the editable fields onto the customer.
func (c *Customer) Apply(f CustomerFields) {
	c.Name = f.Name
	c.Email = f.Email
	c.Phone = f.Phone
	c.Address = f.Address
	c.ICO = f.ICO
	c.DICO = f.DICO
}

// Columns maps the fields to column names for a full (zero values included) update.
func (f CustomerFields) Columns() map[string]any {
	return map[string]any{
		"name":    f.Name,
		"email":   f.Email,
		"phone":   f.Phone,
		"address": f.Address,
		"ico":     f.ICO,
		"dico":    f.DICO,
	}
}
