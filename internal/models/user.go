package models

import "time"

// User is the business owner profile printed as the issuer on invoice documents.
// Only one profile is active: the row flagged IsPrimary, or the lowest id when none is flagged.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name    string `gorm:"size:255;not null" json:"name"`
	Address string `gorm:"size:500;not null" json:"address"`
	ICO     string `gorm:"column:ico;size:20;not null;uniqueIndex" json:"ico"`
	DICO    string `gorm:"column:dico;size:20;not null;uniqueIndex" json:"dico"`
	Phone   string `gorm:"size:50;not null" json:"phone"`
	Email   string `gorm:"size:255;not null;uniqueIndex" json:"email"`

	IsPrimary bool `gorm:"not null;default:false;index" json:"is_primary"`
}

// ProfileFields is the editable field set of the owner profile.
type ProfileFields = CustomerFields

// Fields returns the editable part of the profile.
func (u *User) Fields() ProfileFields {
	return ProfileFields{
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
		ICO:     u.ICO,
		DICO:    u.DICO,
	}
}

// Apply copies the editable fields onto the profile.
func (u *User) Apply(f ProfileFields) {
	u.Name = f.Name
	u.Email = f.Email
	u.Phone = f.Phone
	u.Address = f.Address
	u.ICO = f.ICO
	u.DICO = f.DICO
}
