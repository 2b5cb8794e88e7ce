package models

// Tenant is a person leasing one or more assets.
type Tenant struct {
	FullName      string  `db:"full_name" json:"full_name"`
	NationalID    string  `db:"national_id" json:"national_id"`
	Address       *string `db:"address" json:"address,omitempty"`
	ContactNumber *string `db:"contact_number" json:"contact_number,omitempty"`
	ID            int64   `db:"id" json:"id"`
}
