package models

// Donor represents the donors table in the database.
type Donor struct {
	ID               int64   `json:"id"`
	Name             *string `json:"name"`
	Age              any     `json:"age"` // whatever the column holds, no coercion
	BloodGroup       *string `json:"blood_group"`
	Contact          *string `json:"contact"`
	City             *string `json:"city"`
	LastDonationDate *string `json:"last_donation_date"`
}

// DonorForm carries the submitted donor fields as received. A nil value is
// stored as NULL.
type DonorForm struct {
	Name             any `json:"name"`
	Age              any `json:"age"`
	BloodGroup       any `json:"blood_group"`
	Contact          any `json:"contact"`
	City             any `json:"city"`
	LastDonationDate any `json:"last_donation_date"`
}
