package customer

import "time"

// BannedCustomer blocks future orders from a phone number. The phone
// number is the identity; the name and reason are for the admin's benefit.
type BannedCustomer struct {
	ID          uint      `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Name        *string   `json:"name,omitempty"`
	Reason      *string   `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
