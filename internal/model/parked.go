package model

import "time"

// ParkedCart is a frozen copy of an in-progress cart, set aside under a note
// so the register can serve the next customer.
type ParkedCart struct {
	ID        string     `json:"id"`
	Note      string     `json:"note"`
	CreatedAt time.Time  `json:"created_at"`
	Items     []CartLine `json:"items"`
}
