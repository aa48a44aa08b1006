package models

import "time"

// BookingSession is the persisted state of one booking modal. It lives in
// Redis between requests and is discarded on close or after success.
type BookingSession struct {
	ID            string          `json:"id"`
	VendorID      string          `json:"vendorId"`
	ServiceID     string          `json:"serviceId"`
	OwnerID       string          `json:"ownerId,omitempty"` // set once an authenticated customer touches the session
	Step          string          `json:"step"`
	Date          string          `json:"date,omitempty"` // YYYY-MM-DD
	Time          string          `json:"time,omitempty"` // HH:MM
	Details       CustomerDetails `json:"details"`
	UseCoins      bool            `json:"useCoins"`
	AppointmentID string          `json:"appointmentId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
