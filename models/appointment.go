package models

import "time"

const AppointmentStatusConfirmed = "confirmed"

// Appointment is a confirmed wash reservation. Once written it is owned by
// the persistence layer.
type Appointment struct {
	ID              string          `bson:"id" json:"id"`
	CustomerID      string          `bson:"customerId" json:"customerId"`
	VendorID        string          `bson:"vendorId" json:"vendorId"`
	ServiceID       string          `bson:"serviceId" json:"serviceId"`
	DateTime        time.Time       `bson:"dateTime" json:"dateTime"`
	Status          string          `bson:"status" json:"status"`
	TotalPrice      float64         `bson:"totalPrice" json:"totalPrice"`
	CustomerDetails CustomerDetails `bson:"customerDetails" json:"customerDetails"`
	CoinsUsed       int             `bson:"coinsUsed" json:"coinsUsed"`
	CreatedAt       time.Time       `bson:"createdAt" json:"createdAt"`
}
