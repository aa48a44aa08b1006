package models

import "time"

// Offer is a time-bounded percentage discount on one service.
type Offer struct {
	ID                 string    `bson:"id" json:"id"`
	VendorID           string    `bson:"vendorId" json:"vendorId"`
	ServiceID          string    `bson:"serviceId" json:"serviceId"`
	DiscountPercentage float64   `bson:"discountPercentage" json:"discountPercentage"`
	IsActive           bool      `bson:"isActive" json:"isActive"`
	StartDate          time.Time `bson:"startDate" json:"startDate"`
	EndDate            time.Time `bson:"endDate" json:"endDate"`
}

// AppliesTo reports whether the offer discounts serviceID at instant now.
// Both ends of the validity window are inclusive.
func (o Offer) AppliesTo(serviceID string, now time.Time) bool {
	if !o.IsActive || o.ServiceID != serviceID {
		return false
	}
	return !now.Before(o.StartDate) && !now.After(o.EndDate)
}
