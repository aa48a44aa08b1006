package models

import "time"

// ClosedHours is the sentinel stored in both open and close for a day off.
const ClosedHours = "closed"

// DayHours is one row of a vendor's weekly schedule. Open and Close are
// "HH:MM" wall-clock strings or ClosedHours.
type DayHours struct {
	Open  string `bson:"open" json:"open"`
	Close string `bson:"close" json:"close"`
}

// IsClosed reports whether the day is marked as a day off. A row with only
// one side set to ClosedHours counts as closed too.
func (h DayHours) IsClosed() bool {
	return h.Open == ClosedHours || h.Close == ClosedHours
}

// IsAllDay reports whether the vendor operates around the clock on that day.
func (h DayHours) IsAllDay() bool {
	return h.Open == "00:00" && h.Close == "23:59"
}

// OperatingHours is keyed by lowercase English weekday name ("monday").
type OperatingHours map[string]DayHours

type Vendor struct {
	ID             string         `bson:"id" json:"id"`
	Name           string         `bson:"name" json:"name"`
	Address        string         `bson:"address" json:"address,omitempty"`
	City           string         `bson:"city" json:"city,omitempty"`
	OperatingHours OperatingHours `bson:"operatingHours" json:"operatingHours"`
	CreatedAt      time.Time      `bson:"createdAt" json:"createdAt,omitzero"`
}
