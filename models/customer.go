package models

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CustomerDetails is the contact snapshot collected during booking.
// Password is only collected when the customer has no session and is never
// persisted with the appointment.
type CustomerDetails struct {
	FirstName    string `bson:"firstName" json:"firstName" validate:"required"`
	LastName     string `bson:"lastName" json:"lastName" validate:"required"`
	Email        string `bson:"email" json:"email" validate:"required"`
	Phone        string `bson:"phone" json:"phone" validate:"required"`
	LicensePlate string `bson:"licensePlate" json:"licensePlate" validate:"required"`
	Password     string `bson:"-" json:"password,omitempty"`
}

// Complete reports whether all mandatory fields are filled in.
func (d CustomerDetails) Complete() bool {
	return validate.Struct(d) == nil
}

// Normalized trims surrounding whitespace from every field except the password.
func (d CustomerDetails) Normalized() CustomerDetails {
	return CustomerDetails{
		FirstName:    strings.TrimSpace(d.FirstName),
		LastName:     strings.TrimSpace(d.LastName),
		Email:        strings.ToLower(strings.TrimSpace(d.Email)),
		Phone:        strings.TrimSpace(d.Phone),
		LicensePlate: strings.ToUpper(strings.TrimSpace(d.LicensePlate)),
		Password:     d.Password,
	}
}

// WithoutPassword returns a copy safe to store or return to clients.
func (d CustomerDetails) WithoutPassword() CustomerDetails {
	d.Password = ""
	return d
}
