package models

import "time"

// Wallet holds a customer's loyalty coins. Coins never go negative.
type Wallet struct {
	Coins int `bson:"coins" json:"coins"`
}

// User is a customer account profile.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	FirstName    string    `bson:"firstName" json:"firstName,omitempty"`
	LastName     string    `bson:"lastName" json:"lastName,omitempty"`
	PhoneNumber  string    `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	PasswordHash string    `bson:"passwordHash,omitempty" json:"-"`
	Wallet       Wallet    `bson:"wallet" json:"wallet"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
