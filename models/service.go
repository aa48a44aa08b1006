package models

// Service is a single wash product sold by a vendor.
type Service struct {
	ID          string  `bson:"id" json:"id"`
	VendorID    string  `bson:"vendorId" json:"vendorId"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description" json:"description,omitempty"`
	CategoryID  string  `bson:"categoryId" json:"categoryId,omitempty"`
	Duration    int     `bson:"duration" json:"duration"`       // minutes
	Price       float64 `bson:"price" json:"price"`             // base price, two-decimal currency
	RewardCoins int     `bson:"rewardCoins" json:"rewardCoins"` // granted when the wash is completed
}
