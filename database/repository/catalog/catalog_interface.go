package catalogRepo

import (
	"context"
	"errors"

	"washbook/models"
)

var ErrNotFound = errors.New("catalog entry not found")

// CatalogRepository reads vendors, their services and their offers.
type CatalogRepository interface {
	GetVendor(ctx context.Context, id string) (*models.Vendor, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	// GetVendorOffers returns every offer of the vendor, active or not.
	GetVendorOffers(ctx context.Context, vendorID string) ([]models.Offer, error)
}
