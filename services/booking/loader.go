package booking

import (
	"context"
	"fmt"

	"washbook/models"

	"golang.org/x/sync/errgroup"
)

// Catalog is the read-only vendor/service/offer source.
type Catalog interface {
	GetVendor(ctx context.Context, id string) (*models.Vendor, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	GetVendorOffers(ctx context.Context, vendorID string) ([]models.Offer, error)
}

// pricingInputs are the per-customer inputs of a quote.
type pricingInputs struct {
	Offers      []models.Offer
	WalletCoins int
}

// loadPricingInputs fetches the vendor's offers and the customer's wallet
// concurrently. Either failure fails the whole load.
func loadPricingInputs(ctx context.Context, catalog Catalog, users UserReader, vendorID, userID string) (pricingInputs, error) {
	var in pricingInputs
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		offers, err := catalog.GetVendorOffers(gctx, vendorID)
		if err != nil {
			return fmt.Errorf("loading offers: %w", err)
		}
		in.Offers = offers
		return nil
	})
	if userID != "" {
		g.Go(func() error {
			user, err := users.GetByID(gctx, userID)
			if err != nil {
				return fmt.Errorf("loading wallet: %w", err)
			}
			if user != nil {
				in.WalletCoins = user.Wallet.Coins
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return pricingInputs{}, err
	}
	return in, nil
}
