package booking

import (
	"math"
	"time"

	"washbook/models"
)

// CoinValue is the currency value of one loyalty coin.
const CoinValue = 0.5

// floorEpsilon absorbs float error so 1.0/0.5 floors to 2, not 1.
const floorEpsilon = 1e-9

// Quote is the single pricing computation a booking is shown and charged
// with. Amounts are unrounded; call Rounded for presentation or storage.
type Quote struct {
	BasePrice          float64 `json:"basePrice"`
	DiscountPercentage float64 `json:"discountPercentage"`
	DiscountedPrice    float64 `json:"discountedPrice"`
	WalletCoins        int     `json:"walletCoins"`
	UseCoins           bool    `json:"useCoins"`
	CoinsApplied       int     `json:"coinsApplied"`
	Redemption         float64 `json:"redemption"`
	FinalPrice         float64 `json:"finalPrice"`
}

// Rounded returns a copy with every amount rounded to cents.
func (q Quote) Rounded() Quote {
	q.BasePrice = Round2(q.BasePrice)
	q.DiscountedPrice = Round2(q.DiscountedPrice)
	q.Redemption = Round2(q.Redemption)
	q.FinalPrice = Round2(q.FinalPrice)
	return q
}

// ResolveDiscount picks the highest discount among offers that apply to
// serviceID at now. Ties keep the earliest offer. Zero means no discount.
func ResolveDiscount(serviceID string, offers []models.Offer, now time.Time) float64 {
	best := 0.0
	for _, o := range offers {
		if !o.AppliesTo(serviceID, now) {
			continue
		}
		if pct := clampPercentage(o.DiscountPercentage); pct > best {
			best = pct
		}
	}
	return best
}

// RedeemableCoins is the number of coins that can be spent against price.
func RedeemableCoins(price float64, walletCoins int) int {
	if price <= 0 || walletCoins <= 0 {
		return 0
	}
	byPrice := int(math.Floor(price/CoinValue + floorEpsilon))
	return min(walletCoins, byPrice)
}

// Calculate prices one booking. Coins are only applied when useCoins is set
// and the wallet has a positive balance.
func Calculate(service models.Service, offers []models.Offer, walletCoins int, useCoins bool, now time.Time) Quote {
	pct := ResolveDiscount(service.ID, offers, now)
	discounted := service.Price * (1 - pct/100)

	q := Quote{
		BasePrice:          service.Price,
		DiscountPercentage: pct,
		DiscountedPrice:    discounted,
		WalletCoins:        max(0, walletCoins),
		UseCoins:           useCoins,
		FinalPrice:         discounted,
	}
	if !useCoins || walletCoins <= 0 {
		return q
	}

	q.CoinsApplied = RedeemableCoins(discounted, walletCoins)
	q.Redemption = float64(q.CoinsApplied) * CoinValue
	q.FinalPrice = math.Max(0, discounted-q.Redemption)
	return q
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampPercentage(p float64) float64 {
	return math.Min(100, math.Max(0, p))
}
