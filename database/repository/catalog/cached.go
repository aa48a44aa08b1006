package catalogRepo

import (
	"context"
	"time"

	"washbook/models"

	"github.com/patrickmn/go-cache"
)

// CachedCatalog memoizes vendors and services, which change rarely. Offers
// are always read through so that activation changes apply immediately.
type CachedCatalog struct {
	next  CatalogRepository
	cache *cache.Cache
}

func NewCachedCatalog(next CatalogRepository, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{next: next, cache: cache.New(ttl, 2*ttl)}
}

func (c *CachedCatalog) GetVendor(ctx context.Context, id string) (*models.Vendor, error) {
	if v, found := c.cache.Get("vendor:" + id); found {
		return v.(*models.Vendor), nil
	}
	vendor, err := c.next.GetVendor(ctx, id)
	if err != nil {
		return nil, err
	}
	c.cache.Set("vendor:"+id, vendor, cache.DefaultExpiration)
	return vendor, nil
}

func (c *CachedCatalog) GetService(ctx context.Context, id string) (*models.Service, error) {
	if s, found := c.cache.Get("service:" + id); found {
		return s.(*models.Service), nil
	}
	service, err := c.next.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	c.cache.Set("service:"+id, service, cache.DefaultExpiration)
	return service, nil
}

func (c *CachedCatalog) GetVendorOffers(ctx context.Context, vendorID string) ([]models.Offer, error) {
	return c.next.GetVendorOffers(ctx, vendorID)
}
