package catalogRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"washbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCatalogRepo implements CatalogRepository over the vendors, services
// and offers collections.
type MongoCatalogRepo struct {
	vendors  *mongo.Collection
	services *mongo.Collection
	offers   *mongo.Collection
}

func NewMongoCatalogRepo(db *mongo.Database) *MongoCatalogRepo {
	return &MongoCatalogRepo{
		vendors:  db.Collection("vendors"),
		services: db.Collection("services"),
		offers:   db.Collection("offers"),
	}
}

// EnsureIndexes creates the lookup indexes.
func (r *MongoCatalogRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)
	if _, err := r.vendors.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique}); err != nil {
		return fmt.Errorf("failed to create vendor indexes: %w", err)
	}
	if _, err := r.services.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "vendorId", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create service indexes: %w", err)
	}
	if _, err := r.offers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "vendorId", Value: 1}, {Key: "serviceId", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to create offer indexes: %w", err)
	}
	return nil
}

func (r *MongoCatalogRepo) GetVendor(ctx context.Context, id string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := findOne(ctx, r.vendors, id, &vendor); err != nil {
		return nil, fmt.Errorf("vendor %s: %w", id, err)
	}
	return &vendor, nil
}

func (r *MongoCatalogRepo) GetService(ctx context.Context, id string) (*models.Service, error) {
	var service models.Service
	if err := findOne(ctx, r.services, id, &service); err != nil {
		return nil, fmt.Errorf("service %s: %w", id, err)
	}
	return &service, nil
}

func (r *MongoCatalogRepo) GetVendorOffers(ctx context.Context, vendorID string) ([]models.Offer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.offers.Find(ctx, bson.M{"vendorId": vendorID})
	if err != nil {
		return nil, fmt.Errorf("failed to query offers for vendor %s: %w", vendorID, err)
	}
	defer cursor.Close(ctx)

	offers := []models.Offer{}
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, fmt.Errorf("failed to decode offers for vendor %s: %w", vendorID, err)
	}
	return offers, nil
}

func findOne(ctx context.Context, coll *mongo.Collection, id string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := coll.FindOne(ctx, bson.M{"id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
