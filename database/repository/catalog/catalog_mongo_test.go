package catalogRepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoCatalogRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get vendor", func(mt *mtest.T) {
		repo := NewMongoCatalogRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "washbook.vendors", mtest.FirstBatch, bson.D{
			{Key: "id", Value: "v1"},
			{Key: "name", Value: "Kiilto Pesu"},
			{Key: "operatingHours", Value: bson.D{
				{Key: "sunday", Value: bson.D{{Key: "open", Value: "closed"}, {Key: "close", Value: "closed"}}},
			}},
		}))

		vendor, err := repo.GetVendor(mt.Context(), "v1")
		require.NoError(mt, err)
		assert.Equal(mt, "Kiilto Pesu", vendor.Name)
		assert.True(mt, vendor.OperatingHours["sunday"].IsClosed())
	})

	mt.Run("vendor not found", func(mt *mtest.T) {
		repo := NewMongoCatalogRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "washbook.vendors", mtest.FirstBatch))

		_, err := repo.GetVendor(mt.Context(), "nope")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("service not found", func(mt *mtest.T) {
		repo := NewMongoCatalogRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "washbook.services", mtest.FirstBatch))

		_, err := repo.GetService(mt.Context(), "nope")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("vendor offers", func(mt *mtest.T) {
		repo := NewMongoCatalogRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "washbook.offers", mtest.FirstBatch,
			bson.D{{Key: "id", Value: "o1"}, {Key: "serviceId", Value: "s1"}, {Key: "discountPercentage", Value: 20.0}, {Key: "isActive", Value: true}},
			bson.D{{Key: "id", Value: "o2"}, {Key: "serviceId", Value: "s1"}, {Key: "discountPercentage", Value: 10.0}, {Key: "isActive", Value: false}},
		))

		offers, err := repo.GetVendorOffers(mt.Context(), "v1")
		require.NoError(mt, err)
		require.Len(mt, offers, 2)
		assert.Equal(mt, 20.0, offers[0].DiscountPercentage)
		assert.False(mt, offers[1].IsActive)
	})

	mt.Run("no offers", func(mt *mtest.T) {
		repo := NewMongoCatalogRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "washbook.offers", mtest.FirstBatch))

		offers, err := repo.GetVendorOffers(mt.Context(), "v1")
		require.NoError(mt, err)
		assert.NotNil(mt, offers)
		assert.Empty(mt, offers)
	})
}
