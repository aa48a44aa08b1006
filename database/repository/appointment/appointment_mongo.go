package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"washbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo writes appointments and debits wallets stored on
// the users collection.
type MongoAppointmentRepo struct {
	appointments *mongo.Collection
	users        *mongo.Collection
}

func NewMongoAppointmentRepo(db *mongo.Database) *MongoAppointmentRepo {
	return &MongoAppointmentRepo{
		appointments: db.Collection("appointments"),
		users:        db.Collection("users"),
	}
}

// EnsureIndexes creates indexes for fields frequently used in queries.
func (r *MongoAppointmentRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.appointments.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "dateTime", Value: -1}}},
		{Keys: bson.D{{Key: "vendorId", Value: 1}, {Key: "dateTime", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}

// CreateWithDebit stores the appointment. With a positive coin debit the
// insert and the wallet update run in one transaction.
func (r *MongoAppointmentRepo) CreateWithDebit(ctx context.Context, appt *models.Appointment, coins int) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if coins <= 0 {
		if _, err := r.appointments.InsertOne(ctx, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	sess, err := r.appointments.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		// The filter refuses the debit if it would take the wallet below zero.
		filter := bson.M{"id": appt.CustomerID, "wallet.coins": bson.M{"$gte": coins}}
		update := bson.M{
			"$inc": bson.M{"wallet.coins": -coins},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		}
		res, err := r.users.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("wallet debit failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrInsufficientCoins
		}

		if _, err := r.appointments.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("appointment transaction failed: %w", err)
	}
	return nil
}
