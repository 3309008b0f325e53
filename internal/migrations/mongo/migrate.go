package mongo

import (
	"context"
	"fmt"
	"time"

	"roomly/internal/migrations/mongo/validators"
	"roomly/pkg/logger"
	"roomly/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	RoomsCollection         = "Rooms"
	BookingsCollection      = "Bookings"
	BookingLocksCollection  = "Booking_locks"
	BookingEventsCollection = "Booking_events"
)

var (
	RoomsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}

	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "room_id", Value: 1},
			{Key: "status", Value: 1},
			{Key: "start_time", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "start_time", Value: 1},
			{Key: "end_time", Value: 1},
		}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	// Stale locks are also reclaimed on acquire; the TTL index only keeps the collection small.
	BookingLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	BookingEventsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "booking_id", Value: 1}, {Key: "occurred_at", Value: 1}}},
	}
)

// SeedRooms is the fixed room inventory.
var SeedRooms = []model.Room{
	{ID: "101", Name: "Cabin 1", BaseHourlyRate: 500, Capacity: 4},
	{ID: "102", Name: "Cabin 2", BaseHourlyRate: 600, Capacity: 6},
	{ID: "103", Name: "Conference Hall", BaseHourlyRate: 1000, Capacity: 20},
	{ID: "104", Name: "Meeting Room A", BaseHourlyRate: 750, Capacity: 8},
	{ID: "105", Name: "Meeting Room B", BaseHourlyRate: 800, Capacity: 10},
}

type collectionDef struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

var collections = []collectionDef{
	{Name: RoomsCollection, Indexes: RoomsIndexes, Validator: validators.RoomValidator},
	{Name: BookingsCollection, Indexes: BookingsIndexes, Validator: validators.BookingValidator},
	{Name: BookingLocksCollection, Indexes: BookingLocksIndexes, Validator: validators.BookingLockValidator},
	{Name: BookingEventsCollection, Indexes: BookingEventsIndexes, Validator: validators.BookingEventValidator},
}

// RunMigration creates collections, validators and indexes, then seeds rooms.
// Every step is safe to re-run.
func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running Mongo migrations", "database", dbName)

	for _, def := range collections {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	if err := seedRooms(ctx, db.Collection(RoomsCollection), log); err != nil {
		return fmt.Errorf("failed to seed rooms: %w", err)
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if len(models) == 0 {
		return nil
	}
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}

// seedRooms inserts missing rooms and leaves existing ones untouched.
func seedRooms(ctx context.Context, coll *mongo.Collection, log *logger.Logger) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	writes := make([]mongo.WriteModel, 0, len(SeedRooms))
	for _, room := range SeedRooms {
		room.CreatedAt = now
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": room.ID}).
			SetUpdate(bson.M{"$setOnInsert": room}).
			SetUpsert(true))
	}

	result, err := coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return err
	}
	log.Info("Seeded rooms", "inserted", result.UpsertedCount, "total", len(SeedRooms))
	return nil
}
