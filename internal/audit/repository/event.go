package repository

import (
	"context"
	"fmt"
	"time"

	"roomly/pkg/config"
	mongotx "roomly/pkg/db/mongo"
	"roomly/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Booking_events"

type EventRepository interface {
	// Save stores event once; a redelivered event id leaves the first copy in place.
	Save(ctx context.Context, event *model.BookingEvent) (inserted bool, err error)
}

type mongoEventRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoEventRepository(cfg *config.Config) EventRepository {
	return &mongoEventRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(CollectionName),
	}
}

func (r *mongoEventRepository) Save(ctx context.Context, event *model.BookingEvent) (bool, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if event.ReceivedAt.IsZero() {
		event.ReceivedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	opts := options.Update().SetUpsert(true)
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": event.EventID},
		bson.M{"$setOnInsert": event},
		opts,
	)
	if err != nil {
		return false, fmt.Errorf("failed to save booking event %s: %w", event.EventID, err)
	}
	return result.UpsertedCount > 0, nil
}
