package repository

import (
	"context"
	"fmt"
	"time"

	bookingsrepository "roomly/internal/bookings/repository"
	roomsrepository "roomly/internal/rooms/repository"
	"roomly/pkg/config"
	mongotx "roomly/pkg/db/mongo"
	"roomly/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const millisPerHour = 3600000

type AnalyticsRepository interface {
	// RoomUsage sums hours and revenue of CONFIRMED bookings lying entirely
	// inside [from, to], one row per room with at least one such booking,
	// ordered by room name.
	RoomUsage(ctx context.Context, from, to time.Time) ([]*model.RoomUsage, error)
}

type mongoAnalyticsRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAnalyticsRepository(cfg *config.Config) AnalyticsRepository {
	return &mongoAnalyticsRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(bookingsrepository.CollectionName),
	}
}

func (r *mongoAnalyticsRepository) RoomUsage(ctx context.Context, from, to time.Time) ([]*model.RoomUsage, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Aggregate(ctx, buildUsagePipeline(from, to))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate room usage: %w", err)
	}
	defer cursor.Close(ctx)

	usage := []*model.RoomUsage{}
	if err := cursor.All(ctx, &usage); err != nil {
		return nil, fmt.Errorf("failed to decode room usage: %w", err)
	}
	return usage, nil
}

func buildUsagePipeline(from, to time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "status", Value: model.StatusConfirmed},
			{Key: "start_time", Value: bson.D{{Key: "$gte", Value: from.UTC()}}},
			{Key: "end_time", Value: bson.D{{Key: "$lte", Value: to.UTC()}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$room_id"},
			{Key: "total_ms", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$subtract", Value: bson.A{"$end_time", "$start_time"}},
			}}}},
			{Key: "total_revenue", Value: bson.D{{Key: "$sum", Value: "$total_price"}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: roomsrepository.CollectionName},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "room"},
		}}},
		{{Key: "$unwind", Value: "$room"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "room_id", Value: "$_id"},
			{Key: "room_name", Value: "$room.name"},
			{Key: "total_hours", Value: bson.D{{Key: "$divide", Value: bson.A{"$total_ms", millisPerHour}}}},
			{Key: "total_revenue", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "room_name", Value: 1}, {Key: "room_id", Value: 1}}}},
	}
}
