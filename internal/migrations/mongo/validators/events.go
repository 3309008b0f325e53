package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "room_id", "owner", "expires_at"},
		"properties": bson.M{
			"_id":        bson.M{"bsonType": "string"},
			"room_id":    bson.M{"bsonType": "string"},
			"owner":      bson.M{"bsonType": "string"},
			"expires_at": bson.M{"bsonType": "date"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}

var BookingEventValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "type", "booking_id", "room_id", "occurred_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":  bson.M{"bsonType": "string"},
			"type": bson.M{
				"bsonType": "string",
				"enum":     []string{"booking.created", "booking.updated", "booking.cancelled"},
			},
			"booking_id":  bson.M{"bsonType": "string"},
			"room_id":     bson.M{"bsonType": "string"},
			"status":      bson.M{"bsonType": "string"},
			"occurred_at": bson.M{"bsonType": "date"},
			"received_at": bson.M{"bsonType": "date"},
		},
	},
}
