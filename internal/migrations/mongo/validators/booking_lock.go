package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"day_key",
			"holder_id",
			"created_at",
			"expires_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"day_key": bson.M{
				"bsonType":  "string",
				"minLength": 5,
			},

			"holder_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"expires_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
