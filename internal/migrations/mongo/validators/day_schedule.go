package validators

import "go.mongodb.org/mongo-driver/bson"

// gridLabelPattern is a coarse schema-level guard for half-hour time labels.
// The application layer enforces membership in the actual grid.
const gridLabelPattern = `^(0[1-9]|1[0-2]):(00|30) (AM|PM)$`

const datePattern = `^\d{4}-\d{2}-\d{2}$`

var DayScheduleValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"course_id",
			"lecturer_id",
			"date",
			"open_start_times",
			"booked_granules",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"course_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"lecturer_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  datePattern,
			},

			"open_start_times": bson.M{
				"bsonType": "array",
				"maxItems": 25,
				"items": bson.M{
					"bsonType": "string",
					"pattern":  gridLabelPattern,
				},
			},

			"booked_granules": bson.M{
				"bsonType": "array",
				"maxItems": 25,
				"items": bson.M{
					"bsonType": "string",
					"pattern":  gridLabelPattern,
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
