package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"course_id",
			"lecturer_id",
			"student_id",
			"student_name",
			"student_email",
			"date",
			"start_time",
			"duration_hours",
			"granules",
			"format",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
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

			"student_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"student_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 128,
			},

			"student_email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  datePattern,
			},

			"start_time": bson.M{
				"bsonType": "string",
				"pattern":  gridLabelPattern,
			},

			"duration_hours": bson.M{
				"bsonType": "int",
				"enum":     []int{1, 2},
			},

			"granules": bson.M{
				"bsonType": "array",
				"minItems": 2,
				"maxItems": 4,
				"items": bson.M{
					"bsonType": "string",
					"pattern":  gridLabelPattern,
				},
			},

			"format": bson.M{
				"bsonType": "string",
				"enum":     []string{"online", "physical"},
			},

			"receipt_url": bson.M{
				"bsonType":  "string",
				"maxLength": 2048,
			},

			"note": bson.M{
				"bsonType":  "string",
				"maxLength": 512,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum":     []string{"pending", "confirmed", "rejected", "cancelled"},
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
