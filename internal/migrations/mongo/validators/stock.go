package validators

import "go.mongodb.org/mongo-driver/bson"

var StockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"book_id",
			"status",
			"price",
			"created_at",
			"updated_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"book_id": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			// 0 = available, 1 = unavailable
			"status": bson.M{
				"bsonType": "int",
				"enum":     []int{0, 1},
			},

			"price": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"created_at": bson.M{"bsonType": "date"},
			"updated_at": bson.M{"bsonType": "date"},
			"deleted_at": bson.M{"bsonType": []string{"date", "null"}},
		},
	},
}
