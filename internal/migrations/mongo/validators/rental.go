package validators

import "go.mongodb.org/mongo-driver/bson"

var RentalValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"stock_id",
			"status",
			"expected_rental_on",
			"expected_return_on",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"stock_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			// 0 = pending, 1 = rented, 2 = returned, 3 = canceled
			"status": bson.M{
				"bsonType": "int",
				"enum":     []int{0, 1, 2, 3},
			},

			"expected_rental_on": bson.M{"bsonType": "date"},
			"expected_return_on": bson.M{"bsonType": "date"},
		},
	},
}
