package validators

import "go.mongodb.org/mongo-driver/bson"

var BookValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "title"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},
			"title": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 255,
			},
		},
	},
}
