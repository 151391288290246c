package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name       *string            `json:"name" bson:"name" validate:"required"`
	Details    *string            `json:"details" bson:"details" validate:"required"`
	Rating     *float64           `json:"rating" bson:"rating" validate:"required,gte=0,lte=5"`
	Created_at time.Time          `json:"created_at" bson:"created_at"`
}
