package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name       *string            `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Recipe     *string            `json:"recipe" bson:"recipe"`
	Image      *string            `json:"image" bson:"image"`
	Category   *string            `json:"category" bson:"category" validate:"required,min=2,max=50"`
	Price      *float64           `json:"price" bson:"price" validate:"required,gt=0"`
	Created_at time.Time          `json:"created_at" bson:"created_at"`
	Updated_at time.Time          `json:"updated_at" bson:"updated_at"`
}
