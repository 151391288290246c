package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartEntry denormalizes name/image/price from the referenced menu item so
// the cart page renders without a join.
type CartEntry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	MenuItemID    *string            `json:"menuItemId" bson:"menuItemId" validate:"required"`
	CustomerEmail *string            `json:"customerEmail" bson:"customerEmail" validate:"required,email"`
	Name          *string            `json:"name" bson:"name"`
	Image         *string            `json:"image" bson:"image"`
	Price         *float64           `json:"price" bson:"price"`
	Created_at    time.Time          `json:"created_at" bson:"created_at"`
}
