package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User's Role is absent for ordinary customers and "admin" for staff.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name       *string            `json:"name" bson:"name"`
	Email      *string            `json:"email" bson:"email" validate:"required,email"`
	Role       *string            `json:"role,omitempty" bson:"role,omitempty"`
	Created_at time.Time          `json:"created_at" bson:"created_at"`
}
