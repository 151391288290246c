package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// Status values are part of the wire format consumed by the client;
	// the mixed casing is load-bearing.
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "Success"
)

type PaymentRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         *string            `json:"email" bson:"email" validate:"required,email"`
	Price         *float64           `json:"price" bson:"price"`
	TransactionID string             `json:"transactionId" bson:"transactionId"`
	CartIDs       []string           `json:"cartIds" bson:"cartIds"`
	MenuItemIDs   []string           `json:"menuItemIds" bson:"menuItemIds"`
	Status        string             `json:"status" bson:"status"`
	Date          time.Time          `json:"date" bson:"date"`
}
