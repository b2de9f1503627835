package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuoteRequest is a visitor enquiry tied to one property. The property
// reference is stored as given and not checked for existence.
type QuoteRequest struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PropertyID    string             `bson:"propertyId" json:"propertyId"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	ContactNumber string             `bson:"contactNumber" json:"contactNumber"`
	Message       string             `bson:"message" json:"message"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

type CreateQuoteRequest struct {
	PropertyID    string `json:"propertyId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	Message       string `json:"message"`
}
