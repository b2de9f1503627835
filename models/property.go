package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ActiveStatusActive = "Active"
	ActiveStatusDraft  = "Draft"
)

type Property struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	Price            *float64           `bson:"price,omitempty" json:"price,omitempty"`
	City             string             `bson:"city,omitempty" json:"city,omitempty"`
	Address          string             `bson:"address,omitempty" json:"address,omitempty"`
	BHKType          string             `bson:"bhkType,omitempty" json:"bhkType,omitempty"`
	Furnishing       string             `bson:"furnishing,omitempty" json:"furnishing,omitempty"`
	Bedrooms         *int               `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Bathrooms        *int               `bson:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	SuperBuiltupArea string             `bson:"superBuiltupArea,omitempty" json:"superBuiltupArea,omitempty"`
	Developer        string             `bson:"developer,omitempty" json:"developer,omitempty"`
	Project          string             `bson:"project,omitempty" json:"project,omitempty"`
	TransactionType  string             `bson:"transactionType,omitempty" json:"transactionType,omitempty"`
	Status           string             `bson:"status,omitempty" json:"status,omitempty"`
	ReraID           string             `bson:"reraId,omitempty" json:"reraId,omitempty"`
	ActiveStatus     string             `bson:"activeStatus" json:"activeStatus"`
	Images           []string           `bson:"images" json:"images"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

var (
	bhkTypes         = []string{"1 BHK", "2 BHK", "3 BHK", "4 BHK"}
	furnishings      = []string{"Furnished", "Semi-Furnished", "Unfurnished"}
	transactionTypes = []string{"New", "Resale"}
	statuses         = []string{"Ready to Move", "Under Construction"}
	activeStatuses   = []string{ActiveStatusActive, ActiveStatusDraft}
)

func IsValidBHKType(v string) bool         { return contains(bhkTypes, v) }
func IsValidFurnishing(v string) bool      { return contains(furnishings, v) }
func IsValidTransactionType(v string) bool { return contains(transactionTypes, v) }
func IsValidStatus(v string) bool          { return contains(statuses, v) }
func IsValidActiveStatus(v string) bool    { return contains(activeStatuses, v) }

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

// PropertyListResponse is the single envelope shape for every property
// list endpoint, admin and public alike.
type PropertyListResponse struct {
	Properties []Property `json:"properties"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
}
