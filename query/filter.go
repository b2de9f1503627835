package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/deepak-dots/property-management-system/models"
)

// ErrBadNumber reports a priceMin/priceMax value that does not parse as
// a number. Handlers map it to a 400 rather than dropping the bound.
var ErrBadNumber = errors.New("invalid numeric filter value")

// Filter is the compiled form of the optional property list parameters.
// A zero-value field imposes no constraint; all supplied fields must
// match (logical AND).
type Filter struct {
	Search          string
	City            string
	BHKType         string
	Furnishing      string
	Status          string
	TransactionType string
	PriceMin        *float64
	PriceMax        *float64
}

// ParseFilter builds a Filter from a query-parameter getter. Empty
// values are treated the same as absent ones.
func ParseFilter(get func(string) string) (Filter, error) {
	f := Filter{
		Search:          get("search"),
		City:            get("city"),
		BHKType:         get("bhkType"),
		Furnishing:      get("furnishing"),
		Status:          get("status"),
		TransactionType: get("transactionType"),
	}

	if v := get("priceMin"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: priceMin=%q", ErrBadNumber, v)
		}
		f.PriceMin = &min
	}
	if v := get("priceMax"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: priceMax=%q", ErrBadNumber, v)
		}
		f.PriceMax = &max
	}

	return f, nil
}

// BSON compiles the filter into a mongo predicate.
func (f Filter) BSON() bson.M {
	query := bson.M{}

	if f.Search != "" {
		query["title"] = bson.M{"$regex": f.Search, "$options": "i"}
	}
	if f.City != "" {
		query["city"] = f.City
	}
	if f.BHKType != "" {
		query["bhkType"] = f.BHKType
	}
	if f.Furnishing != "" {
		query["furnishing"] = f.Furnishing
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.TransactionType != "" {
		query["transactionType"] = f.TransactionType
	}
	if f.PriceMin != nil {
		query["price"] = bson.M{"$gte": *f.PriceMin}
	}
	if f.PriceMax != nil {
		if existing, ok := query["price"].(bson.M); ok {
			existing["$lte"] = *f.PriceMax
		} else {
			query["price"] = bson.M{"$lte": *f.PriceMax}
		}
	}

	return query
}

// Matches evaluates the same predicate in memory. It must agree with
// BSON under mongo's semantics: a record with no price never satisfies
// a price bound.
func (f Filter) Matches(p *models.Property) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Search)) {
		return false
	}
	if f.City != "" && p.City != f.City {
		return false
	}
	if f.BHKType != "" && p.BHKType != f.BHKType {
		return false
	}
	if f.Furnishing != "" && p.Furnishing != f.Furnishing {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.TransactionType != "" && p.TransactionType != f.TransactionType {
		return false
	}
	if f.PriceMin != nil && (p.Price == nil || *p.Price < *f.PriceMin) {
		return false
	}
	if f.PriceMax != nil && (p.Price == nil || *p.Price > *f.PriceMax) {
		return false
	}
	return true
}
