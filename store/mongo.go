package store

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/deepak-dots/property-management-system/models"
	"github.com/deepak-dots/property-management-system/query"
)

// Connect opens a mongo client and verifies the connection.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// listSort orders newest first, tie-broken by _id so equal timestamps
// still produce one deterministic partition across pages.
var listSort = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

type MongoPropertyStore struct {
	col *mongo.Collection
}

func NewMongoPropertyStore(col *mongo.Collection) *MongoPropertyStore {
	return &MongoPropertyStore{col: col}
}

func (s *MongoPropertyStore) List(ctx context.Context, f query.Filter, pg query.Page) ([]models.Property, int64, error) {
	predicate := f.BSON()

	total, err := s.col.CountDocuments(ctx, predicate)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(listSort).
		SetSkip(int64(pg.Skip())).
		SetLimit(int64(pg.Limit))

	cursor, err := s.col.Find(ctx, predicate, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, 0, err
	}

	return properties, total, nil
}

func (s *MongoPropertyStore) Get(ctx context.Context, id string) (*models.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var property models.Property
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *MongoPropertyStore) Create(ctx context.Context, p *models.Property) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, p)
	return err
}

// Update replaces the whole document: concurrent edits to one property
// are last-write-wins on the full record.
func (s *MongoPropertyStore) Update(ctx context.Context, p *models.Property) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPropertyStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Related returns up to limit records other than the given one. No
// relevance ranking, any selection satisfying the exclusion will do.
func (s *MongoPropertyStore) Related(ctx context.Context, id string, limit int) ([]models.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$ne": oid}}, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *MongoPropertyStore) DistinctCities(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "city")
}

func (s *MongoPropertyStore) DistinctBHKTypes(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "bhkType")
}

func (s *MongoPropertyStore) distinct(ctx context.Context, field string) ([]string, error) {
	raw, err := s.col.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, err
	}

	values := []string{}
	for _, v := range raw {
		if str, ok := v.(string); ok && str != "" {
			values = append(values, str)
		}
	}
	return values, nil
}

type MongoQuoteStore struct {
	col *mongo.Collection
}

func NewMongoQuoteStore(col *mongo.Collection) *MongoQuoteStore {
	return &MongoQuoteStore{col: col}
}

func (s *MongoQuoteStore) Create(ctx context.Context, q *models.QuoteRequest) error {
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	_, err := s.col.InsertOne(ctx, q)
	return err
}

func (s *MongoQuoteStore) List(ctx context.Context) ([]models.QuoteRequest, error) {
	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(listSort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	quotes := []models.QuoteRequest{}
	if err := cursor.All(ctx, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (s *MongoQuoteStore) Get(ctx context.Context, id string) (*models.QuoteRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var quote models.QuoteRequest
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&quote)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (s *MongoQuoteStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type MongoAccountStore struct {
	col *mongo.Collection
}

func NewMongoAccountStore(col *mongo.Collection) *MongoAccountStore {
	return &MongoAccountStore{col: col}
}

// EnsureIndexes creates the unique email index backing ErrEmailTaken.
func (s *MongoAccountStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoAccountStore) Create(ctx context.Context, a *models.Account) error {
	a.Email = strings.ToLower(a.Email)
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}

	count, err := s.col.CountDocuments(ctx, bson.M{"email": a.Email})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}

	_, err = s.col.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	return err
}

func (s *MongoAccountStore) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := s.col.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *MongoAccountStore) GetByID(ctx context.Context, id string) (*models.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var account models.Account
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}
