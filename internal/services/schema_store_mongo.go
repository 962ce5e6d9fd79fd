package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SchemaCollection matches the collection name used by existing deployments.
const SchemaCollection = "uischemas"

// MongoSchemaStore keeps schemas as documents. The component payload lives in
// the "schema" field for compatibility with documents written by earlier
// versions of the service.
type MongoSchemaStore struct {
	coll *mongo.Collection
}

var _ SchemaStore = (*MongoSchemaStore)(nil)

type schemaDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Components  []models.Component `bson:"schema,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func NewMongoSchemaStore(db *mongo.Database) *MongoSchemaStore {
	return &MongoSchemaStore{coll: db.Collection(SchemaCollection)}
}

func (s *MongoSchemaStore) Migrate(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("name_unique"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("createdAt_desc"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes on %s: %w", SchemaCollection, err)
	}
	return nil
}

func (s *MongoSchemaStore) List(ctx context.Context, limit int) ([]models.SchemaSummary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.D{
			{Key: "name", Value: 1},
			{Key: "description", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "updatedAt", Value: 1},
		})

	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summaries := []models.SchemaSummary{}
	for cursor.Next(ctx) {
		var doc schemaDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		summaries = append(summaries, doc.toModel().Summary())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *MongoSchemaStore) Get(ctx context.Context, id string) (*models.UISchema, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var doc schemaDocument
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	schema := doc.toModel()
	return &schema, nil
}

func (s *MongoSchemaStore) NameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	filter := bson.D{{Key: "name", Value: name}}
	if excludeID != "" {
		oid, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return false, ErrInvalidID
		}
		filter = append(filter, bson.E{Key: "_id", Value: bson.D{{Key: "$ne", Value: oid}}})
	}

	count, err := s.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *MongoSchemaStore) Create(ctx context.Context, schema *models.UISchema) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	if schema.CreatedAt.IsZero() {
		schema.CreatedAt = now
	}
	if schema.UpdatedAt.IsZero() {
		schema.UpdatedAt = now
	}

	doc, err := newSchemaDocument(schema)
	if err != nil {
		return err
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *MongoSchemaStore) Update(ctx context.Context, schema *models.UISchema) (*models.UISchema, error) {
	oid, err := primitive.ObjectIDFromHex(schema.ID)
	if err != nil {
		return nil, ErrInvalidID
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: schema.Name},
		{Key: "description", Value: schema.Description},
		{Key: "schema", Value: []models.Component(schema.Components)},
		{Key: "updatedAt", Value: time.Now().UTC().Truncate(time.Millisecond)},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc schemaDocument
	err = s.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	updated := doc.toModel()
	return &updated, nil
}

func (s *MongoSchemaStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func newSchemaDocument(schema *models.UISchema) (*schemaDocument, error) {
	oid, err := primitive.ObjectIDFromHex(schema.ID)
	if err != nil {
		return nil, ErrInvalidID
	}
	return &schemaDocument{
		ID:          oid,
		Name:        schema.Name,
		Description: schema.Description,
		Components:  schema.Components,
		CreatedAt:   schema.CreatedAt,
		UpdatedAt:   schema.UpdatedAt,
	}, nil
}

func (d schemaDocument) toModel() models.UISchema {
	return models.UISchema{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Components:  d.Components,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
