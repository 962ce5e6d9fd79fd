package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/database"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestSchemaDocumentLayout(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	schema := &models.UISchema{
		ID:          NewSchemaID(),
		Name:        "Landing",
		Description: "hero and signup",
		Components:  []models.Component{{"type": "text", "content": "Welcome"}},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	doc, err := newSchemaDocument(schema)
	require.NoError(t, err)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var fields bson.M
	require.NoError(t, bson.Unmarshal(raw, &fields))
	assert.Contains(t, fields, "_id")
	assert.Contains(t, fields, "schema")
	assert.Contains(t, fields, "createdAt")
	assert.NotContains(t, fields, "components")

	var decoded schemaDocument
	require.NoError(t, bson.Unmarshal(raw, &decoded))

	back := decoded.toModel()
	assert.Equal(t, schema.ID, back.ID)
	assert.Equal(t, schema.Name, back.Name)
	assert.Equal(t, schema.Description, back.Description)
	assert.True(t, now.Equal(back.CreatedAt))
	require.Len(t, back.Components, 1)
	assert.Equal(t, "Welcome", back.Components[0]["content"])
}

func TestNewSchemaDocumentRejectsBadID(t *testing.T) {
	_, err := newSchemaDocument(&models.UISchema{ID: "not-an-id"})
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestSchemaIDs(t *testing.T) {
	id := NewSchemaID()
	assert.Len(t, id, 24)
	assert.True(t, ValidSchemaID(id))
	assert.NotEqual(t, id, NewSchemaID())
	assert.False(t, ValidSchemaID("ZZZZZZZZZZZZZZZZZZZZZZZZ"))
}

func mockNamespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func schemaBSON(id primitive.ObjectID, name string, at time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "description", Value: "stored"},
		{Key: "schema", Value: bson.A{bson.D{{Key: "type", Value: "text"}, {Key: "content", Value: "Hi"}}}},
		{Key: "createdAt", Value: at},
		{Key: "updatedAt", Value: at},
	}
}

func TestMongoSchemaStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mt.Run("get returns the stored document", func(mt *mtest.T) {
		store := &MongoSchemaStore{coll: mt.Coll}
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockNamespace(mt), mtest.FirstBatch, schemaBSON(id, "Landing", at)))

		schema, err := store.Get(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), schema.ID)
		assert.Equal(mt, "Landing", schema.Name)
		assert.True(mt, at.Equal(schema.CreatedAt))
		require.Len(mt, schema.Components, 1)
		assert.Equal(mt, "Hi", schema.Components[0]["content"])
	})

	mt.Run("get maps a missing document to not found", func(mt *mtest.T) {
		store := &MongoSchemaStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockNamespace(mt), mtest.FirstBatch))

		_, err := store.Get(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("get rejects a malformed id without a round trip", func(mt *mtest.T) {
		store := &MongoSchemaStore{coll: mt.Coll}

		_, err := store.Get(context.Background(), "abc")
		assert.ErrorIs(mt, err, ErrInvalidID)
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("list sorts newest first and projects out components", func(mt *mtest.T) {
		store := &MongoSchemaStore{coll: mt.Coll}
		newer, older := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockNamespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: newer}, {Key: "name", Value: "B"}, {Key: "description", Value: ""}, {Key: "createdAt", Value: at.Add(time.Minute)}, {Key: "updatedAt", Value: at.Add(time.Minute)}},
			bson.D{{Key: "_id", Value: older}, {Key: "name", Value: "A"}, {Key: "description", Value: "first"}, {Key: "createdAt", Value: at}, {Key: "updatedAt", Value: at}},
		))

		summaries, err := store.List(context.Background(), SchemaListLimit)
		require.NoError(mt, err)
		require.Len(mt, summaries, 2)
		assert.Equal(mt, newer.Hex(), summaries[0].ID)
		assert.Equal(mt, "A", summaries[1].Name)
		assert.Equal(mt, "first", summaries[1].Description)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
		cmd := started.Command

		sort := cmd.Lookup("sort").Document()
		keys, err := sort.Elements()
		require.NoError(mt, err)
		require.Len(mt, keys, 2)
		assert.Equal(mt, "createdAt", keys[0].Key())
		assert.Equal(mt, int64(-1), keys[0].Value().AsInt64())
		assert.Equal(mt, "_id", keys[1].Key())

		assert.Equal(mt, int64(SchemaListLimit), cmd.Lookup("limit").AsInt64())

		projection := cmd.Lookup("projection").Document()
		_, err = projection.LookupErr("name")
		assert.NoError(mt, err)
		_, err = projection.LookupErr("schema")
		assert.Error(mt, err)
	})

	mt.Run("list of an empty collection is empty not nil", func(mt *mtest.T) {
		store := &MongoSchemaStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockNamespace(mt), mtest.FirstBatch))

		summaries, err := store.List(context.Background(), SchemaListLimit)
		require.NoError(mt, err)
		assert.NotNil(mt, summaries)
		assert.Empty(mt, summaries)
	})

	mt.Run("name taken excludes the schema being updated", func(mt *mtest.T) {
		store := &MongoSchemaStore{coll: mt.Coll}
		self := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockNamespace(mt), mtest.FirstBatch))

		taken, err := store.NameTaken(context.Background(), "Landing", self.Hex())
		require.NoError(mt, err)
		assert.False(mt, taken)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "aggregate", started.CommandName)
		match := started.Command.Lookup("pipeline", "0", "$match")
		assert.Equal(mt, "Landing", match.Document().Lookup("name").StringValue())
		assert.Equal(mt, self, match.Document().Lookup("_id", "$ne").ObjectID())
	})

	mt.Run("name taken reports an existing match", func(mt *mtest.T) {
		store := &MongoSchemaStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockNamespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: int32(1)}}))

		taken, err := store.NameTaken(context.Background(), "Landing", "")
		require.NoError(mt, err)
		assert.True(mt, taken)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		_, err = started.Command.LookupErr("pipeline", "0", "$match", "_id")
		assert.Error(mt, err)
	})

	mt.Run("create maps a duplicate key to conflict", func(mt *mtest.T) {
		store := &MongoSchemaStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: uischemas index: name_unique",
		}))

		err := store.Create(context.Background(), &models.UISchema{ID: NewSchemaID(), Name: "Landing"})
		assert.ErrorIs(mt, err, ErrConflict)
	})

	mt.Run("create stamps timestamps", func(mt *mtest.T) {
		store := &MongoSchemaStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		schema := &models.UISchema{ID: NewSchemaID(), Name: "Landing"}
		require.NoError(mt, store.Create(context.Background(), schema))
		assert.False(mt, schema.CreatedAt.IsZero())
		assert.Equal(mt, schema.CreatedAt, schema.UpdatedAt)
	})

	mt.Run("update returns the new document", func(mt *mtest.T) {
		store := &MongoSchemaStore{coll: mt.Coll}
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: schemaBSON(id, "Renamed", at)}))

		updated, err := store.Update(context.Background(), &models.UISchema{
			ID:         id.Hex(),
			Name:       "Renamed",
			Components: []models.Component{{"type": "text", "content": "Hi"}},
		})
		require.NoError(mt, err)
		assert.Equal(mt, "Renamed", updated.Name)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "findAndModify", started.CommandName)
		set := started.Command.Lookup("update", "$set").Document()
		assert.Equal(mt, "Renamed", set.Lookup("name").StringValue())
		_, err = set.LookupErr("schema")
		assert.NoError(mt, err)
		_, err = set.LookupErr("createdAt")
		assert.Error(mt, err)
	})

	mt.Run("update maps a missing document to not found", func(mt *mtest.T) {
		store := &MongoSchemaStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := store.Update(context.Background(), &models.UISchema{ID: primitive.NewObjectID().Hex(), Name: "Gone"})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("update maps a duplicate key to conflict", func(mt *mtest.T) {
		store := &MongoSchemaStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Message: "E11000 duplicate key error collection: uischemas index: name_unique",
			Name:    "DuplicateKey",
		}))

		_, err := store.Update(context.Background(), &models.UISchema{ID: primitive.NewObjectID().Hex(), Name: "Taken"})
		assert.ErrorIs(mt, err, ErrConflict)
	})

	mt.Run("delete maps zero deletions to not found", func(mt *mtest.T) {
		store := &MongoSchemaStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := store.Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete succeeds when a document is removed", func(mt *mtest.T) {
		store := &MongoSchemaStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, store.Delete(context.Background(), primitive.NewObjectID().Hex()))
	})
}

func TestMongoSchemaStoreDecodesNestedPayloadAsJSON(t *testing.T) {
	opts := mtest.NewOptions().
		ClientType(mtest.Mock).
		ClientOptions(options.Client().SetBSONOptions(database.MongoBSONOptions()))
	mt := mtest.New(t, opts)

	mt.Run("nested fields", func(mt *mtest.T) {
		store := &MongoSchemaStore{coll: mt.Coll}
		id := primitive.NewObjectID()
		doc := bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Signup"},
			{Key: "description", Value: ""},
			{Key: "schema", Value: bson.A{bson.D{
				{Key: "type", Value: "form"},
				{Key: "fields", Value: bson.A{
					bson.D{{Key: "label", Value: "Email"}, {Key: "required", Value: true}},
				}},
			}}},
			{Key: "createdAt", Value: time.Now().UTC()},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockNamespace(mt), mtest.FirstBatch, doc))

		schema, err := store.Get(context.Background(), id.Hex())
		require.NoError(mt, err)

		raw, err := json.Marshal(schema.Components)
		require.NoError(mt, err)
		assert.JSONEq(mt, `[{"type":"form","fields":[{"label":"Email","required":true}]}]`, string(raw))
	})
}
