package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

var MongoClient *mongo.Client

// MongoBSONOptions decodes nested documents as maps so component payloads
// stay plain JSON instead of primitive.D key/value pairs.
func MongoBSONOptions() *options.BSONOptions {
	return &options.BSONOptions{DefaultDocumentM: true}
}

// ConnectMongo connects to MongoDB and selects the database named in the uri,
// falling back to defaultDatabase.
func ConnectMongo(ctx context.Context, uri, defaultDatabase string) (*mongo.Database, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid mongodb uri: %w", err)
	}

	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(MongoBSONOptions())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb at %s: %w", redact(uri), err)
	}

	name := cs.Database
	if name == "" {
		name = defaultDatabase
	}

	MongoClient = client
	return client.Database(name), nil
}

func DisconnectMongo(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}
