package services

import (
	"context"
	"strings"

	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SchemaListLimit bounds the size of listing responses.
const SchemaListLimit = 50

// SchemaStore is the persistence boundary for UI schemas. Implementations
// return ErrNotFound for missing ids and ErrConflict when the storage-level
// unique index on name rejects a write.
type SchemaStore interface {
	// Migrate creates the collection/table and its indexes.
	Migrate(ctx context.Context) error
	List(ctx context.Context, limit int) ([]models.SchemaSummary, error)
	Get(ctx context.Context, id string) (*models.UISchema, error)
	// NameTaken reports whether a record other than excludeID uses name.
	NameTaken(ctx context.Context, name, excludeID string) (bool, error)
	Create(ctx context.Context, schema *models.UISchema) error
	Update(ctx context.Context, schema *models.UISchema) (*models.UISchema, error)
	Delete(ctx context.Context, id string) error
}

// ValidSchemaID reports whether id has the 24 hex character identifier format.
func ValidSchemaID(id string) bool {
	return len(id) == 24 && primitive.IsValidObjectID(id)
}

// NewSchemaID returns a fresh 24 hex character identifier.
func NewSchemaID() string {
	return primitive.NewObjectID().Hex()
}

func isDuplicateKeyMessage(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
