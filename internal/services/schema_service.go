package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/database"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/metrics"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/models"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	SchemaCacheKeyPrefix = "uischema:id:"
	SchemaCacheDuration  = 10 * time.Minute
)

var (
	schemaStore  SchemaStore
	storeTimeout = 10 * time.Second
	validate     = validator.New()
)

// SchemaInput is the mutable part of a schema as received from a client.
// Components is the raw decoded JSON value and is validated here.
type SchemaInput struct {
	Name        string
	Description string
	Components  interface{}
}

type schemaFields struct {
	Name        string `validate:"required,max=100"`
	Description string `validate:"max=500"`
}

// InitSchemaStore sets the backend used by the schema operations.
func InitSchemaStore(store SchemaStore, timeout time.Duration) {
	schemaStore = store
	if timeout > 0 {
		storeTimeout = timeout
	}
}

// ListSchemas returns the newest schemas without their component payload.
func ListSchemas(ctx context.Context) ([]models.SchemaSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	start := time.Now()
	summaries, err := schemaStore.List(ctx, SchemaListLimit)
	observeStore("list", start, err)
	return summaries, err
}

// GetSchema retrieves a schema by ID, using the cache when one is configured.
func GetSchema(ctx context.Context, id string) (*models.UISchema, error) {
	if !ValidSchemaID(id) {
		return nil, ErrInvalidID
	}

	if schema, ok := getCachedSchema(ctx, id); ok {
		return schema, nil
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	start := time.Now()
	schema, err := schemaStore.Get(ctx, id)
	observeStore("get", start, err)
	if err != nil {
		return nil, err
	}

	setCachedSchema(ctx, schema)
	return schema, nil
}

// CreateSchema validates input, enforces name uniqueness and persists a new schema.
func CreateSchema(ctx context.Context, input SchemaInput) (*models.UISchema, error) {
	schema, err := buildSchema(input)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	taken, err := schemaStore.NameTaken(ctx, schema.Name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	schema.ID = NewSchemaID()

	start := time.Now()
	err = schemaStore.Create(ctx, schema)
	observeStore("create", start, err)
	if err != nil {
		return nil, err
	}
	return schema, nil
}

// UpdateSchema replaces name, description and components of an existing schema.
func UpdateSchema(ctx context.Context, id string, input SchemaInput) (*models.UISchema, error) {
	if !ValidSchemaID(id) {
		return nil, ErrInvalidID
	}

	schema, err := buildSchema(input)
	if err != nil {
		return nil, err
	}
	schema.ID = id

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	taken, err := schemaStore.NameTaken(ctx, schema.Name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	start := time.Now()
	updated, err := schemaStore.Update(ctx, schema)
	observeStore("update", start, err)
	if err != nil {
		return nil, err
	}

	setCachedSchema(ctx, updated)
	return updated, nil
}

// DeleteSchema removes a schema by ID.
func DeleteSchema(ctx context.Context, id string) error {
	if !ValidSchemaID(id) {
		return ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	start := time.Now()
	err := schemaStore.Delete(ctx, id)
	observeStore("delete", start, err)
	if err != nil {
		return err
	}

	invalidateCachedSchema(ctx, id)
	return nil
}

func observeStore(operation string, start time.Time, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case errors.Is(err, ErrConflict):
		result = "conflict"
	default:
		result = "error"
	}
	metrics.ObserveStoreOperation(operation, result, time.Since(start))
}

func buildSchema(input SchemaInput) (*models.UISchema, error) {
	fields := schemaFields{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
	}

	if err := validate.Struct(fields); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			return nil, fieldMessage(validationErrs[0])
		}
		return nil, err
	}

	if err := models.ValidateComponents(input.Components); err != nil {
		var componentErr *models.ComponentError
		if errors.As(err, &componentErr) && componentErr.Index < 0 {
			return nil, invalidInput("Components are required and must be a non-empty array")
		}
		return nil, invalidInput("%s", err.Error())
	}

	components, err := models.ToComponents(input.Components)
	if err != nil {
		return nil, invalidInput("%s", err.Error())
	}

	return &models.UISchema{
		Name:        fields.Name,
		Description: fields.Description,
		Components:  components,
	}, nil
}

func fieldMessage(fe validator.FieldError) error {
	switch {
	case fe.Field() == "Name" && fe.Tag() == "required":
		return invalidInput("Name is required and must be a non-empty string")
	case fe.Tag() == "max":
		return invalidInput("%s must be at most %s characters", fe.Field(), fe.Param())
	}
	return invalidInput("Field '%s' failed on the '%s' rule", fe.Field(), fe.Tag())
}

func getCachedSchema(ctx context.Context, id string) (*models.UISchema, bool) {
	if database.RedisClient == nil {
		return nil, false
	}

	val, err := database.RedisClient.Get(ctx, SchemaCacheKeyPrefix+id).Result()
	if err != nil {
		return nil, false
	}

	var schema models.UISchema
	if err := json.Unmarshal([]byte(val), &schema); err != nil {
		return nil, false
	}
	return &schema, true
}

// setCachedSchema stores schema unless the cache already holds a newer
// revision of it. The WATCH aborts the write when the key changes between the
// read and the SET.
func setCachedSchema(ctx context.Context, schema *models.UISchema) {
	if database.RedisClient == nil {
		return
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return
	}

	key := SchemaCacheKeyPrefix + schema.ID
	err = database.RedisClient.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, key).Result()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			var cached models.UISchema
			if json.Unmarshal([]byte(val), &cached) == nil && cached.UpdatedAt.After(schema.UpdatedAt) {
				return nil
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, SchemaCacheDuration)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
	case errors.Is(err, redis.TxFailedErr):
		logger.Log.Debug("schema cache write lost a race", zap.String("id", schema.ID))
	default:
		logger.Log.Warn("failed to cache schema", zap.String("id", schema.ID), zap.Error(err))
	}
}

func invalidateCachedSchema(ctx context.Context, id string) {
	if database.RedisClient == nil {
		return
	}
	if err := database.RedisClient.Del(ctx, SchemaCacheKeyPrefix+id).Err(); err != nil {
		logger.Log.Warn("failed to invalidate cached schema", zap.String("id", id), zap.Error(err))
	}
}
