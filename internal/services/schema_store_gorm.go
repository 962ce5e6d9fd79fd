package services

import (
	"context"
	"errors"
	"time"

	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/models"
	"gorm.io/gorm"
)

// GormSchemaStore keeps schemas in a relational table with a JSON column for
// the component payload.
type GormSchemaStore struct {
	db *gorm.DB
}

var _ SchemaStore = (*GormSchemaStore)(nil)

func NewGormSchemaStore(db *gorm.DB) *GormSchemaStore {
	return &GormSchemaStore{db: db}
}

func (s *GormSchemaStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&models.UISchema{})
}

func (s *GormSchemaStore) List(ctx context.Context, limit int) ([]models.SchemaSummary, error) {
	summaries := []models.SchemaSummary{}
	err := s.db.WithContext(ctx).
		Model(&models.UISchema{}).
		Select("id", "name", "description", "created_at", "updated_at").
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *GormSchemaStore) Get(ctx context.Context, id string) (*models.UISchema, error) {
	var schema models.UISchema
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&schema).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &schema, nil
}

func (s *GormSchemaStore) NameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	var count int64
	query := s.db.WithContext(ctx).Model(&models.UISchema{}).Where("name = ?", name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormSchemaStore) Create(ctx context.Context, schema *models.UISchema) error {
	if err := s.db.WithContext(ctx).Create(schema).Error; err != nil {
		return translateGormError(err)
	}
	return nil
}

func (s *GormSchemaStore) Update(ctx context.Context, schema *models.UISchema) (*models.UISchema, error) {
	var updated *models.UISchema
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.UISchema{}).
			Where("id = ?", schema.ID).
			Updates(map[string]interface{}{
				"name":        schema.Name,
				"description": schema.Description,
				"components":  schema.Components,
				"updated_at":  time.Now(),
			})
		if result.Error != nil {
			return translateGormError(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		var reloaded models.UISchema
		if err := tx.Where("id = ?", schema.ID).First(&reloaded).Error; err != nil {
			return err
		}
		updated = &reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *GormSchemaStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.UISchema{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func translateGormError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyMessage(err) {
		return ErrConflict
	}
	return err
}
