package models

import (
	"time"

	"gorm.io/datatypes"
)

// UISchema is a named, persisted sequence of component descriptors.
type UISchema struct {
	ID          string                        `gorm:"primaryKey;size:24" json:"id"`
	Name        string                        `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string                        `gorm:"size:500;not null;default:''" json:"description"`
	Components  datatypes.JSONSlice[Component] `gorm:"not null" json:"components" swaggertype:"array,object"`
	CreatedAt   time.Time                     `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time                     `json:"updatedAt"`
}

// TableName overrides the table name
func (UISchema) TableName() string {
	return "ui_schemas"
}

// Summary drops the component payload.
func (s UISchema) Summary() SchemaSummary {
	return SchemaSummary{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// SchemaSummary is the listing projection of a UISchema.
type SchemaSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
