package schema

import (
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/models"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/services"
)

// SchemaRequest is the body of create and update calls. Older clients send
// the component array as "schema"; "components" wins when both are present.
type SchemaRequest struct {
	Name        string      `json:"name" example:"Contact page"`
	Description string      `json:"description" example:"Heading and a contact form"`
	Components  interface{} `json:"components" swaggertype:"array,object"`
	Schema      interface{} `json:"schema,omitempty" swaggertype:"array,object"`
}

func (r SchemaRequest) toInput() services.SchemaInput {
	components := r.Components
	if components == nil {
		components = r.Schema
	}
	return services.SchemaInput{
		Name:        r.Name,
		Description: r.Description,
		Components:  components,
	}
}

type SchemaListResponse struct {
	Success bool                   `json:"success" example:"true"`
	Schemas []models.SchemaSummary `json:"schemas"`
}

type SchemaResponse struct {
	Success bool             `json:"success" example:"true"`
	Schema  *models.UISchema `json:"schema"`
}

type SchemaMutationResponse struct {
	Success bool             `json:"success" example:"true"`
	Schema  *models.UISchema `json:"schema"`
	Message string           `json:"message" example:"Schema created successfully"`
}
