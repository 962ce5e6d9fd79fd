package generation

import "github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/models"

type GenerateSchemaRequest struct {
	Prompt string `json:"prompt" binding:"required" example:"Create a contact form with name, email, and message"`
}

// GenerateSchemaResponse echoes the prompt next to the generated components.
type GenerateSchemaResponse struct {
	Success bool               `json:"success" example:"true"`
	Schema  []models.Component `json:"schema" swaggertype:"array,object"`
	Prompt  string             `json:"prompt"`
}
