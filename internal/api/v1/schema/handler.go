package schema

import (
	"errors"
	"net/http"

	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/middleware"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/services"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/utils"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListSchemas godoc
// @Summary List schemas
// @Description Returns up to 50 schemas, newest first, without their components
// @Tags schemas
// @Produce json
// @Success 200 {object} SchemaListResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/schemas [get]
func ListSchemas(c *gin.Context) {
	summaries, err := services.ListSchemas(c.Request.Context())
	if err != nil {
		respondError(c, err, "fetch schemas")
		return
	}

	c.JSON(http.StatusOK, SchemaListResponse{Success: true, Schemas: summaries})
}

// GetSchema godoc
// @Summary Get a schema
// @Description Returns a schema with its full component array
// @Tags schemas
// @Produce json
// @Param id path string true "Schema ID (24 hex characters)"
// @Success 200 {object} SchemaResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/schemas/{id} [get]
func GetSchema(c *gin.Context) {
	schema, err := services.GetSchema(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "fetch schema")
		return
	}

	c.JSON(http.StatusOK, SchemaResponse{Success: true, Schema: schema})
}

// CreateSchema godoc
// @Summary Create a schema
// @Description Stores a named component array. Names are unique after trimming.
// @Tags schemas
// @Accept json
// @Produce json
// @Param request body SchemaRequest true "Schema"
// @Success 201 {object} SchemaMutationResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/schemas [post]
func CreateSchema(c *gin.Context) {
	var req SchemaRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	schema, err := services.CreateSchema(c.Request.Context(), req.toInput())
	if err != nil {
		respondError(c, err, "create schema")
		return
	}

	c.JSON(http.StatusCreated, SchemaMutationResponse{
		Success: true,
		Schema:  schema,
		Message: "Schema created successfully",
	})
}

// UpdateSchema godoc
// @Summary Replace a schema
// @Description Replaces name, description and components of an existing schema
// @Tags schemas
// @Accept json
// @Produce json
// @Param id path string true "Schema ID (24 hex characters)"
// @Param request body SchemaRequest true "Schema"
// @Success 200 {object} SchemaMutationResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/schemas/{id} [put]
func UpdateSchema(c *gin.Context) {
	id := c.Param("id")
	if !services.ValidSchemaID(id) {
		respondError(c, services.ErrInvalidID, "update schema")
		return
	}

	var req SchemaRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	schema, err := services.UpdateSchema(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondError(c, err, "update schema")
		return
	}

	c.JSON(http.StatusOK, SchemaMutationResponse{
		Success: true,
		Schema:  schema,
		Message: "Schema updated successfully",
	})
}

// DeleteSchema godoc
// @Summary Delete a schema
// @Tags schemas
// @Produce json
// @Param id path string true "Schema ID (24 hex characters)"
// @Success 200 {object} utils.MessageResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/schemas/{id} [delete]
func DeleteSchema(c *gin.Context) {
	if err := services.DeleteSchema(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "delete schema")
		return
	}

	c.JSON(http.StatusOK, utils.NewMessageResponse("Schema deleted successfully"))
}

// respondError maps service errors to status codes. Unexpected errors are
// logged and collapsed into "Failed to <action>".
func respondError(c *gin.Context, err error, action string) {
	var inputErr *services.InputError
	switch {
	case errors.As(err, &inputErr):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(inputErr.Message, nil))
	case errors.Is(err, services.ErrInvalidID):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid schema ID format", nil))
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Schema not found", nil))
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, utils.NewErrorResponse("A schema with this name already exists", nil))
	default:
		logger.Log.Error("schema request failed",
			zap.String("request_id", middleware.RequestID(c)),
			zap.String("action", action),
			zap.Error(err),
		)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to "+action, err))
	}
}
