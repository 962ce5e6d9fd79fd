package generation

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

// GenerateSchema godoc
// @Summary Generate a schema from a prompt
// @Description Asks the configured LLM for a component array describing the requested UI. The result is validated but not saved.
// @Tags generation
// @Accept json
// @Produce json
// @Param request body GenerateSchemaRequest true "Generation Request"
// @Success 200 {object} GenerateSchemaResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/generate-schema [post]
func GenerateSchema(c *gin.Context) {
	var req GenerateSchemaRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	components, err := services.GenerateSchema(c.Request.Context(), req.Prompt)
	if err != nil {
		var inputErr *services.InputError
		if errors.As(err, &inputErr) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(inputErr.Message, nil))
			return
		}

		logger.Log.Error("schema generation failed",
			zap.String("request_id", middleware.RequestID(c)),
			zap.Error(err),
		)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(generationMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, GenerateSchemaResponse{
		Success: true,
		Schema:  components,
		Prompt:  req.Prompt,
	})
}

func generationMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrProviderAuth):
		return "Invalid API key configuration"
	case errors.Is(err, services.ErrProviderQuota):
		return "API quota exceeded"
	case errors.Is(err, services.ErrMalformedGeneration):
		return "AI generated invalid response format"
	}
	return "Failed to generate schema"
}
