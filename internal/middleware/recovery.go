package middleware

import (
	"fmt"
	"net/http"

	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/utils"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns panics into the generic 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Log.Error("panic recovered",
			zap.String("request_id", RequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
			zap.Stack("stack"),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			utils.NewErrorResponse("Internal server error", fmt.Errorf("panic: %v", recovered)))
	})
}
