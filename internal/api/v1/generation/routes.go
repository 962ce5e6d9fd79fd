package generation

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/generate-schema", GenerateSchema)
}
