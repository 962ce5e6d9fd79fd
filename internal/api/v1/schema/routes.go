package schema

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	schemaGroup := router.Group("/schemas")
	{
		schemaGroup.GET("", ListSchemas)
		schemaGroup.POST("", CreateSchema)
		schemaGroup.GET("/:id", GetSchema)
		schemaGroup.PUT("/:id", UpdateSchema)
		schemaGroup.DELETE("/:id", DeleteSchema)
	}
}
