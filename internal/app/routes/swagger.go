package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/yigit/unischedule/docs"
)

const swaggerIndex = "/swagger/index.html"

// SetupSwagger serves the API document under /swagger and points /docs at
// its index page. host overrides the document's host when not empty.
func SetupSwagger(router *gin.Engine, host string) {
	if host != "" {
		docs.SwaggerInfo.Host = host
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/swagger/doc.json"),
		ginSwagger.DocExpansion("none"),
		ginSwagger.DefaultModelsExpandDepth(1)))
	router.GET("/docs", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusMovedPermanently, swaggerIndex)
	})
}
