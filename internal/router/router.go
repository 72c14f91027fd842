package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brewbuddy/internal/handler"
	"brewbuddy/internal/middleware"
	"brewbuddy/internal/service"
)

func New(
	authService *service.AuthService,
	authHandler *handler.AuthHandler,
	beanHandler *handler.BeanHandler,
	equipmentHandler *handler.EquipmentHandler,
	brewprintHandler *handler.BrewprintHandler,
	corsOrigins []string,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(authService))

	beans := protected.Group("/beans")
	beans.GET("", beanHandler.List)
	beans.POST("", beanHandler.Create)
	beans.GET("/:id", beanHandler.Get)
	beans.PUT("/:id", beanHandler.Update)
	beans.DELETE("/:id", beanHandler.Delete)

	equipment := protected.Group("/equipment")
	equipment.GET("", equipmentHandler.List)
	equipment.POST("", equipmentHandler.Create)
	equipment.GET("/:id", equipmentHandler.Get)
	equipment.PUT("/:id", equipmentHandler.Update)
	equipment.DELETE("/:id", equipmentHandler.Delete)

	brewprints := protected.Group("/brewprints")
	brewprints.GET("", brewprintHandler.List)
	brewprints.POST("", brewprintHandler.Create)
	brewprints.GET("/:id", brewprintHandler.Get)
	brewprints.PUT("/:id", brewprintHandler.Update)
	brewprints.DELETE("/:id", brewprintHandler.Delete)
	brewprints.POST("/:id/finalize", brewprintHandler.Finalize)
	brewprints.POST("/:id/archive", brewprintHandler.Archive)
	brewprints.POST("/:id/fork", brewprintHandler.Fork)
	brewprints.POST("/:id/results", brewprintHandler.SubmitResult)
	brewprints.GET("/:id/results", brewprintHandler.ListResults)

	return engine
}
