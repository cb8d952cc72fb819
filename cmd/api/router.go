package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/shared/middleware"
	"bookshelf-backend/pkg/container"
)

// SetupRouter wires all routes onto a gin engine.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupBookRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/sign-up", c.UserHandler.SignUp)
		auth.POST("/sign-in", c.UserHandler.SignIn)
		auth.POST("/sign-out", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.SignOut)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/profile", c.UserHandler.Profile)
		users.POST("/profile/edit", c.UserHandler.EditProfile)
		users.POST("/profile/upload-image", c.UserHandler.UploadImage)
		users.POST("/delete", c.UserHandler.DeleteAccount)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		// Public catalog and featured endpoints
		books.GET("/search", c.CatalogHandler.Search)
		books.GET("/search-genre/:genre", c.CatalogHandler.SearchGenre)
		books.GET("/detail/:volumeID", c.CatalogHandler.Detail)
		books.GET("/featured", c.FeaturedHandler.Featured)
	}

	shelf := v1.Group("/books")
	shelf.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		shelf.POST("/save-book", c.BookHandler.SaveBook)
		shelf.GET("/user-books", c.BookHandler.UserBooks)
		shelf.POST("/remove/:volumeID", c.BookHandler.RemoveBook)
		shelf.PATCH("/progress/:volumeID", c.BookHandler.UpdateProgress)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = "error"
				health["status"] = "degraded"
			}
		}

		cacheStatus := "ok"
		if appCtx.Cache == nil {
			cacheStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				cacheStatus = "error"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
