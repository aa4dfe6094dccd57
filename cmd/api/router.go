package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"catalog-backend/internal/shared/middleware"
	"catalog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	router.GET("/health", healthCheckHandler(c))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})))

	// Generated images: /public/<category>/<slug>.png
	if c.ObjectStorage == nil {
		router.Static("/public", c.Config.Artifact.Dir)
	} else {
		router.GET("/public/*key", objectHandler(c))
	}

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		setupAuthorRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupCharacterRoutes(v1, c)
		setupGPTRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	author := v1.Group("/authors")
	{
		author.POST("", c.GenerationHandler.SpawnAuthor)
		author.GET("", c.AuthorHandler.List)
		author.GET("/export", c.AuthorHandler.Export)
		author.GET("/slug/:slug", c.AuthorHandler.GetBySlug)
		author.GET("/:id", c.AuthorHandler.GetByID)
		author.PUT("/:id", c.AuthorHandler.Update)
		author.DELETE("/:id", c.AuthorHandler.Delete)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	book := v1.Group("/books")
	{
		book.POST("", c.GenerationHandler.SpawnBook)
		book.GET("", c.BookHandler.List)
		book.GET("/:id", c.BookHandler.GetByID)
		book.PUT("/:id", c.BookHandler.Update)
		book.DELETE("/:id", c.BookHandler.Delete)
		book.POST("/:id/characters", c.GenerationHandler.SpawnCharacters)
	}
}

// ========================================
// CHARACTER ROUTES
// ========================================
func setupCharacterRoutes(v1 *gin.RouterGroup, c *container.Container) {
	character := v1.Group("/characters")
	{
		character.GET("", c.CharacterHandler.List)
		character.GET("/:id", c.CharacterHandler.GetByID)
		character.PUT("/:id", c.CharacterHandler.Update)
		character.DELETE("/:id", c.CharacterHandler.Delete)
	}
}

// ========================================
// GPT PASSTHROUGH ROUTES
// ========================================
func setupGPTRoutes(v1 *gin.RouterGroup, c *container.Container) {
	gpt := v1.Group("/gpt")
	{
		gpt.GET("/prompt", c.GenerationHandler.Prompt)
		gpt.GET("/image", c.GenerationHandler.Image)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("/jobs/illustrate", c.GenerationHandler.EnqueueIllustration)
	}
}

// ========================================
// OBJECT HANDLER (ARTIFACT_BACKEND=minio)
// ========================================
func objectHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		if key == "" || strings.Contains(key, "..") {
			c.Status(http.StatusNotFound)
			return
		}

		exists, err := appCtx.ObjectStorage.Exists(c.Request.Context(), key)
		if err != nil {
			c.Status(http.StatusBadGateway)
			return
		}
		if !exists {
			c.Status(http.StatusNotFound)
			return
		}

		data, err := appCtx.ObjectStorage.Download(c.Request.Context(), key)
		if err != nil {
			c.Status(http.StatusBadGateway)
			return
		}
		c.Data(http.StatusOK, "image/png", data)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil {
			dbStatus = "disconnected"
		} else if err := appCtx.DB.Ping(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
		}

		// Check cache (Redis hoặc in-memory fallback)
		cacheStatus := "ok"
		if appCtx.Redis == nil {
			cacheStatus = "memory"
		} else if err := appCtx.Cache.Ping(ctx); err != nil {
			cacheStatus = fmt.Sprintf("error: %v", err)
		}

		services := gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		}
		if appCtx.ObjectStorage != nil {
			services["minio"] = "ok"
			if err := appCtx.ObjectStorage.HealthCheck(ctx); err != nil {
				services["minio"] = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}
		health["services"] = services

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			health["status"] = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
