package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yukikurage/deep-thoughts-api/internal/auth"
	"github.com/yukikurage/deep-thoughts-api/internal/config"
	"github.com/yukikurage/deep-thoughts-api/internal/database"
	"github.com/yukikurage/deep-thoughts-api/internal/graph"
	"github.com/yukikurage/deep-thoughts-api/internal/handlers"
	"github.com/yukikurage/deep-thoughts-api/internal/middleware"
	"github.com/yukikurage/deep-thoughts-api/internal/repository"
	"github.com/yukikurage/deep-thoughts-api/internal/services"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	tokens := auth.NewManager(cfg.JWTSecret)

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	thoughtRepo := repository.NewThoughtRepository(db)
	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo)
	thoughtService := services.NewThoughtService(thoughtRepo)

	// Build the executable schema
	resolver := graph.NewResolver(authService, userService, thoughtService)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		log.Fatalf("Failed to build schema: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Deep Thoughts API is running",
		})
	})

	// GraphQL endpoint; every request passes through identity resolution
	// before execution.
	gqlHandler := handlers.NewGraphQLHandler(schema)
	gql := r.Group("/graphql")
	gql.Use(middleware.ResolveIdentity(tokens))
	gql.POST("", gqlHandler.Post)
	gql.GET("", gqlHandler.Get)

	// In production, serve the built client and fall back to its
	// index.html for any unknown route.
	if cfg.GinMode == gin.ReleaseMode {
		if _, err := os.Stat(cfg.ClientBuildDir); err == nil {
			r.Static("/static", filepath.Join(cfg.ClientBuildDir, "static"))
			r.StaticFile("/favicon.ico", filepath.Join(cfg.ClientBuildDir, "favicon.ico"))
			r.NoRoute(func(c *gin.Context) {
				c.File(filepath.Join(cfg.ClientBuildDir, "index.html"))
			})
		}
	}

	// Start server
	log.Printf("API server running on port %s", cfg.Port)
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
