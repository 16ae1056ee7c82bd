package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mybooks-app/mybooks/internal/catalog"
	"github.com/mybooks-app/mybooks/internal/collection"
	"github.com/mybooks-app/mybooks/internal/events"
	"github.com/mybooks-app/mybooks/internal/library"
	"github.com/mybooks-app/mybooks/internal/stats"
	"github.com/mybooks-app/mybooks/pkg/database"
)

func main() {
	// Load environment variables from .env if present (optional)
	_ = godotenv.Load()

	logger := newLogger()
	defer logger.Sync()
	logger.Info("starting api server", zap.String("version", "1.0.0"))

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/mybooks.db"
	}

	backend, err := database.Open(dbPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.String("path", dbPath), zap.Error(err))
	}
	defer backend.Close()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	// Stores and collaborators
	collectionStore := collection.NewStore(backend)
	libraryStore := library.NewStore(backend, collectionStore)
	source := catalog.NewGoogleBooksSource(logger)
	hub := events.NewHub(logger)

	// Handlers
	libraryHandler := library.NewHandler(libraryStore, collectionStore, source, hub, logger)
	collectionHandler := collection.NewHandler(collectionStore, libraryHandler, hub, logger)
	statsHandler := stats.NewHandler(libraryStore)
	catalogHandler := catalog.NewHandler(source, libraryStore)

	// Setup Gin router
	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{frontendURL}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	config.ExposeHeaders = []string{"Content-Length"}
	router.Use(cors.New(config))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	catalogGroup := router.Group("/catalog")
	{
		catalogGroup.GET("/search", catalogHandler.Search)
		catalogGroup.GET("/:id", catalogHandler.GetByID)
	}
	router.GET("/recommendations", catalogHandler.Recommendations)

	libraryGroup := router.Group("/library")
	{
		libraryGroup.GET("", libraryHandler.GetLibrary)
		libraryGroup.POST("", libraryHandler.AddToLibrary)
		libraryGroup.PUT("/progress", libraryHandler.UpdateProgress)
		libraryGroup.PUT("/rating", libraryHandler.UpdateRating)
		libraryGroup.PUT("/notes", libraryHandler.UpdateNotes)
		libraryGroup.PUT("/status", libraryHandler.UpdateStatus)
		libraryGroup.PUT("/comic", libraryHandler.ToggleComic)
		libraryGroup.PUT("/:id", libraryHandler.ReplaceBook)
		libraryGroup.DELETE("/:id", libraryHandler.RemoveFromLibrary)
	}

	collectionGroup := router.Group("/collections")
	{
		collectionGroup.GET("", collectionHandler.GetCollections)
		collectionGroup.POST("", collectionHandler.CreateCollection)
		collectionGroup.POST("/:id/toggle", collectionHandler.ToggleMembership)
		collectionGroup.DELETE("/:id", collectionHandler.DeleteCollection)
	}

	router.GET("/stats", statsHandler.GetStats)
	router.GET("/ws", hub.Serve)

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("listening", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		if parsed, err := zap.ParseAtomicLevel(level); err == nil {
			cfg.Level = parsed
		}
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
