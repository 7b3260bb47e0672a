package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"tienda-api/internal/config"
	"tienda-api/internal/database"
	"tienda-api/internal/handlers"
	"tienda-api/internal/logger"
	"tienda-api/internal/routes"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.LogLevel, gin.Mode() != gin.ReleaseMode)

	client := database.Connect(cfg.MongoURI)
	db := client.Database(cfg.MongoDB)
	database.EnsureIndexes(db)

	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	routes.RegisterRoutes(router, db, cfg)

	log.Info().Str("port", cfg.Port).Msg("🚀 server running")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
