package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"dex-code-reviewer/config"
	"dex-code-reviewer/internal/handlers"
)

func main() {
	godotenv.Load()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	logger.Info().Msg("starting AI code reviewer in server mode")

	cfg, err := config.LoadConfig(os.Getenv("REVIEWER_CONFIG"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := RunServer(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// RunServer sets up routes and runs the Gin server.
func RunServer(cfg *config.Config, logger zerolog.Logger) error {
	router := setupRouter(cfg, logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info().Str("port", port).Msg("listening for webhooks")
	return router.Run(":" + port)
}

func setupRouter(cfg *config.Config, logger zerolog.Logger) *gin.Engine {
	router := gin.Default()
	handlers.RegisterHandlers(router, cfg, logger)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "AI Code Reviewer Bot is running.")
	})
	return router
}
