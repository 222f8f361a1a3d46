package handlers

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"dex-code-reviewer/config"
	"dex-code-reviewer/constants"
)

// WebhookHandler defines the common interface that all VCS handlers implement.
type WebhookHandler interface {
	Handle(c *gin.Context)
}

// ProviderConfig holds everything needed to initialize a webhook handler for
// a specific VCS.
type ProviderConfig struct {
	Name                string
	Endpoint            string
	TokenEnvVar         string
	WebhookSecretEnvVar string
	// NewHandlerFunc is a factory function that creates the specific handler.
	NewHandlerFunc func(cfg *config.Config, secret string, logger zerolog.Logger) (WebhookHandler, error)
}

// AllProviders is a slice containing the configuration for all supported VCS
// providers.
var AllProviders = []ProviderConfig{
	{
		Name:                constants.GITHUB,
		Endpoint:            constants.GITHUB_ENDPOINT,
		TokenEnvVar:         constants.GITHUB_TOKEN,
		WebhookSecretEnvVar: constants.GITHUB_WEBHOOK_SECRET,
		NewHandlerFunc: func(cfg *config.Config, secret string, logger zerolog.Logger) (WebhookHandler, error) {
			return NewGitHubWebhookHandler(cfg, secret, logger)
		},
	},
	{
		Name:                constants.GITEA,
		Endpoint:            constants.GITEA_ENDPOINT,
		TokenEnvVar:         constants.GITEA_TOKEN,
		WebhookSecretEnvVar: constants.GITEA_WEBHOOK_SECRET,
		NewHandlerFunc: func(cfg *config.Config, secret string, logger zerolog.Logger) (WebhookHandler, error) {
			return NewGiteaWebhookHandler(cfg, secret, logger)
		},
	},
}

// RegisterHandlers iterates through all defined providers and registers their
// webhook handlers with the Gin router if their required secrets are present
// in the environment.
func RegisterHandlers(router *gin.Engine, cfg *config.Config, logger zerolog.Logger) {
	apiGroup := router.Group("/api")

	for _, provider := range AllProviders {
		token := os.Getenv(provider.TokenEnvVar)
		secret := os.Getenv(provider.WebhookSecretEnvVar)

		if token == "" || secret == "" {
			logger.Info().Str("provider", provider.Name).Msg("secrets not found, skipping handler setup")
			continue
		}

		handler, err := provider.NewHandlerFunc(cfg, secret, logger)
		if err != nil {
			logger.Warn().Err(err).Str("provider", provider.Name).Msg("could not create webhook handler")
			continue
		}
		apiGroup.POST(provider.Endpoint, handler.Handle)
		logger.Info().Str("provider", provider.Name).Str("endpoint", provider.Endpoint).
			Msg("webhook endpoint active")
	}
}
