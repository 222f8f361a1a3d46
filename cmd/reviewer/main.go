package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"dex-code-reviewer/config"
	"dex-code-reviewer/internal/dex"
	"dex-code-reviewer/internal/models"
	"dex-code-reviewer/internal/repository"
	"dex-code-reviewer/internal/service"
)

var configPath string

func main() {
	Execute()
}

var rootCmd = &cobra.Command{
	Use:   "dex-code-reviewer",
	Short: "AI-powered pull request reviewer",
	Run: func(cmd *cobra.Command, args []string) {
		// A local .env is a convenience for development; absence is fine.
		godotenv.Load()

		logger := newLogger()

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load config")
		}
		if err := cfg.Validate(); err != nil {
			logger.Fatal().Err(err).Msg("invalid configuration")
		}

		prDetails, err := buildPRDetails(cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to resolve PR details")
		}

		ctx := context.Background()
		vcsClient, err := repository.New(ctx, &cfg.VCS)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create VCS client")
		}

		backend := dex.NewClient(cfg.Backend, logger)
		reviewService := service.NewReviewService(vcsClient, backend, cfg, logger)

		result, err := reviewService.ProcessPullRequest(ctx, prDetails)
		if err != nil {
			logger.Fatal().Err(err).Msg("code review run failed")
		}
		logger.Info().Msgf("Process finished: %s", result)
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to an optional TOML config file")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// buildPRDetails derives the PR identity from validated configuration.
func buildPRDetails(cfg *config.Config) (*models.PRDetails, error) {
	owner, repo, err := cfg.OwnerRepo()
	if err != nil {
		return nil, err
	}
	return &models.PRDetails{
		Owner:    owner,
		Repo:     repo,
		PRNumber: cfg.PRNumber,
	}, nil
}
