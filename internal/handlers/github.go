package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v62/github"
	"github.com/rs/zerolog"

	"dex-code-reviewer/config"
	"dex-code-reviewer/constants"
	"dex-code-reviewer/internal/dex"
	"dex-code-reviewer/internal/models"
	"dex-code-reviewer/internal/repository"
	"dex-code-reviewer/internal/service"
)

// GitHubWebhookHandler handles incoming GitHub webhooks.
type GitHubWebhookHandler struct {
	reviewService *service.ReviewService
	secret        []byte
	logger        zerolog.Logger
}

// NewGitHubWebhookHandler creates a new handler. The handler creates its own
// dependencies (repository, backend client, and service).
func NewGitHubWebhookHandler(cfg *config.Config, secret string, logger zerolog.Logger) (*GitHubWebhookHandler, error) {
	repo := repository.NewGitHubRepository(context.Background(), cfg.VCS.GitHub.Token)
	backend := dex.NewClient(cfg.Backend, logger)
	reviewService := service.NewReviewService(repo, backend, cfg, logger)
	return &GitHubWebhookHandler{
		reviewService: reviewService,
		secret:        []byte(secret),
		logger:        logger,
	}, nil
}

// Handle is the Gin handler function.
func (h *GitHubWebhookHandler) Handle(c *gin.Context) {
	payload, err := github.ValidatePayload(c.Request, h.secret)
	if err != nil {
		h.logger.Warn().Err(err).Msg("invalid GitHub payload signature")
		c.String(http.StatusForbidden, "Forbidden")
		return
	}
	event, err := github.ParseWebHook(github.WebHookType(c.Request), payload)
	if err != nil {
		h.logger.Warn().Err(err).Msg("unparsable GitHub event")
		c.String(http.StatusBadRequest, "Bad Request")
		return
	}
	switch event := event.(type) {
	case *github.PullRequestEvent:
		action := event.GetAction()
		if action == constants.OPENED || action == constants.SYNCHRONIZE || action == constants.REOPENED {
			h.logger.Info().Str("action", action).Int("pr", event.GetNumber()).
				Msg("received GitHub PR event")
			go h.processPullRequest(event)
		} else {
			h.logger.Info().Str("action", action).Msg("ignoring GitHub PR action")
		}
		c.String(http.StatusOK, "Event received.")
	default:
		h.logger.Info().Msgf("ignoring GitHub webhook event type: %T", event)
		c.String(http.StatusOK, "Event type ignored.")
	}
}

func (h *GitHubWebhookHandler) processPullRequest(event *github.PullRequestEvent) {
	pr := event.GetPullRequest()
	if pr.GetState() != constants.OPEN {
		h.logger.Info().Int("pr", event.GetNumber()).Str("state", pr.GetState()).
			Msg("ignoring PR that is not open")
		return
	}
	prDetails := &models.PRDetails{
		Owner:    pr.Base.Repo.GetOwner().GetLogin(),
		Repo:     pr.Base.Repo.GetName(),
		PRNumber: event.GetNumber(),
		Title:    pr.GetTitle(),
		Branch:   pr.GetHead().GetRef(),
		URL:      pr.GetHTMLURL(),
	}
	if _, err := h.reviewService.ProcessPullRequest(context.Background(), prDetails); err != nil {
		h.logger.Error().Err(err).Int("pr", prDetails.PRNumber).Msg("code review failed for GitHub PR")
	}
}
