package handlers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"dex-code-reviewer/config"
	"dex-code-reviewer/constants"
	"dex-code-reviewer/internal/dex"
	"dex-code-reviewer/internal/models"
	"dex-code-reviewer/internal/repository"
	"dex-code-reviewer/internal/service"
)

// GiteaPullRequestHook represents the structure of Gitea's PR webhook payload.
type GiteaPullRequestHook struct {
	Action string `json:"action"`
	Number int64  `json:"number"`
	Repo   struct {
		Owner struct {
			Login string `json:"login"`
		} `json:"owner"`
		Name string `json:"name"`
	} `json:"repository"`
	PullRequest struct {
		Title   string `json:"title"`
		HTMLURL string `json:"html_url"`
		Head    struct {
			Ref string `json:"ref"`
		} `json:"head"`
	} `json:"pull_request"`
}

// GiteaWebhookHandler handles incoming Gitea webhooks.
type GiteaWebhookHandler struct {
	reviewService *service.ReviewService
	secret        string
	logger        zerolog.Logger
}

// NewGiteaWebhookHandler creates a new handler. Without a configured Gitea
// token the handler still validates and acknowledges webhooks but skips
// review processing.
func NewGiteaWebhookHandler(cfg *config.Config, secret string, logger zerolog.Logger) (*GiteaWebhookHandler, error) {
	h := &GiteaWebhookHandler{secret: secret, logger: logger}
	if cfg.VCS.Gitea.Token != "" {
		repo, err := repository.NewGiteaRepository(cfg.VCS.Gitea.BaseURL, cfg.VCS.Gitea.Token)
		if err != nil {
			return nil, err
		}
		backend := dex.NewClient(cfg.Backend, logger)
		h.reviewService = service.NewReviewService(repo, backend, cfg, logger)
	}
	return h, nil
}

// Handle is the Gin handler function.
func (h *GiteaWebhookHandler) Handle(c *gin.Context) {
	signature := c.GetHeader("X-Gitea-Signature")
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	expectedSignature := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		c.String(http.StatusForbidden, "Forbidden: Invalid signature")
		return
	}

	var payload GiteaPullRequestHook
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.String(http.StatusBadRequest, "Bad Request")
		return
	}

	action := payload.Action
	if action == constants.OPENED || action == constants.SYNCHRONIZE || action == constants.REOPENED {
		h.logger.Info().Str("action", action).Int64("pr", payload.Number).
			Msg("received Gitea PR event")
		go h.processPullRequest(&payload)
		c.String(http.StatusOK, "Event received.")
	} else {
		h.logger.Info().Str("action", action).Msg("ignoring Gitea PR action")
		c.String(http.StatusOK, "Event ignored.")
	}
}

func (h *GiteaWebhookHandler) processPullRequest(payload *GiteaPullRequestHook) {
	if h.reviewService == nil {
		h.logger.Warn().Int64("pr", payload.Number).Msg("gitea token not configured, skipping review")
		return
	}
	prDetails := &models.PRDetails{
		Owner:    payload.Repo.Owner.Login,
		Repo:     payload.Repo.Name,
		PRNumber: int(payload.Number),
		Title:    payload.PullRequest.Title,
		Branch:   payload.PullRequest.Head.Ref,
		URL:      payload.PullRequest.HTMLURL,
	}
	if _, err := h.reviewService.ProcessPullRequest(context.Background(), prDetails); err != nil {
		h.logger.Error().Err(err).Int("pr", prDetails.PRNumber).Msg("code review failed for Gitea PR")
	}
}
