package repository

import (
	"context"
	"fmt"
	"strings"

	"code.gitea.io/sdk/gitea"

	"dex-code-reviewer/internal/models"
)

// GiteaRepository implements the VcsRepository interface for Gitea.
type GiteaRepository struct {
	client *gitea.Client
}

// NewGiteaRepository creates a new client for interacting with the Gitea API.
func NewGiteaRepository(baseURL, token string) (*GiteaRepository, error) {
	c, err := gitea.NewClient(baseURL, gitea.SetToken(token))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gitea client: %w", err)
	}
	return &GiteaRepository{client: c}, nil
}

// ListChangedFiles fetches the whole PR diff and splits it into per-file
// patches. Gitea's changed-files endpoint does not carry patch text, so the
// raw diff is the source of truth here.
func (g *GiteaRepository) ListChangedFiles(ctx context.Context, owner, repo string, prIndex int) ([]*models.ChangedFile, error) {
	diff, _, err := g.client.GetPullRequestDiff(owner, repo, int64(prIndex), gitea.PullRequestDiffOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get PR diff from Gitea: %w", err)
	}
	return SplitUnifiedDiff(string(diff)), nil
}

func (g *GiteaRepository) GetPRCommitID(ctx context.Context, owner, repo string, prIndex int) (string, error) {
	pr, _, err := g.client.GetPullRequest(owner, repo, int64(prIndex))
	if err != nil {
		return "", err
	}
	return pr.Head.Sha, nil
}

func (g *GiteaRepository) PostReview(ctx context.Context, owner, repo string, prIndex int, comments []*models.Comment, commitID, body string) error {
	var giteaComments []gitea.CreatePullReviewComment
	for _, c := range comments {
		giteaComments = append(giteaComments, gitea.CreatePullReviewComment{
			Path:       c.Path,
			Body:       c.Body,
			NewLineNum: int64(c.Line),
		})
	}
	opts := gitea.CreatePullReviewOptions{
		State:    gitea.ReviewStateComment,
		CommitID: commitID,
		Body:     body,
		Comments: giteaComments,
	}
	_, _, err := g.client.CreatePullReview(owner, repo, int64(prIndex), opts)
	if err != nil && strings.Contains(err.Error(), "404 Not Found") {
		// Old Gitea instances lack batch reviews; degrade to one summary comment.
		var summary strings.Builder
		summary.WriteString("### AI Code Review Summary\n\n")
		for _, c := range comments {
			summary.WriteString(fmt.Sprintf("- **File `%s` (near position %d):** %s\n", c.Path, c.Position, c.Body))
		}
		return g.PostGeneralComment(ctx, owner, repo, prIndex, summary.String())
	}
	if err != nil {
		return models.NewFailure(models.FailurePublishRejected, err)
	}
	return nil
}

func (g *GiteaRepository) PostGeneralComment(ctx context.Context, owner, repo string, prIndex int, body string) error {
	opts := gitea.CreateIssueCommentOption{Body: body}
	_, _, err := g.client.CreateIssueComment(owner, repo, int64(prIndex), opts)
	return err
}
