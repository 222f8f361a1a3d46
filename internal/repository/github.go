package repository

import (
	"context"
	"fmt"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"dex-code-reviewer/internal/models"
)

// GitHubRepository implements the VcsRepository interface for GitHub.
type GitHubRepository struct {
	client *github.Client
}

// NewGitHubRepository creates a new client for interacting with the GitHub API.
func NewGitHubRepository(ctx context.Context, token string) *GitHubRepository {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)
	return &GitHubRepository{client: client}
}

// ListChangedFiles pages through the PR's changed-file listing. Each entry
// carries the filename and its unified-diff patch; the patch is empty for
// files GitHub declines to render.
func (g *GitHubRepository) ListChangedFiles(ctx context.Context, owner, repo string, prNumber int) ([]*models.ChangedFile, error) {
	var all []*models.ChangedFile
	opt := &github.ListOptions{PerPage: 100}
	for {
		files, resp, err := g.client.PullRequests.ListFiles(ctx, owner, repo, prNumber, opt)
		if err != nil {
			return nil, fmt.Errorf("failed to list PR files from GitHub: %w", err)
		}
		for _, f := range files {
			all = append(all, &models.ChangedFile{
				Filename: f.GetFilename(),
				Patch:    f.GetPatch(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return all, nil
}

func (g *GitHubRepository) GetPRCommitID(ctx context.Context, owner, repo string, prNumber int) (string, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, owner, repo, prNumber)
	if err != nil {
		return "", fmt.Errorf("failed to get pull request details: %w", err)
	}
	return pr.GetHead().GetSHA(), nil
}

// PostReview submits all comments for one file as a single COMMENT review
// tagged with the head commit.
func (g *GitHubRepository) PostReview(ctx context.Context, owner, repo string, prNumber int, comments []*models.Comment, commitID, body string) error {
	var reviewComments []*github.DraftReviewComment
	for _, c := range comments {
		reviewComments = append(reviewComments, &github.DraftReviewComment{
			Path:     &c.Path,
			Position: &c.Position,
			Body:     &c.Body,
		})
	}
	reviewRequest := &github.PullRequestReviewRequest{
		CommitID: &commitID,
		Body:     &body,
		Event:    github.String("COMMENT"),
		Comments: reviewComments,
	}
	_, _, err := g.client.PullRequests.CreateReview(ctx, owner, repo, prNumber, reviewRequest)
	if err != nil {
		return models.NewFailure(models.FailurePublishRejected, err)
	}
	return nil
}

func (g *GitHubRepository) PostGeneralComment(ctx context.Context, owner, repo string, prNumber int, body string) error {
	issueComment := &github.IssueComment{Body: &body}
	_, _, err := g.client.Issues.CreateComment(ctx, owner, repo, prNumber, issueComment)
	return err
}
