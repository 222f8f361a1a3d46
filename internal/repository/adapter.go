package repository

import (
	"context"

	"dex-code-reviewer/internal/models"
)

// VcsRepository defines the interface for data access operations against a
// source-control hosting API.
type VcsRepository interface {
	ListChangedFiles(ctx context.Context, owner, repo string, prNumber int) ([]*models.ChangedFile, error)
	GetPRCommitID(ctx context.Context, owner, repo string, prNumber int) (string, error)
	PostReview(ctx context.Context, owner, repo string, prNumber int, comments []*models.Comment, commitID, body string) error
	PostGeneralComment(ctx context.Context, owner, repo string, prNumber int, body string) error
}
