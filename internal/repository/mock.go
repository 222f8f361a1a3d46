package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dex-code-reviewer/internal/models"
)

// MockVcsRepository is a testify-based test double for VcsRepository, shared
// by service and handler tests.
type MockVcsRepository struct {
	mock.Mock
}

func (m *MockVcsRepository) ListChangedFiles(ctx context.Context, owner, repo string, prNumber int) ([]*models.ChangedFile, error) {
	args := m.Called(ctx, owner, repo, prNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ChangedFile), args.Error(1)
}

func (m *MockVcsRepository) GetPRCommitID(ctx context.Context, owner, repo string, prNumber int) (string, error) {
	args := m.Called(ctx, owner, repo, prNumber)
	return args.String(0), args.Error(1)
}

func (m *MockVcsRepository) PostReview(ctx context.Context, owner, repo string, prNumber int, comments []*models.Comment, commitID, body string) error {
	args := m.Called(ctx, owner, repo, prNumber, comments, commitID, body)
	return args.Error(0)
}

func (m *MockVcsRepository) PostGeneralComment(ctx context.Context, owner, repo string, prNumber int, body string) error {
	args := m.Called(ctx, owner, repo, prNumber, body)
	return args.Error(0)
}
