package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"dex-code-reviewer/config"
	"dex-code-reviewer/internal/diffparser"
	"dex-code-reviewer/internal/models"
	"dex-code-reviewer/internal/repository"
)

// FeedbackClient is the review-generation backend seam, satisfied by
// dex.Client and stubbed in tests.
type FeedbackClient interface {
	Request(ctx context.Context, diff, rules string) (*models.Feedback, error)
}

// ReviewService encapsulates the core business logic for reviewing a pull
// request: it walks the changed files, collects backend feedback per file,
// and publishes positioned review comments.
type ReviewService struct {
	repo    repository.VcsRepository
	backend FeedbackClient
	cfg     *config.Config
	logger  zerolog.Logger
}

// NewReviewService creates a new service instance.
func NewReviewService(vcsRepo repository.VcsRepository, backend FeedbackClient, cfg *config.Config, logger zerolog.Logger) *ReviewService {
	return &ReviewService{repo: vcsRepo, backend: backend, cfg: cfg, logger: logger}
}

// ProcessPullRequest is the main orchestration method. Failures on one file
// are logged and do not abort the remaining files; only setup failures
// (listing files, resolving the head commit) end the run.
func (s *ReviewService) ProcessPullRequest(ctx context.Context, prDetails *models.PRDetails) (string, error) {
	s.logger.Info().Int("pr", prDetails.PRNumber).
		Str("repo", prDetails.Owner+"/"+prDetails.Repo).
		Msg("starting review")

	files, err := s.repo.ListChangedFiles(ctx, prDetails.Owner, prDetails.Repo, prDetails.PRNumber)
	if err != nil {
		return "", fmt.Errorf("failed to list changed files: %w", err)
	}

	relevant := filterRelevantFiles(files, s.cfg.Review.Extensions)
	if len(relevant) == 0 {
		return "No relevant files to analyze.", nil
	}

	commitID, err := s.repo.GetPRCommitID(ctx, prDetails.Owner, prDetails.Repo, prDetails.PRNumber)
	if err != nil {
		return "", fmt.Errorf("failed to get PR head commit: %w", err)
	}

	reviewed, failed := 0, 0
	for _, file := range relevant {
		if err := s.reviewFile(ctx, prDetails, file, commitID); err != nil {
			evt := s.logger.Error().Err(err).Str("file", file.Filename)
			if kind, ok := models.FailureKindOf(err); ok {
				evt = evt.Stringer("kind", kind)
			}
			evt.Msg("file review failed")
			failed++
			continue
		}
		reviewed++
	}

	result := fmt.Sprintf("Review complete. Reviewed %d file(s), %d failed.", reviewed, failed)
	s.logger.Info().Msg(result)
	return result, nil
}

// reviewFile runs the full pipeline for one changed file: diff projection,
// backend feedback, position mapping, and exactly one review submission.
func (s *ReviewService) reviewFile(ctx context.Context, prDetails *models.PRDetails, file *models.ChangedFile, commitID string) error {
	if file.Patch == "" {
		s.logger.Info().Str("file", file.Filename).Msg("no patch, nothing to review")
		return nil
	}

	diffText := diffparser.Extract(file.Patch, s.cfg.Review.DiffMode)
	if diffText == "" {
		s.logger.Info().Str("file", file.Filename).Msg("no added lines, nothing to review")
		return nil
	}

	feedback, err := s.backend.Request(ctx, diffText, s.cfg.Review.Rules)
	if err != nil {
		return err
	}

	// Positions are resolved against the patch the hosting API knows about,
	// not against the projection sent to the backend.
	comments := BuildComments(feedback, file.Filename, file.Patch)

	if err := s.repo.PostReview(ctx, prDetails.Owner, prDetails.Repo, prDetails.PRNumber,
		comments, commitID, s.cfg.Review.Label); err != nil {
		if _, ok := models.FailureKindOf(err); ok {
			return err
		}
		return models.NewFailure(models.FailurePublishRejected, err)
	}

	s.logger.Info().Str("file", file.Filename).Int("comments", len(comments)).
		Stringer("feedback", feedback.Kind).Msg("review posted")
	return nil
}

// filterRelevantFiles keeps files whose names end in one of the configured
// extensions.
func filterRelevantFiles(files []*models.ChangedFile, extensions []string) []*models.ChangedFile {
	var relevant []*models.ChangedFile
	for _, f := range files {
		for _, ext := range extensions {
			if strings.HasSuffix(f.Filename, ext) {
				relevant = append(relevant, f)
				break
			}
		}
	}
	return relevant
}
