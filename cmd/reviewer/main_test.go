package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dex-code-reviewer/config"
)

func TestBuildPRDetails(t *testing.T) {
	t.Run("Success - splits the repository slug", func(t *testing.T) {
		cfg := &config.Config{Repository: "test-owner/test-repo", PRNumber: 123}

		details, err := buildPRDetails(cfg)

		require.NoError(t, err)
		assert.Equal(t, "test-owner", details.Owner)
		assert.Equal(t, "test-repo", details.Repo)
		assert.Equal(t, 123, details.PRNumber)
	})

	t.Run("Failure - invalid slug format", func(t *testing.T) {
		cfg := &config.Config{Repository: "not-a-slug", PRNumber: 1}

		_, err := buildPRDetails(cfg)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid repository slug")
	})
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "env-owner/env-repo")
	t.Setenv("PR_NUMBER", "456")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	details, err := buildPRDetails(cfg)
	require.NoError(t, err)
	assert.Equal(t, "env-owner", details.Owner)
	assert.Equal(t, "env-repo", details.Repo)
	assert.Equal(t, 456, details.PRNumber)
}
