// Package config builds the one configuration object the pipeline runs on.
// Layering: built-in defaults, then an optional TOML file, then environment
// variables. Nothing else in the repository reads the environment directly.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"dex-code-reviewer/constants"
	"dex-code-reviewer/internal/models"
)

// Config is the full configuration for one pipeline run.
type Config struct {
	// Repository is the hosting slug in owner/name form.
	Repository string `koanf:"repository"`
	PRNumber   int    `koanf:"pr_number"`

	VCS     VCSConfig     `koanf:"vcs"`
	Backend BackendConfig `koanf:"backend"`
	Review  ReviewConfig  `koanf:"review"`
}

// VCSConfig selects and configures the hosting API client.
type VCSConfig struct {
	Provider string       `koanf:"provider"`
	GitHub   GitHubConfig `koanf:"github"`
	Gitea    GiteaConfig  `koanf:"gitea"`
}

type GitHubConfig struct {
	Token string `koanf:"token"`
}

type GiteaConfig struct {
	BaseURL string `koanf:"base_url"`
	Token   string `koanf:"token"`
}

// BackendConfig configures the review-generation backend client.
type BackendConfig struct {
	URL string `koanf:"url"`
	// Shape selects the request payload format: "simple" or "chat".
	Shape string `koanf:"shape"`
	// SessionCookie is the opaque credential obtained out-of-band, attached
	// to every backend call for the run and never renewed automatically.
	SessionCookie string `koanf:"session_cookie"`
	// MaxRetries is the total number of attempts for transient failures.
	MaxRetries int `koanf:"max_retries"`
	// TimeoutSeconds bounds each individual attempt.
	TimeoutSeconds int `koanf:"timeout_seconds"`
}

// ReviewConfig configures what gets reviewed and how feedback is labeled.
type ReviewConfig struct {
	// DiffMode selects the projection sent to the backend: "added" or "raw".
	DiffMode string `koanf:"diff_mode"`
	// Rules is the opaque criteria blob embedded in the backend instruction.
	Rules string `koanf:"rules"`
	// Label is the review-level body on every submitted review.
	Label string `koanf:"label"`
	// Extensions restricts which changed files are reviewed.
	Extensions []string `koanf:"extensions"`
}

// envKeys maps the fixed environment surface onto config paths. Variables
// outside this map are ignored.
var envKeys = map[string]string{
	constants.GITHUB_REPOSITORY:     "repository",
	constants.GITEA_REPOSITORY:      "repository",
	constants.PR_NUMBER:             "pr_number",
	"VCS_PROVIDER":                  "vcs.provider",
	constants.GITHUB_TOKEN:          "vcs.github.token",
	constants.GITEA_TOKEN:           "vcs.gitea.token",
	"GITEA_BASE_URL":                "vcs.gitea.base_url",
	constants.CUSTOM_SERVICE_COOKIE: "backend.session_cookie",
	constants.REVIEW_BACKEND_URL:    "backend.url",
	constants.REVIEW_MAX_RETRIES:    "backend.max_retries",
	"REVIEW_DIFF_MODE":              "review.diff_mode",
}

// LoadConfig loads configuration from defaults, an optional TOML file, and
// the environment, in increasing precedence.
func LoadConfig(configPath string) (*Config, error) {
	k := koanf.New(".")

	k.Load(confmap.Provider(map[string]interface{}{
		"vcs.provider":            constants.GITHUB,
		"backend.url":             constants.DefaultBackendURL,
		"backend.shape":           constants.ShapeChat,
		"backend.max_retries":     3,
		"backend.timeout_seconds": 60,
		"review.diff_mode":        constants.DiffModeAdded,
		"review.rules":            constants.DefaultRules,
		"review.label":            constants.ReviewLabel,
		"review.extensions":       constants.DefaultExtensions,
	}, "."), nil)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
				return nil, fmt.Errorf("error loading config file %s: %w", configPath, err)
			}
		}
	}

	k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that everything required before the first network call is
// present. All errors carry FailureConfiguration.
func (c *Config) Validate() error {
	var missing []string
	if c.Repository == "" {
		missing = append(missing, constants.GITHUB_REPOSITORY)
	}
	if c.PRNumber <= 0 {
		missing = append(missing, constants.PR_NUMBER)
	}
	switch c.VCS.Provider {
	case constants.GITHUB:
		if c.VCS.GitHub.Token == "" {
			missing = append(missing, constants.GITHUB_TOKEN)
		}
	case constants.GITEA:
		if c.VCS.Gitea.Token == "" {
			missing = append(missing, constants.GITEA_TOKEN)
		}
	default:
		return models.Failuref(models.FailureConfiguration,
			"unsupported VCS provider: %q", c.VCS.Provider)
	}
	if c.Backend.SessionCookie == "" {
		missing = append(missing, constants.CUSTOM_SERVICE_COOKIE)
	}
	if len(missing) > 0 {
		return models.Failuref(models.FailureConfiguration,
			"missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.Backend.Shape != constants.ShapeSimple && c.Backend.Shape != constants.ShapeChat {
		return models.Failuref(models.FailureConfiguration,
			"unsupported backend shape: %q", c.Backend.Shape)
	}
	if c.Backend.MaxRetries < 1 {
		return models.Failuref(models.FailureConfiguration,
			"backend max_retries must be at least 1, got %d", c.Backend.MaxRetries)
	}
	return nil
}

// OwnerRepo splits the owner/name slug.
func (c *Config) OwnerRepo() (string, string, error) {
	parts := strings.Split(c.Repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository slug %q, want owner/name", c.Repository)
	}
	return parts[0], parts[1], nil
}
