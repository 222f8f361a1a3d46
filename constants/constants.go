package constants

const (
	OPENED                string = "opened"
	SYNCHRONIZE           string = "synchronize"
	REOPENED              string = "reopened"
	GITHUB                string = "Github"
	GITHUB_ENDPOINT       string = "/github/webhook"
	GITHUB_TOKEN          string = "GITHUB_TOKEN"
	GITHUB_WEBHOOK_SECRET string = "GITHUB_WEBHOOK_SECRET"
	GITEA                 string = "Gitea"
	GITEA_TOKEN           string = "GITEA_TOKEN"
	GITEA_WEBHOOK_SECRET  string = "GITEA_WEBHOOK_SECRET"
	GITEA_ENDPOINT        string = "/gitea/webhook"
	PR_NUMBER             string = "PR_NUMBER"
	GITHUB_REPOSITORY     string = "GITHUB_REPOSITORY"
	GITEA_REPOSITORY      string = "GITEA_REPOSITORY"
	CUSTOM_SERVICE_COOKIE string = "CUSTOM_SERVICE_COOKIE"
	REVIEW_BACKEND_URL    string = "REVIEW_BACKEND_URL"
	REVIEW_MAX_RETRIES    string = "REVIEW_MAX_RETRIES"

	OPEN string = "open"

	// CleanSentinel is the exact string the review backend is instructed to
	// return when a diff passes review. Comparison is exact after trimming
	// surrounding whitespace.
	CleanSentinel string = "Everything looks good."

	// ReviewLabel is the review-level body attached to every submitted review.
	ReviewLabel string = "Automated Code Review by OpenAI Azure 4o"

	// DefaultBackendURL is the review-generation endpoint. Overridable via
	// REVIEW_BACKEND_URL for self-hosted deployments and tests.
	DefaultBackendURL string = "https://www.dex.inside.philips.com/philips-ai-chat/chat/api/user/SendImageMessage"

	// Payload shapes accepted by the review backend. Callers pick one per
	// deployment; the two are never mixed within a run.
	ShapeSimple string = "simple"
	ShapeChat   string = "chat"

	// Diff projection modes.
	DiffModeAdded string = "added"
	DiffModeRaw   string = "raw"
)

// DefaultExtensions lists the file suffixes considered reviewable. Files
// outside this set are skipped before any backend call.
var DefaultExtensions = []string{
	".py", ".js", ".jsx", ".ts", ".tsx", ".java", ".cs", ".c", ".cpp", ".h", ".hpp",
	".go", ".rb", ".php", ".html", ".css", ".kt", ".swift", ".scala", ".rs", ".sh",
	".dart", ".sql",
}

// DefaultRules is the review criteria sent to the backend when no rules are
// configured. The text is opaque to the pipeline and passed through as-is.
const DefaultRules = `1. Code Quality: Ensure clear naming conventions, avoid magic numbers, and verify that functions have appropriate comments.
2. Performance Optimization: Identify any unnecessary iterations or inefficient string concatenations.
3. Security Best Practices: Check for proper input validation and the absence of hard-coded secrets.
4. Maintainability: Look for dead code, proper exception handling, and ensure modularity.
5. Code Style: Confirm consistent indentation, brace style, and identify any duplicated code.`
