package models

// PRDetails holds information about the pull request being reviewed.
type PRDetails struct {
	Owner    string
	Repo     string
	PRNumber int
	Title    string
	Branch   string
	URL      string
}

// ChangedFile is one entry from the hosting API's changed-files listing.
// Patch is the unified-diff hunk text for the file; it is empty for binary
// files and for files the API declines to render.
type ChangedFile struct {
	Filename string
	Patch    string
}

// Comment represents a single review comment to be posted.
// Position is the 1-based line index into the diff text as submitted to the
// hosting API, counting every line including hunk headers. It is only valid
// for the exact diff string it was computed against. Line is the new-file
// line number, used by Gitea's review endpoint.
type Comment struct {
	Body     string
	Path     string
	Position int
	Line     int
}

// Annotation is one line-anchored remark from the review backend. The line
// is referenced by its literal text, not by number.
type Annotation struct {
	LineContent string `json:"line"`
	Body        string `json:"body"`
}

// FeedbackKind discriminates the Feedback union.
type FeedbackKind int

const (
	FeedbackClean FeedbackKind = iota
	FeedbackSummary
	FeedbackAnnotations
)

func (k FeedbackKind) String() string {
	switch k {
	case FeedbackClean:
		return "clean"
	case FeedbackSummary:
		return "summary"
	case FeedbackAnnotations:
		return "annotations"
	}
	return "unknown"
}

// Feedback is the canonical result of one backend call. Exactly one variant
// is populated: Clean carries nothing, Summary carries free text, and
// Annotations carries one or more line-anchored comments. An empty backend
// response never becomes a Feedback; it is reported as a Failure instead.
type Feedback struct {
	Kind        FeedbackKind
	Summary     string
	Annotations []Annotation
}

// CleanFeedback reports that the backend found no issues.
func CleanFeedback() *Feedback {
	return &Feedback{Kind: FeedbackClean}
}

// SummaryFeedback carries an unanchored natural-language judgment.
func SummaryFeedback(text string) *Feedback {
	return &Feedback{Kind: FeedbackSummary, Summary: text}
}

// AnnotationsFeedback carries line-anchored comments.
func AnnotationsFeedback(annotations []Annotation) *Feedback {
	return &Feedback{Kind: FeedbackAnnotations, Annotations: annotations}
}
