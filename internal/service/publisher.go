package service

import (
	"regexp"
	"strconv"
	"strings"

	"dex-code-reviewer/constants"
	"dex-code-reviewer/internal/models"
)

// BuildComments maps canonical feedback onto the diff's position coordinate
// space. Clean and summary feedback anchor at position 1, which is always
// valid because empty diffs never reach this point. Annotations resolve per
// line content; an unmatched annotation keeps position 0, the hosting-API
// convention for an unanchored file-level comment.
func BuildComments(feedback *models.Feedback, filename, diffText string) []*models.Comment {
	switch feedback.Kind {
	case models.FeedbackClean:
		return []*models.Comment{{
			Path:     filename,
			Position: 1,
			Body:     constants.CleanSentinel,
		}}
	case models.FeedbackSummary:
		return []*models.Comment{{
			Path:     filename,
			Position: 1,
			Body:     feedback.Summary,
		}}
	case models.FeedbackAnnotations:
		comments := make([]*models.Comment, 0, len(feedback.Annotations))
		for _, a := range feedback.Annotations {
			position, line := resolvePosition(diffText, a.LineContent)
			comments = append(comments, &models.Comment{
				Path:     filename,
				Position: position,
				Line:     line,
				Body:     a.Body,
			})
		}
		return comments
	}
	return nil
}

var hunkHeader = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

// resolvePosition scans the diff line by line and returns the 1-based index
// of the last added line containing lineContent as a substring, together
// with that line's new-file number. Matching by content is ambiguous when
// text recurs; the later match deterministically wins. No match yields
// (0, 0). The returned position is only valid for this exact diff string.
func resolvePosition(diffText, lineContent string) (int, int) {
	position, fileLine := 0, 0
	newLine := 0
	for idx, line := range strings.Split(diffText, "\n") {
		if m := hunkHeader.FindStringSubmatch(line); m != nil {
			newLine, _ = strconv.Atoi(m[1])
			continue
		}
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			continue
		case strings.HasPrefix(line, "-"):
			continue
		case strings.HasPrefix(line, "+"):
			if lineContent != "" && strings.Contains(line, lineContent) {
				position = idx + 1
				fileLine = newLine
			}
			newLine++
		default:
			newLine++
		}
	}
	return position, fileLine
}
