package repository

import (
	"regexp"
	"strings"

	"dex-code-reviewer/internal/models"
)

var fileBoundary = regexp.MustCompile(`(?m)^diff --git a/`)

// SplitUnifiedDiff splits a whole-PR unified diff into per-file changed-file
// records. The per-file patch starts at the first hunk header, matching the
// patch field shape of hosting-API file listings.
func SplitUnifiedDiff(diff string) []*models.ChangedFile {
	var files []*models.ChangedFile

	chunks := fileBoundary.Split(diff, -1)
	for _, chunk := range chunks[min(1, len(chunks)):] {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		lines := strings.Split(chunk, "\n")

		filename := parseDiffHeader("diff --git a/" + lines[0])
		if filename == "" {
			continue
		}

		hunkStart := -1
		for i, line := range lines {
			if strings.HasPrefix(line, "@@") {
				hunkStart = i
				break
			}
		}
		patch := ""
		if hunkStart >= 0 {
			patch = strings.TrimRight(strings.Join(lines[hunkStart:], "\n"), "\n")
		}

		files = append(files, &models.ChangedFile{
			Filename: filename,
			Patch:    patch,
		})
	}
	return files
}

// parseDiffHeader extracts the new path from "diff --git a/old b/new".
func parseDiffHeader(header string) string {
	parts := strings.Fields(header)
	if len(parts) == 4 {
		return strings.TrimPrefix(parts[3], "b/")
	}
	return ""
}
