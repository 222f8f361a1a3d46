// Package diffparser derives review-ready projections from unified-diff
// patch text.
package diffparser

import (
	"strings"

	"dex-code-reviewer/constants"
)

// ExtractRaw returns the patch unmodified. Diff positions computed later are
// only valid against this exact string.
func ExtractRaw(patch string) string {
	return patch
}

// ExtractAdded returns only the added lines of the patch, one per line, in
// their original order. The "+++" file header is excluded even though it
// begins with the added-line marker. An absent or empty patch yields the
// empty string; callers treat that as nothing to review and skip the file.
func ExtractAdded(patch string) string {
	if patch == "" {
		return ""
	}
	var added []string
	for _, line := range strings.Split(patch, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			added = append(added, line)
		}
	}
	return strings.Join(added, "\n")
}

// Extract applies the projection named by mode. Any unrecognized mode falls
// back to the raw patch.
func Extract(patch, mode string) string {
	if mode == constants.DiffModeAdded {
		return ExtractAdded(patch)
	}
	return ExtractRaw(patch)
}
