package diffparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAdded(t *testing.T) {
	testCases := []struct {
		name     string
		patch    string
		expected string
	}{
		{
			name:     "Empty patch",
			patch:    "",
			expected: "",
		},
		{
			name:     "Keeps added lines only",
			patch:    "@@ -1,2 +1,3 @@\n context\n+added one\n-removed\n+added two",
			expected: "+added one\n+added two",
		},
		{
			name:     "Excludes the +++ file header",
			patch:    "--- a/main.go\n+++ b/main.go\n@@ -1,1 +1,2 @@\n context\n+added",
			expected: "+added",
		},
		{
			name:     "No added lines",
			patch:    "@@ -1,2 +1,1 @@\n context\n-removed",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExtractAdded(tc.patch))
		})
	}
}

func TestExtractAddedPreservesOrderAndSource(t *testing.T) {
	patch := "+++ b/a.go\n@@ -1,3 +1,6 @@\n ctx\n+first\n ctx2\n+second\n-gone\n+third"
	out := ExtractAdded(patch)

	sourceLines := strings.Split(patch, "\n")
	var prevIdx = -1
	for _, line := range strings.Split(out, "\n") {
		found := -1
		for i, src := range sourceLines {
			if i > prevIdx && src == line {
				found = i
				break
			}
		}
		assert.GreaterOrEqual(t, found, 0, "output line %q missing from input or out of order", line)
		prevIdx = found
	}
	assert.Equal(t, "+first\n+second\n+third", out)
}

func TestExtract(t *testing.T) {
	patch := "@@ -1,1 +1,2 @@\n ctx\n+new"

	assert.Equal(t, "+new", Extract(patch, "added"))
	assert.Equal(t, patch, Extract(patch, "raw"))
	assert.Equal(t, patch, Extract(patch, "unknown-mode"))
}
