package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostProcess_Warnings(t *testing.T) {
	style := DefaultStyle()
	long := strings.Repeat("word ", 200)

	testCases := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "clean post",
			raw:      long + "#AI #ML #Data",
			expected: nil,
		},
		{
			name:     "too short without hashtags",
			raw:      "Short post.",
			expected: []string{"word count 2 outside 150-300", "no hashtags"},
		},
		{
			name:     "markdown and emoji",
			raw:      "## Title\n\n" + long + "**bold** 🚀 #AI",
			expected: []string{"contains emoji", "markdown emphasis", "markdown heading"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			post, err := PostProcess(tc.raw, "topic", style)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, post.Warnings)
			assert.Equal(t, strings.TrimSpace(tc.raw), post.Text)
		})
	}
}

func TestPostProcess_Empty(t *testing.T) {
	_, err := PostProcess(" \n\t", "topic", DefaultStyle())
	require.Error(t, err)
}

func TestExtractHashtags_Dedupes(t *testing.T) {
	tags := extractHashtags("#MLOps is hard. #mlops #DataOps #Data_Eng")
	assert.Equal(t, []string{"#MLOps", "#DataOps", "#Data_Eng"}, tags)
}

func TestMarkdownKinds(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "plain text with hashtags", input: "Plain text.\n\n#AI #DataScience", expected: []string{}},
		{name: "link", input: "See [docs](https://example.com)", expected: []string{"link"}},
		{name: "code", input: "Use `EXPLAIN ANALYZE` first", expected: []string{"code"}},
		{name: "dash list is fine", input: "- one\n- two", expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, markdownKinds(tc.input))
		})
	}
}

func TestCleanImagePrompt(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "double quotes", input: `"Neon server racks"`, expected: "Neon server racks"},
		{name: "smart quotes and spaces", input: "  “Team  at a\nwhiteboard”  ", expected: "Team at a whiteboard"},
		{name: "empty quotes", input: `""`, expected: ""},
		{name: "truncated", input: strings.Repeat("a", 150), expected: strings.Repeat("a", 100)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, cleanImagePrompt(tc.input))
		})
	}
}
