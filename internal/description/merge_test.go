package description

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsMarker(t *testing.T) {
	assert.False(t, ContainsMarker(""))
	assert.False(t, ContainsMarker("plain description"))
	assert.True(t, ContainsMarker(Wrap("block")))
	assert.True(t, ContainsMarker("intro\n"+HiddenMarker))
}

func TestShouldUpdate(t *testing.T) {
	assert.True(t, ShouldUpdate(""))
	assert.True(t, ShouldUpdate("some_body"))
	assert.False(t, ShouldUpdate(Merge("some_body", "block")))
}

func TestWrapDropsNestedMarkers(t *testing.T) {
	wrapped := Wrap("a " + StartMarker + " b " + EndMarker)

	assert.Equal(t, 1, strings.Count(wrapped, StartMarker))
	assert.Equal(t, 1, strings.Count(wrapped, EndMarker))
	assert.True(t, strings.HasPrefix(wrapped, StartMarker))
	assert.True(t, strings.HasSuffix(wrapped, EndMarker))
}

func TestMerge(t *testing.T) {
	block := "<b>ABC-123</b>"
	wrapped := Wrap(block)

	testCases := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "Empty body",
			body:     "",
			expected: wrapped,
		},
		{
			name:     "Whitespace body",
			body:     " \n\t",
			expected: wrapped,
		},
		{
			name:     "Body without block",
			body:     "Fixes the login form.\n",
			expected: "Fixes the login form.\n\n" + wrapped,
		},
		{
			name:     "Body with old block",
			body:     "intro\n" + Wrap("old") + "\noutro",
			expected: "intro\n" + wrapped + "\noutro",
		},
		{
			name:     "Body with duplicated blocks",
			body:     "intro\n" + Wrap("old") + "\nmiddle\n" + Wrap("older") + "\noutro",
			expected: "intro\n" + wrapped + "\nmiddle\n\noutro",
		},
		{
			name:     "Unterminated block",
			body:     "intro\n" + StartMarker + "\nleftover",
			expected: "intro\n" + wrapped,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			merged := Merge(tc.body, block)

			assert.Equal(t, tc.expected, merged)
			assert.Equal(t, 1, strings.Count(merged, StartMarker))
			assert.Equal(t, 1, strings.Count(merged, EndMarker))
		})
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	bodies := []string{
		"",
		"some_body",
		"line one\n\nline two\n\n\n",
		"intro\n" + Wrap("old") + "\noutro",
		StartMarker,
	}

	for _, body := range bodies {
		once := Merge(body, "block")
		twice := Merge(once, "block")
		assert.Equal(t, once, twice, "body %q", body)
	}
}

func TestMergeReplacesChangedBlock(t *testing.T) {
	first := Merge("keep me", "status: To Do")
	second := Merge(first, "status: In Progress")

	assert.Contains(t, second, "keep me")
	assert.Contains(t, second, "status: In Progress")
	assert.NotContains(t, second, "status: To Do")
}
