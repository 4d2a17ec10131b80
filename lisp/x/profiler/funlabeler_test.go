// Copyright © 2018 The ELPS authors

package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		expected string
	}{
		{
			name:     "empty",
			label:    "",
			expected: "",
		},
		{
			name:     "normal",
			label:    " Add-It ",
			expected: "Add-It",
		},
		{
			name:     "bang",
			label:    "swap!",
			expected: "swap!",
		},
		{
			name:     "predicate",
			label:    "sequential?",
			expected: "sequential?",
		},
		{
			name:     "spaces",
			label:    "Add  It",
			expected: "Add_It",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actual := sanitizeLabel(tc.label)
			assert.Equal(t, tc.expected, actual, "sanitizeLabel(%s)", tc.label)
		})
	}
}
