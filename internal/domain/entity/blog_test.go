package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateReadTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty content", "", 1},
		{"short content", "just a few words", 1},
		{"exactly one minute", strings.Repeat("word ", 200), 1},
		{"rounds up", strings.Repeat("word ", 201), 2},
		{"long content", strings.Repeat("word ", 1000), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateReadTime(tt.content))
		})
	}
}

func TestGenerateSummary(t *testing.T) {
	t.Run("strips html tags", func(t *testing.T) {
		assert.Equal(t, "Hello world", GenerateSummary("<p>Hello <b>world</b></p>"))
	})

	t.Run("truncates long content", func(t *testing.T) {
		long := strings.Repeat("a", 300)
		summary := GenerateSummary(long)
		assert.Len(t, summary, 203)
		assert.True(t, strings.HasSuffix(summary, "..."))
	})

	t.Run("short content untouched", func(t *testing.T) {
		assert.Equal(t, "short", GenerateSummary("short"))
	})
}
