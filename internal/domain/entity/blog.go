package entity

import (
	"math"
	"regexp"
	"strings"
	"time"
)

const (
	// summaryMaxLength caps auto-generated summaries.
	summaryMaxLength = 200

	// readingWordsPerMinute is the assumed reading speed for read-time estimates.
	readingWordsPerMinute = 200
)

// Blog is a single post. Ownership is expressed purely as the UserID foreign
// key; author display data is joined in at query time, never held here.
type Blog struct {
	ID              int64      // Numeric identifier.
	Title           string     // Post title.
	Content         string     // Full post body, may contain HTML.
	Summary         string     // Short teaser; auto-generated from content when absent.
	CoverImageURL   string     // Optional cover image.
	Category        string     // Optional single category.
	Tags            string     // Comma-separated tag list.
	IsPublished     bool       // Drafts are visible only to their author.
	ViewCount       int        // Incremented on every detail read.
	ReadTimeMinutes int        // Estimated reading time, always at least 1.
	UserID          int64      // Author foreign key.
	CreatedAt       time.Time  // Timestamp of creation.
	UpdatedAt       time.Time  // Timestamp of the last modification.
	PublishedAt     *time.Time // Set on first publish, nil for drafts.
}

var htmlTagPattern = regexp.MustCompile(`<.*?>`)

// EstimateReadTime computes the reading time in minutes for a post body,
// assuming an average reading speed. The result is never below one minute.
func EstimateReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := int(math.Ceil(float64(words) / readingWordsPerMinute))
	if minutes < 1 {
		return 1
	}

	return minutes
}

// GenerateSummary derives a plain-text teaser from a post body by stripping
// HTML tags and truncating to a fixed length.
func GenerateSummary(content string) string {
	plain := htmlTagPattern.ReplaceAllString(content, "")
	if len(plain) > summaryMaxLength {
		return plain[:summaryMaxLength] + "..."
	}

	return plain
}
