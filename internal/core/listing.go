package core

import (
	"regexp"
	"strconv"
	"strings"
)

// Page size defaults. Jobs paginate at 20, the event-like listings
// and directories at 24; both clamp to [1, 100].
const (
	DefaultJobPageSize     = 20
	DefaultListingPageSize = 24
	maxPageSize            = 100
)

// ClampLimit parses a raw limit query value. Non-numeric or empty
// input falls back to the route default; numeric input is clamped
// into [1, maxPageSize] rather than rejected.
func ClampLimit(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if n < 1 {
		return 1
	}
	if n > maxPageSize {
		return maxPageSize
	}
	return n
}

// ParsePage parses a raw page query value, defaulting to 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// pageBounds returns the [start, end) slice bounds for the given page
// over total items, plus the total page count. Pagination is applied
// after all in-memory filtering, so page boundaries can shift under
// concurrent writes; that is an accepted tradeoff.
func pageBounds(total, page, limit int) (start, end, totalPages int) {
	totalPages = (total + limit - 1) / limit
	start = (page - 1) * limit
	if start > total {
		start = total
	}
	end = start + limit
	if end > total {
		end = total
	}
	return start, end, totalPages
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify builds a URL slug: lowercase, runs of non-alphanumerics
// collapsed to single hyphens, edge hyphens trimmed, capped at 60
// characters.
func Slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 60 {
		slug = slug[:60]
	}
	return slug
}
