package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// StrictPolicy removes all HTML tags and attributes.
	StrictPolicy = bluemonday.StrictPolicy()

	// UGCPolicy allows safe user-generated formatting (paragraphs, emphasis, links, lists).
	UGCPolicy = bluemonday.UGCPolicy()
)

// Text strips all HTML tags and surrounding whitespace. The result is plain text:
// entities escaped by the policy are decoded again, so "Fish & Chips" is kept as is.
// Use for: titles, locations, dates, tags, category and admin names.
func Text(input string) string {
	return strings.TrimSpace(html.UnescapeString(StrictPolicy.Sanitize(input)))
}

// HTML sanitizes HTML content, allowing safe formatting tags.
// Use for: event descriptions, feedback messages.
func HTML(input string) string {
	return strings.TrimSpace(UGCPolicy.Sanitize(input))
}

// TextSlice sanitizes each string in a slice and drops entries left empty.
func TextSlice(inputs []string) []string {
	if inputs == nil {
		return nil
	}
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if s := Text(in); s != "" {
			out = append(out, s)
		}
	}
	return out
}
