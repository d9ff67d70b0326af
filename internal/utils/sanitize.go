package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	richPolicy   = bluemonday.UGCPolicy()
)

// SanitizeText strips every tag and returns plain text.
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// SanitizeRichText keeps basic formatting (paragraphs, emphasis, lists, links)
// and drops scripts, styles and event handlers.
func SanitizeRichText(s string) string {
	return strings.TrimSpace(richPolicy.Sanitize(s))
}

func SanitizeTextPtr(s *string) *string {
	if s == nil {
		return nil
	}

	clean := SanitizeText(*s)
	return &clean
}

func SanitizeRichTextPtr(s *string) *string {
	if s == nil {
		return nil
	}

	clean := SanitizeRichText(*s)
	return &clean
}
