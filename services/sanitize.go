package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips all HTML from user-supplied free text
var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText removes markup and surrounding whitespace from free-text
// input (case descriptions, motion notes, order content, timeline text)
func SanitizeText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}
