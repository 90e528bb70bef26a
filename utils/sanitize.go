package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.UGCPolicy()

// Sanitize renders user text as safe HTML for clients that embed it in a page.
// Stored values are never passed through it.
func Sanitize(input string) string {
	return strings.TrimSpace(sanitizer.Sanitize(input))
}
