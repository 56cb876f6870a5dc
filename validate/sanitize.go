package validate

import (
	"html"
	"regexp"
	"strings"

	depictio "github.com/depictio/depictio-models"
)

// MaxDescriptionLen is the length bound for sanitized description fields.
const MaxDescriptionLen = 1000

var (
	// script and style elements are removed together with their content;
	// any other tag is stripped while its text is kept.
	activeElementRe = regexp.MustCompile(`(?is)<(script|style)\b[^>]*>.*?</(script|style)\s*>`)
	tagRe           = regexp.MustCompile(`<[^>]*>`)
)

// SanitizeDescription strips markup from a free-text description and bounds
// its length. Entity references are normalized first, script/style elements
// are dropped with their content, remaining tags are stripped, and any
// markup character surviving the strip fails the value outright.
func SanitizeDescription(value string) (string, error) {
	s := html.UnescapeString(value)
	s = activeElementRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "")
	if strings.ContainsAny(s, "<>") || strings.Contains(s, "&lt;") || strings.Contains(s, "&gt;") {
		return "", depictio.NewFieldError(depictio.KindUnsafeContent,
			"description contains markup that survived sanitization")
	}
	if len(s) > MaxDescriptionLen {
		return "", depictio.NewFieldError(depictio.KindTooLong,
			"description must be at most %d characters, got %d", MaxDescriptionLen, len(s))
	}
	return s, nil
}

// Description is the Rule form of SanitizeDescription.
func Description(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, depictio.NewFieldError(depictio.KindInvalidValue, "expected a string, got %T", value)
	}
	return SanitizeDescription(s)
}
