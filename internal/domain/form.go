package domain

import (
	"regexp"
	"strings"
)

// FormProtectionAttribute is appended to POST forms in Razor views.
const FormProtectionAttribute = `asp-antiforgery="true"`

var (
	formTagRegex     = regexp.MustCompile(`(?i)<form\b[^>]*>`)
	methodPostRegex  = regexp.MustCompile(`(?i)\bmethod\s*=\s*['"]post['"]`)
	antiForgeryRegex = regexp.MustCompile(`(?i)\basp-antiforgery\b`)
)

// InjectFormMarkers adds asp-antiforgery="true" to every opening form tag that posts
// and lacks the attribute. It returns the new text and the number of tags changed.
// Text outside those tags is returned verbatim.
func InjectFormMarkers(content string) (string, int) {
	changed := 0

	updated := formTagRegex.ReplaceAllStringFunc(content, func(tag string) string {
		rewritten := protectFormTag(tag)
		if rewritten != tag {
			changed++
		}

		return rewritten
	})

	return updated, changed
}

// protectFormTag rewrites one opening form tag. The attribute goes right before the
// closing '>' (or '/>'), after the last attribute; whitespace that preceded the
// closing bracket is kept in front of it.
func protectFormTag(tag string) string {
	if !methodPostRegex.MatchString(tag) || antiForgeryRegex.MatchString(tag) {
		return tag
	}

	end := len(tag) - 1
	if end > 0 && tag[end-1] == '/' {
		end--
	}

	body := strings.TrimRight(tag[:end], " \t\r\n")

	return body + " " + FormProtectionAttribute + tag[len(body):]
}
