package domain

import (
	"slices"
	"strings"

	"forgeguard.dev/pkg/forgeguard/internal/syntax"
)

// InjectMarker returns handler with ValidateAntiForgeryToken present exactly once.
// A handler that already carries it is returned unchanged. Otherwise the attribute
// joins the group holding HttpPost; a handler without such a group gets a new
// [HttpPost, ValidateAntiForgeryToken] group.
func InjectMarker(handler syntax.Handler) syntax.Handler {
	if hasProtection(handler) {
		return handler
	}

	marker := syntax.NewAttribute(ProtectionAttribute)

	index := slices.IndexFunc(handler.Groups, func(group syntax.AttributeGroup) bool {
		return slices.ContainsFunc(group.Attributes, isSubmissionAttribute)
	})
	if index >= 0 {
		return handler.WithGroup(index, handler.Groups[index].WithAttribute(marker))
	}

	// Unreachable for handlers from SubmissionHandlers.
	return handler.WithAddedGroup(syntax.NewAttributeGroup(syntax.NewAttribute(SubmissionAttribute), marker))
}

func hasProtection(handler syntax.Handler) bool {
	for attribute := range handler.Attributes() {
		if strings.Contains(attribute.Name, ProtectionAttribute) {
			return true
		}
	}

	return false
}
