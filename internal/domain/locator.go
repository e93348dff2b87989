// Package domain contains the forgery-protection transformations and the pipelines
// that apply them to controller and view files.
package domain

import (
	"iter"
	"strings"

	"forgeguard.dev/pkg/forgeguard/internal/syntax"
)

const (
	// SubmissionAttribute marks a handler that accepts POST requests.
	SubmissionAttribute = "HttpPost"
	// ProtectionAttribute makes the framework validate the anti-forgery token.
	ProtectionAttribute = "ValidateAntiForgeryToken"
)

// SubmissionHandlers yields, in document order, the handlers of unit carrying an
// attribute whose name contains HttpPost in any letter case. The sequence is lazy
// and may be ranged over more than once.
func SubmissionHandlers(unit *syntax.Unit) iter.Seq[syntax.Handler] {
	return func(yield func(syntax.Handler) bool) {
		for handler := range unit.All() {
			if !isSubmissionHandler(handler) {
				continue
			}

			if !yield(handler) {
				return
			}
		}
	}
}

func isSubmissionHandler(handler syntax.Handler) bool {
	for attribute := range handler.Attributes() {
		if isSubmissionAttribute(attribute) {
			return true
		}
	}

	return false
}

func isSubmissionAttribute(attribute syntax.Attribute) bool {
	return strings.Contains(strings.ToLower(attribute.Name), strings.ToLower(SubmissionAttribute))
}
