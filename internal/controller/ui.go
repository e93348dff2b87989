// Package controller provides output adapters for displaying pipeline results.
package controller

import (
	"context"

	m "forgeguard.dev/pkg/forgeguard/internal/model"
)

// UI defines the interface for reporting pipeline progress to the operator.
// Implementations must be safe for concurrent use; several pipelines may share
// one UI.
type UI interface {
	DisplayFileReport(ctx context.Context, report m.FileReport)
	DisplaySummary(ctx context.Context, kind m.FileKind, reports []m.FileReport)
	DisplayClaims(ctx context.Context, markers []m.Path)
}
