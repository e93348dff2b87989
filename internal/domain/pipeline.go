package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"forgeguard.dev/pkg/forgeguard/internal/adapter"
	"forgeguard.dev/pkg/forgeguard/internal/controller"
	m "forgeguard.dev/pkg/forgeguard/internal/model"
	"forgeguard.dev/pkg/forgeguard/pkg"
)

// Pipeline discovers controller and view files and makes every submission path
// carry the anti-forgery marker.
type Pipeline interface {
	// ProcessControllers adds ValidateAntiForgeryToken to every HttpPost handler
	// found in C# files under roots.
	ProcessControllers(ctx context.Context, roots []m.Path) ([]m.FileReport, error)
	// ProcessViews adds asp-antiforgery="true" to every POST form found in Razor
	// views under roots.
	ProcessViews(ctx context.Context, roots []m.Path) ([]m.FileReport, error)
}

// transformFunc turns a file's content into its protected form and reports how many
// handlers or forms changed.
type transformFunc func(ctx context.Context, path m.Path, content []byte) ([]byte, int, error)

type pipeline struct {
	adapter.SourceFSAdapter
	adapter.CSharpFileAdapter
	controller.UI
	claims  pkg.FileClaimer
	options Options
}

// NewPipeline creates a Pipeline with the provided dependencies.
func NewPipeline(
	fsAdapter adapter.SourceFSAdapter,
	csharpAdapter adapter.CSharpFileAdapter,
	claims pkg.FileClaimer,
	ui controller.UI,
	options Options,
) (Pipeline, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	if fsAdapter == nil || csharpAdapter == nil || claims == nil || ui == nil {
		return nil, fmt.Errorf("missing pipeline dependencies")
	}

	return &pipeline{
		SourceFSAdapter:   fsAdapter,
		CSharpFileAdapter: csharpAdapter,
		UI:                ui,
		claims:            claims,
		options:           options,
	}, nil
}

func (p *pipeline) ProcessControllers(ctx context.Context, roots []m.Path) ([]m.FileReport, error) {
	return p.process(ctx, m.KindController, roots, p.options.ControllerExtensions, p.protectController)
}

func (p *pipeline) ProcessViews(ctx context.Context, roots []m.Path) ([]m.FileReport, error) {
	return p.process(ctx, m.KindView, roots, p.options.ViewExtensions, p.protectView)
}

func (p *pipeline) process(ctx context.Context, kind m.FileKind, roots []m.Path, extensions []string, transform transformFunc) ([]m.FileReport, error) {
	files, err := p.FindFiles(ctx, roots, extensions, p.options.Exclude...)
	if err != nil {
		slog.Error("Failed to discover files", "kind", kind, "error", err)
		return nil, fmt.Errorf("discover %s files: %w", kind, err)
	}

	slog.Debug("Discovered files", "kind", kind, "count", len(files))

	reports := make([]m.FileReport, 0, len(files))

	for _, file := range files {
		// Cancellation is honored between files only; a claimed file always runs to
		// completion and releases its claim.
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		report, err := p.processFile(ctx, m.File{Path: file, Kind: kind}, transform)
		if err != nil {
			slog.Error("Failed to process file", "path", file, "error", err)
			return reports, err
		}

		p.DisplayFileReport(ctx, report)
		reports = append(reports, report)
	}

	p.DisplaySummary(ctx, kind, reports)

	return reports, nil
}

func (p *pipeline) processFile(ctx context.Context, file m.File, transform transformFunc) (report m.FileReport, err error) {
	report = m.FileReport{Path: file.Path, Kind: file.Kind}

	acquired, err := p.claims.Acquire(string(file.Path))
	if err != nil {
		return report, fmt.Errorf("claim %s: %w", file.Path, err)
	}

	if !acquired {
		slog.Info("File already claimed", "path", file.Path, "marker", p.claims.MarkerPath(string(file.Path)))

		report.Outcome = m.OutcomeSkipped

		return report, nil
	}

	defer func() {
		if releaseErr := p.claims.Release(string(file.Path)); releaseErr != nil {
			err = errors.Join(err, fmt.Errorf("release claim %s: %w", file.Path, releaseErr))
		}
	}()

	content, err := p.ReadFile(ctx, file.Path)
	if err != nil {
		return report, fmt.Errorf("read %s: %w", file.Path, err)
	}

	updated, changes, err := transform(ctx, file.Path, content)
	if err != nil {
		return report, err
	}

	if bytes.Equal(updated, content) {
		report.Outcome = m.OutcomeUnchanged
		return report, nil
	}

	report.Changes = changes

	if p.options.DryRun {
		diff, err := unifiedDiff(file.Path, content, updated)
		if err != nil {
			return report, fmt.Errorf("diff %s: %w", file.Path, err)
		}

		report.Outcome = m.OutcomePending
		report.Diff = diff

		return report, nil
	}

	if err := p.WriteFile(ctx, file.Path, updated); err != nil {
		return report, fmt.Errorf("write %s: %w", file.Path, err)
	}

	slog.Info("Updated file", "path", file.Path, "kind", file.Kind, "changes", changes)

	report.Outcome = m.OutcomeUpdated

	return report, nil
}

// protectController parses a C# file, injects the marker into every submission
// handler and renders the candidate tree. The original content comes back when no
// handler needed a change.
func (p *pipeline) protectController(ctx context.Context, path m.Path, content []byte) ([]byte, int, error) {
	unit, err := p.Parse(ctx, string(path), content)
	if err != nil {
		return nil, 0, fmt.Errorf("parse: %w", err)
	}

	slog.Debug("Parsed controller", "path", path, "methods", unit.Len())

	candidate := unit
	changes := 0

	for handler := range SubmissionHandlers(unit) {
		if handler.IsAsync() {
			slog.Debug("Async handler found", "path", path, "handler", handler.Name)
		}

		updated := InjectMarker(handler)
		if updated.Equal(handler) {
			continue
		}

		candidate, err = candidate.Replace(handler, updated)
		if err != nil {
			return nil, 0, fmt.Errorf("replace %s in %s: %w", handler.Name, path, err)
		}

		changes++
	}

	if candidate.EquivalentTo(unit) {
		return content, 0, nil
	}

	return candidate.Render(), changes, nil
}

func (p *pipeline) protectView(_ context.Context, _ m.Path, content []byte) ([]byte, int, error) {
	updated, changes := InjectFormMarkers(string(content))
	if changes == 0 {
		return content, 0, nil
	}

	return []byte(updated), changes, nil
}
