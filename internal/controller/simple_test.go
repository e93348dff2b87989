package controller

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	m "forgeguard.dev/pkg/forgeguard/internal/model"
)

func newTestUI() (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd), &buf
}

func TestSimpleUI_DisplayFileReport(t *testing.T) {
	tests := []struct {
		name         string
		report       m.FileReport
		wantContains []string
	}{
		{
			name:         "updated controller",
			report:       m.FileReport{Path: "HomeController.cs", Kind: m.KindController, Outcome: m.OutcomeUpdated, Changes: 2},
			wantContains: []string{"updated", "HomeController.cs", "2 handlers"},
		},
		{
			name:         "updated view",
			report:       m.FileReport{Path: "Index.cshtml", Kind: m.KindView, Outcome: m.OutcomeUpdated, Changes: 1},
			wantContains: []string{"updated", "Index.cshtml", "1 form"},
		},
		{
			name:         "skipped file",
			report:       m.FileReport{Path: "Index.cshtml", Kind: m.KindView, Outcome: m.OutcomeSkipped},
			wantContains: []string{"skipped", "already claimed"},
		},
		{
			name:         "unchanged file",
			report:       m.FileReport{Path: "About.cshtml", Kind: m.KindView, Outcome: m.OutcomeUnchanged},
			wantContains: []string{"unchanged", "About.cshtml"},
		},
		{
			name:         "dry run prints the diff",
			report:       m.FileReport{Path: "Index.cshtml", Kind: m.KindView, Outcome: m.OutcomePending, Changes: 1, Diff: "--- a\n+++ b\n"},
			wantContains: []string{"pending", "--- a\n+++ b\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, buf := newTestUI()
			ui.DisplayFileReport(context.Background(), tt.report)

			for _, want := range tt.wantContains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	ui, buf := newTestUI()

	ui.DisplaySummary(context.Background(), m.KindController, []m.FileReport{
		{Path: "A.cs", Outcome: m.OutcomeUpdated},
		{Path: "B.cs", Outcome: m.OutcomeUpdated},
		{Path: "C.cs", Outcome: m.OutcomeSkipped},
	})

	output := buf.String()
	assert.Contains(t, output, "Controller processing done.")
	assert.Contains(t, output, "updated")
	assert.Contains(t, output, "skipped")
	assert.NotContains(t, output, "pending")
}

func TestSimpleUI_DisplayClaims(t *testing.T) {
	t.Run("no markers", func(t *testing.T) {
		ui, buf := newTestUI()
		ui.DisplayClaims(context.Background(), nil)
		assert.Contains(t, buf.String(), "No claim markers found.")
	})

	t.Run("lists markers", func(t *testing.T) {
		ui, buf := newTestUI()
		ui.DisplayClaims(context.Background(), []m.Path{"Controllers/HomeController.cs.lock"})
		assert.Contains(t, buf.String(), "Controllers/HomeController.cs.lock")
	})

	t.Run("cancelled context prints nothing", func(t *testing.T) {
		ui, buf := newTestUI()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ui.DisplayClaims(ctx, []m.Path{"x.lock"})
		assert.Empty(t, buf.String())
	})
}
