package controller

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "forgeguard.dev/pkg/forgeguard/internal/model"
)

var (
	updatedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	skippedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	unchangedStyle = lipgloss.NewStyle()
)

// SimpleUI implements UI using cobra Command's Println.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayFileReport prints one line per processed file, followed by the diff of a
// dry run.
func (s *SimpleUI) DisplayFileReport(ctx context.Context, report m.FileReport) {
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch report.Outcome {
	case m.OutcomeSkipped:
		s.cmd.Printf("%s %s (already claimed)\n", styleOutcome(report.Outcome), report.Path)
	case m.OutcomeUnchanged:
		s.cmd.Printf("%s %s\n", styleOutcome(report.Outcome), report.Path)
	default:
		s.cmd.Printf("%s %s (%d %s)\n", styleOutcome(report.Outcome), report.Path, report.Changes, changeNoun(report.Kind, report.Changes))
	}

	if report.Diff != "" {
		s.cmd.Print(report.Diff)
	}
}

// DisplaySummary prints per-outcome totals for one pipeline run.
func (s *SimpleUI) DisplaySummary(ctx context.Context, kind m.FileKind, reports []m.FileReport) {
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	run := m.RunReport{Files: reports}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Outcome", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, outcome := range []m.Outcome{m.OutcomeUpdated, m.OutcomePending, m.OutcomeUnchanged, m.OutcomeSkipped} {
		count := run.Count(outcome)
		if count == 0 && outcome == m.OutcomePending {
			continue
		}

		table.Append([]string{string(outcome), fmt.Sprintf("%d", count)})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", len(reports))})
	table.Render()

	s.cmd.Printf("\n%s processing done.\n%s", kindTitle(kind), tableBuffer.String())
}

// DisplayClaims lists claim markers left on disk.
func (s *SimpleUI) DisplayClaims(ctx context.Context, markers []m.Path) {
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(markers) == 0 {
		s.cmd.Println("No claim markers found.")
		return
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Claim marker"})
	table.SetBorder(false)

	for _, marker := range markers {
		table.Append([]string{string(marker)})
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", len(markers))})
	table.Render()

	s.cmd.Print(tableBuffer.String())
}

func styleOutcome(outcome m.Outcome) string {
	label := fmt.Sprintf("%-9s", outcome)

	switch outcome {
	case m.OutcomeUpdated:
		return updatedStyle.Render(label)
	case m.OutcomePending:
		return pendingStyle.Render(label)
	case m.OutcomeSkipped:
		return skippedStyle.Render(label)
	default:
		return unchangedStyle.Render(label)
	}
}

func changeNoun(kind m.FileKind, n int) string {
	noun := "handler"
	if kind == m.KindView {
		noun = "form"
	}

	if n != 1 {
		noun += "s"
	}

	return noun
}

func kindTitle(kind m.FileKind) string {
	switch kind {
	case m.KindController:
		return "Controller"
	case m.KindView:
		return "View"
	default:
		return string(kind)
	}
}
