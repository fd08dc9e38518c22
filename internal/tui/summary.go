package tui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gpucrash/internal/logging"
	"gpucrash/internal/report"
)

// RenderSummary renders the classification part of a record
func RenderSummary(rec report.Record) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00d7ff")).MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaf00"))

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	b.WriteString(titleStyle.Render(rec.Title))
	b.WriteString("\n\n")

	if rec.Chipset != "" {
		row("Chipset", rec.Chipset)
	} else {
		b.WriteString(labelStyle.Render("Chipset"))
		b.WriteString(warnStyle.Render("unknown"))
		b.WriteString("\n")
	}
	row("Tags", strings.Join(rec.Tags, ", "))

	if rec.Signature != nil {
		row("Hash", fmt.Sprintf("%s (%s)", rec.Signature.ShortHash, rec.HashAlgorithm))
		for _, reg := range rec.Signature.Flagged {
			row(reg.Key, reg.Value)
		}
	} else {
		b.WriteString(labelStyle.Render("Signature"))
		b.WriteString(warnStyle.Render("no GPU dump"))
		b.WriteString("\n")
	}

	row("Attachments", fmt.Sprintf("%d", len(rec.Attachments)))
	return b.String()
}

// Confirm runs the interactive prompt on in/out and returns the decision and
// the attachments the user excluded
func Confirm(rec report.Record, in io.Reader, out io.Writer, logger *logging.Logger) (Decision, []string, error) {
	program := tea.NewProgram(NewModel(rec, logger), tea.WithInput(in), tea.WithOutput(out))

	final, err := program.Run()
	if err != nil {
		return DecisionDecline, nil, fmt.Errorf("confirmation prompt failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return DecisionDecline, nil, fmt.Errorf("unexpected model type %T", final)
	}
	if m.Decision() == DecisionPending {
		return DecisionDecline, nil, nil
	}
	return m.Decision(), m.Excluded(), nil
}
