package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gpucrash/internal/logging"
	"gpucrash/internal/report"
)

// Model asks the user whether a classified crash report should be written
type Model struct {
	logger *logging.Logger

	record      report.Record
	attachments []AttachmentItem

	currentScreen Screen
	selection     int
	decision      Decision
}

// NewModel creates a confirmation model for rec with every attachment included
func NewModel(rec report.Record, logger *logging.Logger) Model {
	items := make([]AttachmentItem, 0, len(rec.Attachments))
	for _, a := range rec.Attachments {
		items = append(items, AttachmentItem{Name: a.Name, Size: a.Size, Included: true})
	}

	return Model{
		logger:        logger,
		record:        rec,
		attachments:   items,
		currentScreen: ScreenSummary,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Decision returns the user's answer
func (m Model) Decision() Decision {
	return m.decision
}

// Excluded returns the names of attachments the user deselected
func (m Model) Excluded() []string {
	var excluded []string
	for _, item := range m.attachments {
		if !item.Included {
			excluded = append(excluded, item.Name)
		}
	}
	return excluded
}

// Update handles key messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := keyMsg.String()

	switch key {
	case "ctrl+c", "q", "n", "esc":
		if key == "esc" && m.currentScreen != ScreenSummary {
			m.currentScreen = ScreenSummary
			return m, nil
		}
		m.decision = DecisionDecline
		m.logger.Info("tui.report.declined", "Report declined by user", nil)
		return m, tea.Quit
	case "y", "enter":
		m.decision = DecisionConfirm
		m.logger.Info("tui.report.confirmed", "Report confirmed by user", map[string]interface{}{
			"excluded": m.Excluded(),
		})
		return m, tea.Quit
	case "tab", "a":
		if m.currentScreen == ScreenSummary {
			m.currentScreen = ScreenAttachments
		} else {
			m.currentScreen = ScreenSummary
		}
		return m, nil
	}

	if m.currentScreen == ScreenAttachments {
		return m.handleAttachmentKeys(key), nil
	}
	return m, nil
}

func (m Model) handleAttachmentKeys(key string) Model {
	if len(m.attachments) == 0 {
		return m
	}

	switch key {
	case keyUp, "k":
		m.selection = (m.selection - 1 + len(m.attachments)) % len(m.attachments)
	case keyDown, "j":
		m.selection = (m.selection + 1) % len(m.attachments)
	case " ", "space", "x":
		items := make([]AttachmentItem, len(m.attachments))
		copy(items, m.attachments)
		items[m.selection].Included = !items[m.selection].Included
		m.attachments = items
	}
	return m
}

// View renders the current screen
func (m Model) View() string {
	if m.decision != DecisionPending {
		return ""
	}

	var b strings.Builder
	if m.currentScreen == ScreenAttachments {
		b.WriteString(m.renderAttachments())
	} else {
		b.WriteString(RenderSummary(m.record))
	}

	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).MarginTop(1)
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Write report: y/Enter | Discard: n/q | Attachments: Tab | Toggle: Space"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderAttachments() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00d7ff")).MarginBottom(1)
	itemStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#00d7ff")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))

	b.WriteString(titleStyle.Render("Attachments"))
	b.WriteString("\n\n")

	if len(m.attachments) == 0 {
		b.WriteString(dimStyle.Render("No attachments collected"))
		b.WriteString("\n")
		return b.String()
	}

	for i, item := range m.attachments {
		mark := "[ ]"
		if item.Included {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %-16s %s", mark, item.Name, humanSize(item.Size))

		style := itemStyle
		if !item.Included {
			style = dimStyle
		}
		if i == m.selection {
			style = selectedStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func humanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
