// ABOUTME: Terminal styling helpers for CLI output
// ABOUTME: Colors stage and status badges with lipgloss when stdout is a terminal
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/fundops/models"
	"golang.org/x/term"
)

// stdout is swapped out by tests.
var stdout io.Writer = os.Stdout

var (
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	wonStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	lostStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

func colorEnabled() bool {
	f, ok := stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func render(style lipgloss.Style, s string) string {
	if !colorEnabled() {
		return s
	}
	return style.Render(s)
}

func stageBadge(stage string) string {
	switch {
	case stage == models.StageSignedAndWired:
		return render(wonStyle, stage)
	case models.IsTerminalStage(stage):
		return render(lostStyle, stage)
	default:
		return render(activeStyle, stage)
	}
}

func statusBadge(status string) string {
	switch status {
	case "":
		return render(pendingStyle, "none")
	case models.IntroStatusPending:
		return render(pendingStyle, status)
	case models.IntroStatusSent:
		return render(wonStyle, status)
	default:
		return render(lostStyle, status)
	}
}

func header(s string) string {
	return render(headerStyle, s)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
