package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/justsurfingit/job-board/internal/models"
)

const emptyMessage = `No applications found. Press "r" to refresh or add one through the API.`

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	dateStyle     = lipgloss.NewStyle().Bold(true)
	companyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	cursorStyle   = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	statusPalette = map[models.Status]lipgloss.Color{
		models.StatusPending:   lipgloss.Color("#f59e0b"),
		models.StatusInterview: lipgloss.Color("#3b82f6"),
		models.StatusRejected:  lipgloss.Color("#ef4444"),
		models.StatusAccepted:  lipgloss.Color("#10b981"),
	}
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Job Applications"))
	b.WriteString("  ")
	b.WriteString(faintStyle.Render(m.summary()))
	b.WriteString("\n\n")

	switch {
	case m.loading && len(m.rows) == 0:
		b.WriteString("Loading…\n")
	case len(m.rows) == 0:
		b.WriteString(emptyMessage + "\n")
	default:
		start, end := m.window()
		for i := start; i < end; i++ {
			line := m.renderRow(m.rows[i])
			if i == m.cursor {
				line = cursorStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n" + faintStyle.Render("↑/↓ move • enter toggle • r refresh • f filter • q quit"))
	return b.String()
}

func (m Model) summary() string {
	filter := "all"
	if m.filter != "" {
		filter = string(m.filter)
	}
	c := m.view.Counts
	return fmt.Sprintf("filter: %s • %d total • %d pending • %d interview • %d rejected • %d accepted",
		filter, c.Total, c.Pending, c.Interview, c.Rejected, c.Accepted)
}

// window returns the slice of rows that fits the terminal with the cursor in view.
func (m Model) window() (int, int) {
	n := len(m.rows)
	body := m.height - 6
	if m.height == 0 || body >= n || body <= 0 {
		return 0, n
	}
	start := m.cursor - body/2
	start = max(0, min(start, n-body))
	return start, start + body
}

func (m Model) renderRow(r row) string {
	arrow := "▼"
	if r.collapsed {
		arrow = "▶"
	}
	switch r.kind {
	case rowDate:
		return dateStyle.Render(fmt.Sprintf("%s %s (%s)", arrow, r.label, plural(r.count, "application")))
	case rowCompany:
		return "  " + companyStyle.Render(fmt.Sprintf("%s %s (%s)", arrow, r.label, plural(r.count, "rejection")))
	}

	a := r.app
	status := lipgloss.NewStyle().Foreground(statusPalette[a.Status]).Render(string(a.Status))
	parts := []string{r.company}
	if a.Position != "" {
		parts = append(parts, a.Position)
	}
	parts = append(parts, status)
	if a.Location != "" {
		parts = append(parts, a.Location)
	}
	if a.InterviewDate.Valid {
		parts = append(parts, "interview "+a.InterviewDate.Format("Jan 02"))
	}
	if a.ResumePath != "" {
		parts = append(parts, "resume")
	}
	return "    " + strings.Join(parts, " · ")
}
