// Package tui renders the grouped application board in the terminal.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justsurfingit/job-board/internal/grouping"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/services"
)

const refreshTimeout = 30 * time.Second

// Source is the board the terminal view drives. *services.BoardService satisfies it.
type Source interface {
	Refresh(ctx context.Context, filter models.Status) error
	View() services.BoardView
	ToggleDate(key string) grouping.CollapseSet
	ToggleCompany(key string) grouping.CollapseSet
}

type refreshedMsg struct{ err error }

type Model struct {
	src    Source
	filter models.Status
	view   services.BoardView
	rows   []row
	cursor int

	loading bool
	err     error
	width   int
	height  int
}

func New(src Source) Model {
	return Model{src: src, loading: true}
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) refresh() tea.Cmd {
	src, filter := m.src, m.filter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		return refreshedMsg{err: src.Refresh(ctx, filter)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshedMsg:
		m.loading = false
		m.err = msg.err
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "enter", " ":
			m.toggle()
		case "r":
			m.loading = true
			return m, m.refresh()
		case "f":
			m.filter = nextFilter(m.filter)
			m.loading = true
			return m, m.refresh()
		}
	}
	return m, nil
}

// reload rebuilds the rows from the source, keeping the cursor on the same
// header when it still exists.
func (m *Model) reload() {
	var selected string
	if m.cursor < len(m.rows) {
		selected = m.rows[m.cursor].key
	}
	m.view = m.src.View()
	m.rows = flatten(m.view.Groups)
	m.cursor = 0
	for i, r := range m.rows {
		if r.selectable() && r.key == selected {
			m.cursor = i
			return
		}
	}
}

// move steps the cursor to the next header in direction dir.
func (m *Model) move(dir int) {
	for i := m.cursor + dir; i >= 0 && i < len(m.rows); i += dir {
		if m.rows[i].selectable() {
			m.cursor = i
			return
		}
	}
}

func (m *Model) toggle() {
	if m.cursor >= len(m.rows) {
		return
	}
	switch r := m.rows[m.cursor]; r.kind {
	case rowDate:
		m.src.ToggleDate(r.key)
	case rowCompany:
		m.src.ToggleCompany(r.key)
	default:
		return
	}
	m.reload()
}

// nextFilter cycles all → pending → interview → rejected → accepted → all.
func nextFilter(f models.Status) models.Status {
	if f == "" {
		return models.Statuses[0]
	}
	for i, s := range models.Statuses {
		if s == f && i+1 < len(models.Statuses) {
			return models.Statuses[i+1]
		}
	}
	return ""
}
