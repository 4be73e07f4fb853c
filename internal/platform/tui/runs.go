package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/strafe/internal/storage"
)

// Ledger layout constants
const (
	maxRuns = 100 // Max runs to load
)

// ledgerView selects what the run ledger table shows.
type ledgerView int

const (
	viewRuns ledgerView = iota
	viewWeapons
)

// RunsKeyMap defines the key bindings for the run ledger.
type RunsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	SwitchView key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.SwitchView, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.SwitchView, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "runs/weapons"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for the run ledger screen.
type RunsModel struct {
	store    *storage.Store
	view     ledgerView
	runs     []storage.RunRecord
	weapons  []storage.WeaponUsage
	loadErr  error
	table    table.Model
	help     help.Model
	keys     RunsKeyMap
	width    int
	height   int
	quitting bool
}

// NewRunsModel creates a new run ledger model.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	h := help.New()
	h.ShowAll = false

	m := RunsModel{
		store:  store,
		keys:   DefaultRunsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// columns returns the table columns for the current view.
func (m *RunsModel) columns() []table.Column {
	if m.view == viewWeapons {
		return []table.Column{
			{Title: "Archetype", Width: 12},
			{Title: "Runs", Width: 6},
			{Title: "Projectiles", Width: 12},
			{Title: "Last used", Width: 14},
		}
	}
	return []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Script", Width: 12},
		{Title: "Preset", Width: 7},
		{Title: "Ticks", Width: 6},
		{Title: "Shots", Width: 6},
		{Title: "Proj", Width: 6},
		{Title: "Hash", Width: 16},
		{Title: "Date", Width: 12},
	}
}

// createTable creates a new table with appropriate columns.
func (m *RunsModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads both ledger views from the store.
func (m *RunsModel) load() {
	m.runs, m.weapons, m.loadErr = nil, nil, nil
	if m.store == nil {
		return
	}
	if m.runs, m.loadErr = m.store.RecentRuns(maxRuns); m.loadErr != nil {
		return
	}
	m.weapons, m.loadErr = m.store.WeaponStats()
}

// rows builds the table rows for the current view.
func (m *RunsModel) rows() []table.Row {
	if m.view == viewWeapons {
		rows := make([]table.Row, len(m.weapons))
		for i, u := range m.weapons {
			rows[i] = table.Row{
				u.Kind,
				fmt.Sprintf("%d", u.Runs),
				fmt.Sprintf("%d", u.Fired),
				u.LastUsed.Format("Jan 02 15:04"),
			}
		}
		return rows
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		rows[i] = table.Row{
			id,
			r.Script,
			r.Preset,
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", r.Shots),
			fmt.Sprintf("%d", r.Projectiles),
			fmt.Sprintf("%016x", r.Hash),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// updateTableRows updates the table with the current view.
func (m *RunsModel) updateTableRows() {
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

// Init initializes the ledger model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the ledger.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.SwitchView):
			if m.view == viewRuns {
				m.view = viewWeapons
			} else {
				m.view = viewRuns
			}
			// Column count changes with the view, so rebuild before setting rows.
			m.table = m.createTable()
			m.updateTableRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the ledger.
func (m RunsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RUN LEDGER - recent runs"
	if m.view == viewWeapons {
		title = "RUN LEDGER - weapon usage"
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m RunsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Cannot read the ledger:\n" + m.loadErr.Error())
	case len(m.table.Rows()) == 0:
		return emptyStyle.Render("No runs recorded yet.\nRun `strafe sim` or `strafe play` first.")
	}
	return m.table.View()
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// RunLedger shows the run ledger until the user quits.
func RunLedger(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewRunsModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
