package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/marbles/internal/registry"
	"github.com/vovakirdan/marbles/internal/storage"
)

// topScores is how many scores are listed unless all are requested.
const topScores = 10

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	SwitchPane key.Binding
	ToggleAll  key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.SwitchPane, k.ToggleAll, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.SwitchPane, k.ToggleAll},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "variants/scores"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "top 10/all"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows one row of records per variant, and the scores of
// the variant under the cursor below it.
type ScoreboardModel struct {
	games     []registry.GameInfo
	store     *storage.Store
	variants  table.Model // Best score and play statistics per variant
	scores    table.Model // Scores of the selected variant
	selected  int         // Variant whose scores are listed
	showAll   bool
	scoreRows int
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width

	m.variants = newScoreTable([]table.Column{
		{Title: "Variant", Width: 16},
		{Title: "Best", Width: 6},
		{Title: "Games", Width: 6},
		{Title: "Average", Width: 8},
		{Title: "Last played", Width: 13},
	}, len(m.games))
	m.variants.Focus()
	m.scores = newScoreTable([]table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Date", Width: 13},
	}, m.scoresHeight())

	m.loadVariants()
	m.loadScores()
	return m
}

// newScoreTable creates an unfocused table in the scoreboard style.
func newScoreTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(max(height, 1)),
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

// scoresHeight returns how many score rows fit under the variants table.
func (m ScoreboardModel) scoresHeight() int {
	// Title, two table headers and borders, section label, help
	return m.height - len(m.games) - 12
}

// loadVariants fills the variants table from the store.
func (m *ScoreboardModel) loadVariants() {
	stats := map[string]*storage.GameStats{}
	if m.store != nil {
		if all, err := m.store.GetAllGamesStats(); err == nil {
			stats = all
		}
	}

	rows := make([]table.Row, len(m.games))
	for i, g := range m.games {
		best := 0
		if m.store != nil {
			if b, err := m.store.BestScore(g.ID); err == nil {
				best = b
			}
		}
		rows[i] = variantRow(g.Title, best, stats[g.ID])
	}
	m.variants.SetRows(rows)
}

// variantRow formats the records of one variant. s is nil for variants
// that were never played to the end.
func variantRow(title string, best int, s *storage.GameStats) table.Row {
	if s == nil || s.GamesCount == 0 {
		return table.Row{title, fmt.Sprint(best), "0", "-", "-"}
	}
	return table.Row{
		title,
		fmt.Sprint(best),
		fmt.Sprint(s.GamesCount),
		fmt.Sprintf("%.1f", s.AvgScore),
		s.LastPlayed.Format("Jan 02 15:04"),
	}
}

// loadScores lists the scores of the selected variant.
func (m *ScoreboardModel) loadScores() {
	m.scoreRows = 0
	if m.store == nil || len(m.games) == 0 {
		m.scores.SetRows(nil)
		return
	}

	gameID := m.games[m.selected].ID
	var entries []storage.ScoreEntry
	var err error
	if m.showAll {
		entries, err = m.store.AllScores(gameID)
	} else {
		entries, err = m.store.TopScores(gameID, topScores)
	}
	if err != nil {
		entries = nil
	}

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprint(e.Score),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.scores.SetRows(rows)
	m.scores.GotoTop()
	m.scoreRows = len(rows)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.SwitchPane):
			if m.variants.Focused() {
				m.variants.Blur()
				m.scores.Focus()
			} else {
				m.scores.Blur()
				m.variants.Focus()
			}
			return m, nil

		case key.Matches(msg, m.keys.ToggleAll):
			m.showAll = !m.showAll
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			if m.scores.Focused() {
				m.scores, cmd = m.scores.Update(msg)
				return m, cmd
			}
			m.variants, cmd = m.variants.Update(msg)
			if c := m.variants.Cursor(); c != m.selected && c >= 0 && c < len(m.games) {
				m.selected = c
				m.loadScores()
			}
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scores.SetHeight(max(m.scoresHeight(), 1))
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(centerText(titleStyle.Render("M A R B L E S   R E C O R D S"), m.width))
	b.WriteString("\n\n")

	if len(m.games) == 0 {
		b.WriteString(centerText("No variants registered.", m.width))
		return b.String()
	}

	b.WriteString(boxStyle.Render(m.variants.View()))
	b.WriteString("\n")

	label := fmt.Sprintf("Top %d - %s", topScores, m.games[m.selected].Title)
	if m.showAll {
		label = fmt.Sprintf("All scores - %s", m.games[m.selected].Title)
	}
	b.WriteString(labelStyle.Render(label))
	b.WriteString("\n")

	if m.scoreRows == 0 {
		empty := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
		b.WriteString(boxStyle.Render(empty.Render("No finished games yet.")))
	} else {
		b.WriteString(boxStyle.Render(m.scores.View()))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
