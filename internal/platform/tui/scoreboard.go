package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gemfall/internal/registry"
	"github.com/vovakirdan/gemfall/internal/storage"
)

const (
	boardPanelMinWidth = 80 // Below this the stats panel folds into a line
	statsPanelWidth    = 22
	runsCompactWidth   = 56 // Runs table drops cleared/shuffles columns below this
	maxTopScores       = 100
	maxRecentRuns      = 50
)

// scoreView selects what the scoreboard table lists.
type scoreView int

const (
	viewTopScores scoreView = iota
	viewRecentRuns
)

func (v scoreView) String() string {
	if v == viewRecentRuns {
		return "Recent runs"
	}
	return "Top scores"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextGame   key.Binding
	PrevGame   key.Binding
	SwitchView key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.SwitchView, k.NextGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.SwitchView},
		{k.NextGame, k.PrevGame, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev game"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("v", "r"),
			key.WithHelp("v", "scores/runs"),
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

// ScoreboardModel lists the top scores and the recent round history of
// each registered game.
type ScoreboardModel struct {
	games  []registry.GameInfo
	cursor int
	store  *storage.Store
	view   scoreView

	scores []storage.ScoreEntry
	runs   []storage.RunEntry
	stats  *storage.GameStats
	err    error // Last load failure, shown instead of the table

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard over every registered game.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	return newScoreboard(store, registry.List(), width, height)
}

func newScoreboard(store *storage.Store, games []registry.GameInfo, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  games,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.reload()
	return m
}

// gameID returns the selected game, or "" when nothing is registered.
func (m *ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.cursor].ID
}

// reload fetches the selected game's records and rebuilds the table.
func (m *ScoreboardModel) reload() {
	m.scores, m.runs, m.stats, m.err = nil, nil, nil, nil
	if id := m.gameID(); id != "" && m.store != nil {
		m.scores, m.err = m.store.TopScores(id, maxTopScores)
		if m.err == nil {
			m.runs, m.err = m.store.RecentRuns(id, maxRecentRuns)
		}
		if m.err == nil {
			m.stats, m.err = m.store.GetGameStats(id)
		}
	}
	m.rebuild()
}

// tableWidth is the room left for the table next to the stats panel.
func (m *ScoreboardModel) tableWidth() int {
	w := m.width - 6
	if m.width >= boardPanelMinWidth {
		w -= statsPanelWidth + 4
	}
	return w
}

func (m *ScoreboardModel) columns() []table.Column {
	w := m.tableWidth()
	if m.view == viewTopScores {
		date := min(max(w-22, 12), 20)
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Date", Width: date},
		}
	}
	cols := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Score", Width: 8},
		{Title: "Moves", Width: 6},
		{Title: "Chain", Width: 6},
	}
	if w >= runsCompactWidth {
		cols = append(cols,
			table.Column{Title: "Cleared", Width: 8},
			table.Column{Title: "Shuffles", Width: 8},
		)
	}
	return cols
}

func (m *ScoreboardModel) rows(cols int) []table.Row {
	if m.view == viewTopScores {
		rows := make([]table.Row, len(m.scores))
		for i, s := range m.scores {
			rows[i] = table.Row{"#" + strconv.Itoa(i+1), strconv.Itoa(s.Score), s.CreatedAt.Format("Jan 02 15:04")}
		}
		return rows
	}

	best := 0
	if m.stats != nil {
		best = m.stats.BestChain
	}
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		chain := "x" + strconv.Itoa(r.LongestChain)
		if best > 0 && r.LongestChain == best {
			chain += "*"
		}
		row := table.Row{r.CreatedAt.Format("Jan 02 15:04"), strconv.Itoa(r.Score), strconv.Itoa(r.Moves), chain}
		if cols > len(row) {
			row = append(row, strconv.Itoa(r.Cleared), strconv.Itoa(r.Shuffles))
		}
		rows[i] = row
	}
	return rows
}

// rebuild recreates the table; rows must carry one cell per column.
func (m *ScoreboardModel) rebuild() {
	cols := m.columns()
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(m.rows(len(cols))),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
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
	m.table = t
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.SwitchView):
			m.view = 1 - m.view
			m.rebuild()
			return m, nil
		case key.Matches(msg, m.keys.NextGame):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.rebuild()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// step moves the game cursor by d, wrapping around.
func (m *ScoreboardModel) step(d int) {
	if len(m.games) < 2 {
		return
	}
	m.cursor = (m.cursor + d + len(m.games)) % len(m.games)
	m.reload()
}

var (
	sbTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	sbPanelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "SCOREBOARD"
	if len(m.games) > 0 {
		title += " - " + m.games[m.cursor].Title
	}

	var b strings.Builder
	b.WriteString(centerText(sbTitleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	body := sbPanelStyle.Render(m.renderBody())
	if m.width >= boardPanelMinWidth {
		stats := sbPanelStyle.Width(statsPanelWidth).Render(m.renderStatsPanel())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, stats, "  ", body))
	} else {
		b.WriteString(centerText(sbMutedStyle.Render(m.statsLine()), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(body, m.width))
	}

	b.WriteString("\n")
	b.WriteString(sbMutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderTabs shows the two views, with the game switcher when there are
// several games.
func (m ScoreboardModel) renderTabs() string {
	var tabs []string
	for _, v := range []scoreView{viewTopScores, viewRecentRuns} {
		if v == m.view {
			tabs = append(tabs, sbActiveStyle.Render(v.String()))
		} else {
			tabs = append(tabs, sbMutedStyle.Render(" "+v.String()+" "))
		}
	}
	line := strings.Join(tabs, " ")
	if len(m.games) > 1 {
		line = "< " + line + " >"
	}
	return line
}

func (m ScoreboardModel) renderBody() string {
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	switch {
	case m.err != nil:
		return empty.Render("Cannot load records:\n" + m.err.Error())
	case m.view == viewTopScores && len(m.scores) == 0:
		return empty.Render("No scores recorded yet.\nPlay a round to set a high score!")
	case m.view == viewRecentRuns && len(m.runs) == 0:
		return empty.Render("No rounds recorded yet.")
	}
	return m.table.View()
}

// renderStatsPanel lists the aggregate counters one per line.
func (m ScoreboardModel) renderStatsPanel() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "Stats\n\n" + sbMutedStyle.Render("No rounds played")
	}
	lines := []string{
		"Stats",
		"",
		fmt.Sprintf("Rounds   %d", m.stats.GamesCount),
		fmt.Sprintf("Best     %d", m.stats.HighScore),
		fmt.Sprintf("Average  %.0f", m.stats.AvgScore),
	}
	if m.stats.BestChain > 0 {
		lines = append(lines, fmt.Sprintf("Chain    x%d", m.stats.BestChain))
	}
	if !m.stats.LastPlayed.IsZero() {
		lines = append(lines, "", sbMutedStyle.Render("Last "+m.stats.LastPlayed.Format("Jan 02 15:04")))
	}
	return strings.Join(lines, "\n")
}

// statsLine is the one-line summary used on narrow screens.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "No rounds played"
	}
	line := fmt.Sprintf("%d rounds | best %d | avg %.0f", m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore)
	if m.stats.BestChain > 0 {
		line += fmt.Sprintf(" | chain x%d", m.stats.BestChain)
	}
	return line
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
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
