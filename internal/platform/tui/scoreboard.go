package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/siege-arcade/internal/registry"
	"github.com/vovakirdan/siege-arcade/internal/storage"
)

const (
	sidebarMinWidth = 80 // Narrower terminals get tabs instead of a sidebar
	sidebarWidth    = 20
	maxScores       = 100
	dateLayout      = "Jan 02 15:04"
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Prev, k.Next, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll: key.NewBinding(
			key.WithKeys("up", "k", "down", "j", "pgup", "pgdown"),
			key.WithHelp("↑/↓", "scroll"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next board"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("←", "prev board"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// boardKind selects what a scoreboard page lists.
type boardKind int

const (
	boardScores   boardKind = iota // High scores of one game
	boardDuels                     // Recent artillery duels
	boardFighters                  // Wins per fighter
)

type board struct {
	ID    string
	Title string
	kind  boardKind
}

// heading is the title line shown above the board.
func (b board) heading() string {
	if b.kind == boardScores {
		return "HIGH SCORES - " + b.Title
	}
	return strings.ToUpper(b.Title)
}

// scoreboardBoards lists one high-score page per game plus the duel pages.
func scoreboardBoards() []board {
	var boards []board
	for _, g := range registry.List() {
		boards = append(boards, board{ID: g.ID, Title: g.Title, kind: boardScores})
	}
	return append(boards,
		board{ID: "duels", Title: "Duel History", kind: boardDuels},
		board{ID: "fighters", Title: "Fighters", kind: boardFighters},
	)
}

// scoreboardStyles are built once per model.
type scoreboardStyles struct {
	title, frame, active, inactive, empty, help lipgloss.Style
	table                                       table.Styles
}

func newScoreboardStyles() scoreboardStyles {
	accent := lipgloss.Color("229")
	muted := lipgloss.Color("241")
	border := lipgloss.Color("240")

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(border).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.Foreground(accent).Background(lipgloss.Color("57"))

	return scoreboardStyles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		active:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		inactive: lipgloss.NewStyle().Foreground(muted),
		empty:    lipgloss.NewStyle().Foreground(muted).Italic(true).Padding(2, 4),
		help:     lipgloss.NewStyle().Foreground(muted),
		table:    ts,
	}
}

// ScoreboardModel shows high scores, duel history and fighter records.
type ScoreboardModel struct {
	boards    []board
	current   int
	store     *storage.Store
	rows      []table.Row
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	styles    scoreboardStyles
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model. A nil store shows empty boards.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		boards: scoreboardBoards(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		styles: newScoreboardStyles(),
		width:  width,
		height: height,
	}
	m.loadBoard()
	return m
}

func (m *ScoreboardModel) wide() bool {
	return m.width >= sidebarMinWidth
}

// tableWidth is what is left for the table after margins and the sidebar.
func (m *ScoreboardModel) tableWidth() int {
	w := m.width - 4
	if m.wide() {
		w -= sidebarWidth + 3
	}
	return w
}

// columns returns the table columns for a board kind.
func columns(kind boardKind, width int) []table.Column {
	switch kind {
	case boardDuels:
		return []table.Column{
			{Title: "Date", Width: 12},
			{Title: "Mode", Width: 8},
			{Title: "Fighters", Width: max(16, width-46)},
			{Title: "Winner", Width: 12},
			{Title: "Shots", Width: 5},
		}
	case boardFighters:
		return []table.Column{
			{Title: "Fighter", Width: 14},
			{Title: "Played", Width: 8},
			{Title: "Won", Width: 8},
			{Title: "Rate", Width: 6},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 12},
		{Title: "Date", Width: min(20, max(12, width-22))},
	}
}

// loadBoard queries the selected board and rebuilds the table around it.
func (m *ScoreboardModel) loadBoard() {
	m.rows = nil
	if m.store != nil && len(m.boards) > 0 {
		if rows, err := boardRows(m.store, m.boards[m.current]); err == nil {
			m.rows = rows
		}
	}
	m.rebuildTable()
}

func (m *ScoreboardModel) rebuildTable() {
	kind := boardScores
	if len(m.boards) > 0 {
		kind = m.boards[m.current].kind
	}
	m.table = table.New(
		table.WithColumns(columns(kind, m.tableWidth())),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)),
		table.WithStyles(m.styles.table),
	)
	m.help.Width = m.width
}

// boardRows queries the rows of one board.
func boardRows(store *storage.Store, b board) ([]table.Row, error) {
	switch b.kind {
	case boardDuels:
		duels, err := store.RecentDuels(maxScores)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(duels))
		for i, d := range duels {
			winner := d.Winner
			if d.EndReason != "completed" {
				winner = "(" + d.EndReason + ")"
			}
			rows[i] = table.Row{
				d.CreatedAt.Format(dateLayout),
				d.Mode,
				d.Player + " vs " + d.Opponent,
				winner,
				fmt.Sprint(d.Shots),
			}
		}
		return rows, nil

	case boardFighters:
		stats, err := store.CharacterStats()
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(stats))
		for i, st := range stats {
			rate := 0
			if st.Played > 0 {
				rate = st.Won * 100 / st.Played
			}
			rows[i] = table.Row{st.Name, fmt.Sprint(st.Played), fmt.Sprint(st.Won), fmt.Sprintf("%d%%", rate)}
		}
		return rows, nil
	}

	scores, err := store.TopScores(b.ID, maxScores)
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{fmt.Sprintf("#%d", i+1), fmt.Sprint(s.Score), s.CreatedAt.Format(dateLayout)}
	}
	return rows, nil
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
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.rebuildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// step moves to another board, wrapping around.
func (m *ScoreboardModel) step(delta int) {
	n := len(m.boards)
	if n == 0 {
		return
	}
	m.current = (m.current + delta + n) % n
	m.loadBoard()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.boards) > 0 {
		title = m.boards[m.current].heading()
	}

	content := m.styles.empty.Render("Nothing recorded yet.\nPlay a game to fill this board!")
	if len(m.rows) > 0 {
		content = m.table.View()
	}
	framed := m.styles.frame.Render(content)

	var body string
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", framed)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Center, m.tabs(), "", framed)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.styles.title.Render(title)),
		"",
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body),
		"",
		m.styles.help.Render(m.help.View(m.keys)),
	)
}

// sidebar lists every board with the current one highlighted.
func (m ScoreboardModel) sidebar() string {
	lines := []string{"Boards", strings.Repeat("-", sidebarWidth-4)}
	for i, b := range m.boards {
		name := truncate(b.Title, sidebarWidth-6)
		if i == m.current {
			lines = append(lines, m.styles.active.Render("> "+name))
		} else {
			lines = append(lines, "  "+name)
		}
	}
	return m.styles.frame.Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

// tabs is the narrow-terminal board selector.
func (m ScoreboardModel) tabs() string {
	parts := make([]string, len(m.boards))
	for i, b := range m.boards {
		name := truncate(b.Title, 10)
		if i == m.current {
			parts[i] = m.styles.active.Render("[" + name + "]")
		} else {
			parts[i] = m.styles.inactive.Render(" " + name + " ")
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width-4 && len(m.boards) > 0 {
		line = fmt.Sprintf("< %s >", m.boards[m.current].Title)
	}
	return line
}

// truncate shortens s to n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "."
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
	return ok && m.IsGoingBack(), nil
}
