package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			PaddingLeft(2)

	matchStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("228")). // yellow
			Foreground(lipgloss.Color("0"))    // black

	currentMatchStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("196")). // red
				Foreground(lipgloss.Color("15"))   // white
)

// header and help line
const chromeHeight = 2

// pagerModel shows a page of text with line based search
type pagerModel struct {
	title    string
	lines    []string
	viewport viewport.Model
	ready    bool

	input     textinput.Model
	searching bool
	query     string
	matches   []int // line numbers containing the query
	current   int
}

// NewPager creates a pager for content, titled with the page URI
func NewPager(title, content string) *pagerModel {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	return &pagerModel{
		title: title,
		lines: strings.Split(content, "\n"),
		input: ti,
	}
}

func (m *pagerModel) Init() tea.Cmd {
	return nil
}

func (m *pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chromeHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chromeHeight
		}
		m.render()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "/":
			m.searching = true
			m.input.Reset()
			m.input.Focus()
			return m, textinput.Blink
		case "n":
			m.nextMatch()
			return m, nil
		case "N":
			m.previousMatch()
			return m, nil
		case "esc":
			m.search("")
			return m, nil
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *pagerModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.input.Blur()
		m.search(m.input.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *pagerModel) View() string {
	if !m.ready {
		return "\nInitializing..."
	}

	var footer string
	switch {
	case m.searching:
		footer = m.input.View()
	case len(m.matches) > 0:
		footer = helpStyle.Render(fmt.Sprintf("match %d/%d • n next • N previous • esc clear • q quit",
			m.current+1, len(m.matches)))
	case m.query != "":
		footer = helpStyle.Render(fmt.Sprintf("no match for %q • / search • q quit", m.query))
	default:
		footer = helpStyle.Render(fmt.Sprintf("%3.f%% • ↑/k ↓/j scroll • g/G top/bottom • / search • q quit",
			m.viewport.ScrollPercent()*100))
	}
	return titleStyle.Render(m.title) + "\n" + m.viewport.View() + "\n" + footer
}

// search finds the lines containing query. The match is case-insensitive
// unless query has an upper case letter. An empty query clears the search.
func (m *pagerModel) search(query string) {
	m.query = query
	m.matches = nil
	m.current = 0

	if query != "" {
		caseSensitive := strings.ToLower(query) != query
		for i, line := range m.lines {
			if !caseSensitive {
				line = strings.ToLower(line)
			}
			if strings.Contains(line, query) {
				m.matches = append(m.matches, i)
			}
		}
	}

	m.render()
	m.scrollToCurrent()
}

func (m *pagerModel) nextMatch() {
	if len(m.matches) == 0 {
		return
	}
	m.current = (m.current + 1) % len(m.matches)
	m.render()
	m.scrollToCurrent()
}

func (m *pagerModel) previousMatch() {
	if len(m.matches) == 0 {
		return
	}
	m.current = (m.current - 1 + len(m.matches)) % len(m.matches)
	m.render()
	m.scrollToCurrent()
}

// render writes the content into the viewport with matching lines highlighted
func (m *pagerModel) render() {
	if !m.ready {
		return
	}

	lines := make([]string, len(m.lines))
	copy(lines, m.lines)
	for i, n := range m.matches {
		if i == m.current {
			lines[n] = currentMatchStyle.Render(lines[n])
		} else {
			lines[n] = matchStyle.Render(lines[n])
		}
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func (m *pagerModel) scrollToCurrent() {
	if !m.ready || len(m.matches) == 0 {
		return
	}

	line := m.matches[m.current]
	if line < m.viewport.YOffset || line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line)
	}
}

// RunPager shows content in a full screen pager until the user quits
func RunPager(title, content string) error {
	p := tea.NewProgram(
		NewPager(title, content),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
