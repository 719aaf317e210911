package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/wot-discovery/discovery"
	"github.com/muurk/wot-discovery/internal/ui"
	"github.com/muurk/wot-discovery/internal/urls"
)

// Outcome is one discovery result as shown by the watch screen
type Outcome struct {
	Card *ui.ThingCard
	Err  error
}

// Messages for async operations
type outcomeMsg Outcome
type streamClosedMsg struct{}

// watchKeyMap defines key bindings for the watch screen
type watchKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Details key.Binding
	Filter  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Details, k.Filter, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Details},
		{k.Filter, k.Help, k.Quit},
	}
}

func newWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Details: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "details"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// thingDelegate renders a Thing as a two-line list entry
type thingDelegate struct{}

func (d thingDelegate) Height() int { return 2 }

func (d thingDelegate) Spacing() int { return 1 }

func (d thingDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d thingDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	card, ok := item.(ui.ThingCard)
	if !ok {
		return
	}

	title := "  " + card.Name()
	if index == m.Index() {
		title = SelectedItemStyle.Render("→ " + card.Name())
	} else {
		title = ItemStyle.Render(title)
	}

	detail := ItemDetailStyle.Render("    " + card.URL + " · " + card.Affordances())
	fmt.Fprint(w, title+"\n"+detail)
}

// WatchModel is the live discovery screen. Things are appended as their
// descriptions arrive; failures are counted and the latest one is shown.
type WatchModel struct {
	results <-chan Outcome

	// Discovery state
	Searching bool
	Things    list.Model
	Errors    int
	LastErr   error
	Timeout   time.Duration
	StartTime time.Time

	// UI state
	ShowDetails bool
	Width       int
	Height      int
	Spinner     spinner.Model
	ProgressBar progress.Model
	Help        help.Model
	Keys        watchKeyMap
}

// NewWatchModel creates a watch screen fed by results. A positive timeout
// draws a progress bar; the caller is responsible for ending the search.
func NewWatchModel(results <-chan Outcome, timeout time.Duration) WatchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	progressBar := progress.New(progress.WithDefaultGradient())
	progressBar.Width = 40

	things := list.New([]list.Item{}, thingDelegate{}, 0, 0)
	things.SetShowTitle(false)
	things.SetShowStatusBar(false)
	things.SetShowHelp(false)
	things.SetFilteringEnabled(true)
	things.KeyMap.Quit.SetEnabled(false)

	return WatchModel{
		results:     results,
		Searching:   true,
		Things:      things,
		Timeout:     timeout,
		StartTime:   time.Now(),
		Spinner:     s,
		ProgressBar: progressBar,
		Help:        help.New(),
		Keys:        newWatchKeyMap(),
	}
}

// Init starts waiting for results and the spinner
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(
		waitForOutcome(m.results),
		m.Spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Things.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Details):
			if m.Things.SelectedItem() != nil {
				m.ShowDetails = !m.ShowDetails
			}
			return m, nil
		case key.Matches(msg, m.Keys.Help):
			m.Help.ShowAll = !m.Help.ShowAll
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		m.Things.SetWidth(msg.Width - 4)
		m.Things.SetHeight(max(msg.Height-14, 3)) // Leave room for header, status and footer

	case outcomeMsg:
		if msg.Err != nil {
			m.Errors++
			m.LastErr = msg.Err
		} else if msg.Card != nil {
			cmd = m.Things.InsertItem(len(m.Things.Items()), *msg.Card)
		}
		return m, tea.Batch(cmd, waitForOutcome(m.results))

	case streamClosedMsg:
		m.Searching = false
		return m, nil

	case spinner.TickMsg:
		if !m.Searching {
			return m, nil
		}
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	m.Things, cmd = m.Things.Update(msg)
	return m, cmd
}

// View renders the watch screen
func (m WatchModel) View() string {
	width := m.Width
	if width == 0 {
		width = MinTerminalWidth
	}

	var b strings.Builder
	b.WriteString(m.renderStatus(width))
	b.WriteString("\n")

	switch {
	case m.ShowDetails && m.Things.SelectedItem() != nil:
		card := m.Things.SelectedItem().(ui.ThingCard)
		b.WriteString(card.Render(width-4, true))
	case len(m.Things.Items()) == 0:
		b.WriteString(m.renderEmpty())
	default:
		b.WriteString(m.Things.View())
	}

	return RenderApplicationContainer(b.String(), m.Help.View(m.Keys), m.Width, m.Height)
}

// renderStatus renders the spinner line, progress bar and counters
func (m WatchModel) renderStatus(width int) string {
	elapsed := time.Since(m.StartTime)

	var title string
	if m.Searching {
		title = fmt.Sprintf("%s SEARCHING FOR THINGS (%ds)", m.Spinner.View(), int(elapsed.Seconds()))
	} else {
		title = SuccessTextStyle.Render("SEARCH FINISHED")
	}

	lines := []string{TitleStyle.Render(title)}

	if m.Searching && m.Timeout > 0 {
		percent := min(elapsed.Seconds()/m.Timeout.Seconds(), 1)
		lines = append(lines, m.ProgressBar.ViewAs(percent), "")
	}

	counts := fmt.Sprintf("%d found · %d %s", len(m.Things.Items()), m.Errors, pluralErrors(m.Errors))
	lines = append(lines, SubtitleStyle.Render(counts))

	if m.LastErr != nil {
		lines = append(lines, ErrorTextStyle.Render("Last error: "+discovery.ShortMessage(m.LastErr)))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(width-4, 0, lipgloss.Center, lipgloss.Top, content)
}

// renderEmpty renders the "no Things yet" message
func (m WatchModel) renderEmpty() string {
	var b strings.Builder

	b.WriteString("\n  ")
	if m.Searching {
		b.WriteString(SubtitleStyle.Render("Waiting for Things to announce themselves..."))
	} else {
		b.WriteString(WarningStyle.Render("⚠ No Things found on your network"))
	}
	b.WriteString("\n\n")

	b.WriteString("  Troubleshooting:\n")
	b.WriteString("    • Ensure the Thing advertises " + discovery.ServiceType + "\n")
	b.WriteString("    • Check that multicast traffic is allowed on this network\n")
	b.WriteString("    • Advertising format: " + urls.DNSSDIntroduction + "\n")

	return b.String()
}

// Selected returns the highlighted Thing, if any
func (m WatchModel) Selected() (ui.ThingCard, bool) {
	card, ok := m.Things.SelectedItem().(ui.ThingCard)
	return card, ok
}

// waitForOutcome is a command that receives the next discovery result
func waitForOutcome(results <-chan Outcome) tea.Cmd {
	return func() tea.Msg {
		o, ok := <-results
		if !ok {
			return streamClosedMsg{}
		}
		return outcomeMsg(o)
	}
}

func pluralErrors(n int) string {
	if n == 1 {
		return "error"
	}
	return "errors"
}

// RunWatch runs the watch screen full-screen until the user quits or ctx ends
func RunWatch(ctx context.Context, results <-chan Outcome, timeout time.Duration) (WatchModel, error) {
	p := tea.NewProgram(NewWatchModel(results, timeout), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if m, ok := final.(WatchModel); ok && ctx.Err() != nil {
			return m, nil
		}
		return WatchModel{}, fmt.Errorf("watch screen failed: %w", err)
	}
	return final.(WatchModel), nil
}
