package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sevigo/snapreview/internal/client"
	"github.com/sevigo/snapreview/internal/core"
)

const (
	tabSpaces   = "    "
	chromeLines = 5
)

type model struct {
	styles         styles
	catalog        *core.Catalog
	client         reviewClient
	copyFn         func(string) error
	highlightStyle string

	// UI Components
	editor  textarea.Model
	viewer  viewport.Model
	spinner spinner.Model

	state    client.ViewState
	language core.Language
	notice   string
}

func initialModel(theme ThemeName, catalog *core.Catalog, c reviewClient, copyFn func(string) error, highlightStyle string) *model {
	styles := GetTheme(theme)

	ta := textarea.New()
	ta.Placeholder = "Paste or type code here..."
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(60)
	ta.SetHeight(20)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = styles.success

	m := &model{
		styles:         styles,
		catalog:        catalog,
		client:         c,
		copyFn:         copyFn,
		highlightStyle: highlightStyle,
		editor:         ta,
		viewer:         viewport.New(60, 20),
		spinner:        sp,
		language:       catalog.Default(),
	}
	m.refreshViewer()
	return m
}

func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewer, cmd = m.viewer.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.state.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshViewer()
		return m, cmd

	case reviewDoneMsg:
		if msg.err != nil {
			m.state.Fail(msg.err)
		} else {
			m.state.Complete(msg.review)
		}
		m.notice = ""
		m.refreshViewer()
		return m, nil

	case copyResetMsg:
		m.state.ResetCopied(msg.seq)
		m.rerender()
		return m, nil

	case copyFailedMsg:
		m.notice = "Copy failed: " + msg.err.Error()
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refreshViewer()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyTab:
		m.editor.InsertString(tabSpaces)
		return m, nil

	case tea.KeyCtrlS:
		return m, m.submit()

	case tea.KeyCtrlL:
		m.language = m.catalog.Next(m.language.ID)
		return m, nil

	case tea.KeyCtrlY:
		return m, m.copyFix()

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewer, cmd = m.viewer.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// submit starts a review of the editor contents unless one is running.
func (m *model) submit() tea.Cmd {
	if err := m.state.Begin(); err != nil {
		return nil
	}
	m.state.Code = m.editor.Value()
	m.state.Language = m.language.ID
	m.notice = ""
	m.refreshViewer()
	return tea.Batch(m.spinner.Tick, reviewCmd(m.client, m.state.Code, m.state.Language))
}

func (m *model) copyFix() tea.Cmd {
	if !m.state.HasFix || m.state.Busy() {
		return nil
	}
	if err := m.copyFn(m.state.Fix.Code); err != nil {
		return func() tea.Msg { return copyFailedMsg{err: err} }
	}
	seq := m.state.MarkCopied()
	m.rerender()
	return copyResetCmd(seq)
}

func (m *model) resize(width, height int) {
	paneWidth := max((width-6)/2, 20)
	paneHeight := max(height-chromeLines-2, 5)

	m.editor.SetWidth(paneWidth - 2)
	m.editor.SetHeight(paneHeight)
	m.viewer.Width = paneWidth - 2
	m.viewer.Height = paneHeight
}

// refreshViewer re-renders the review pane and scrolls to its end.
func (m *model) refreshViewer() {
	m.rerender()
	m.viewer.GotoBottom()
}

// rerender updates the review pane in place, keeping the scroll position.
func (m *model) rerender() {
	m.viewer.SetContent(m.renderReview())
}

func (m *model) renderReview() string {
	wrap := lipgloss.NewStyle().
		Width(max(m.viewer.Width, 10)).
		TabWidth(lipgloss.NoTabConversion)

	switch m.state.Phase {
	case client.PhaseIdle:
		return m.styles.inactive.Render("Write some code and press ctrl+s to get a review.")
	case client.PhaseInFlight:
		return m.spinner.View() + " " + m.styles.success.Render("Reviewing "+m.state.Language+" code...")
	case client.PhaseFailed:
		return wrap.Inherit(m.styles.error).Render(m.state.Review)
	}

	var b strings.Builder
	b.WriteString(wrap.Render(m.state.Review))
	if m.state.HasFix {
		b.WriteString("\n\n")
		b.WriteString(m.styles.label.Render("Suggested fix"))
		if m.state.Copied {
			b.WriteString("  " + m.styles.success.Render(client.MsgCopied))
		} else {
			b.WriteString("  " + m.styles.inactive.Render("ctrl+y to copy"))
		}
		b.WriteString("\n")
		b.WriteString(client.Highlight(m.state.Fix, m.state.Language, m.highlightStyle, m.catalog))
	}
	return b.String()
}

func (m *model) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Left,
		m.styles.title.Render("snapreview"),
		m.styles.inactive.Render("language: "),
		m.styles.language.Render(m.language.Name),
	)

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.focused.Render(m.editor.View()),
		m.styles.pane.Render(m.viewer.View()),
	)

	help := []string{
		m.styles.key.Render("ctrl+s") + " review",
		m.styles.key.Render("ctrl+l") + " language",
		m.styles.key.Render("ctrl+y") + " copy fix",
		m.styles.key.Render("pgup/pgdn") + " scroll",
		m.styles.key.Render("esc") + " quit",
	}
	footer := m.styles.footer.Render(strings.Join(help, " │ "))
	if m.notice != "" {
		footer = lipgloss.JoinVertical(lipgloss.Left, m.styles.error.Render(m.notice), footer)
	}

	return m.styles.app.Render(lipgloss.JoinVertical(lipgloss.Left, header, panes, footer))
}

