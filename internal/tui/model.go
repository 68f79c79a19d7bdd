// Package tui is the interactive terminal shell for the comparison session.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hyperjump/kurabe/internal/models"
	"github.com/hyperjump/kurabe/internal/session"
)

// searchFinished carries a search outcome back into the update loop.
type searchFinished struct {
	token session.Token
	resp  *models.SearchResponse
	err   error
}

// Model is the Bubbletea model for the comparison view. All search state
// lives in the session; the model holds only presentation concerns.
type Model struct {
	session *session.Session
	styles  *Styles
	input   textinput.Model
	ctx     context.Context

	width      int
	height     int
	showCharts bool
}

// NewModel creates the TUI model around an existing session.
func NewModel(sess *session.Session) *Model {
	ti := textinput.New()
	ti.Placeholder = "Enter search query..."
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	return &Model{
		session: sess,
		styles:  DefaultStyles(),
		input:   ti,
		ctx:     context.Background(),
		width:   100,
		height:  30,
	}
}

// Init triggers the one-time bootstrap search. The session's own guard makes
// this safe even if Init runs again.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if token, ok := m.session.Bootstrap(); ok {
		m.input.SetValue(token.Request.Query)
		cmds = append(cmds, m.runSearch(token))
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the comparison view.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case searchFinished:
		if m.session.Finish(msg.token, msg.resp, msg.err) {
			// Echo the executed query into the input when the session
			// adjusted its query field (e.g. bootstrap).
			if snap := m.session.Snapshot(); snap.QueryField != m.input.Value() {
				m.input.SetValue(snap.QueryField)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetQueryField(m.input.Value())
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		token, ok := m.session.Start(m.input.Value())
		if !ok {
			return m, nil
		}
		return m, m.runSearch(token)
	case tea.KeyLeft:
		m.session.PrevPage()
		return m, nil
	case tea.KeyRight:
		m.session.NextPage()
		return m, nil
	case tea.KeyTab:
		m.showCharts = !m.showCharts
		return m, nil
	default:
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetQueryField(m.input.Value())
	return m, cmd
}

// runSearch calls the ranking API off the update loop and reports back.
func (m *Model) runSearch(token session.Token) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.session.Searcher().Search(m.ctx, token.Request)
		return searchFinished{token: token, resp: resp, err: err}
	}
}
