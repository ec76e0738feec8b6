package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/germanamz/chatwire/pkg/session"
)

// appState represents the application state machine.
type appState int

const (
	stateIdle appState = iota
	stateProcessing
)

// appModel is the root bubbletea model.
type appModel struct {
	ctx          context.Context
	sess         *session.Session
	chatView     chatViewModel
	inputBox     inputModel
	statusBar    statusBarModel
	state        appState
	cancelBridge context.CancelFunc
	width        int
	height       int
	sendStart    time.Time
}

func newAppModel(ctx context.Context, sess *session.Session, threadTitle string, agentID string) appModel {
	m := appModel{
		ctx:       ctx,
		sess:      sess,
		chatView:  newChatView(),
		inputBox:  newInput(),
		statusBar: newStatusBar(agentID, threadTitle),
		state:     stateIdle,
	}
	m.chatView.setTranscript(sess.Messages())
	return m
}

func (m appModel) Init() tea.Cmd {
	// Delay focusing the input so that stale terminal escape-sequence
	// responses (e.g. OSC 11 background-color) are drained first.
	return tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg {
		return initDrainMsg{}
	})
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case initDrainMsg:
		cmd := m.inputBox.enable()
		return m, cmd

	case programReadyMsg:
		m.cancelBridge = startBridge(m.ctx, msg.program, m.sess.Events())
		return m, nil

	case inputSubmitMsg:
		return m.handleSubmit(msg)

	case transcriptMsg:
		m.chatView.setTranscript(msg.transcript)
		return m, nil

	case warningMsg:
		m.chatView.addNotice(warningLine(msg.warning))
		return m, nil

	case streamErrorMsg:
		// The send error is surfaced by sendCompleteMsg; bridge errors for
		// the same failure are shown once, dimmed.
		m.chatView.addNotice(dimStyle.Render("✗ " + msg.err.Error()))
		return m, nil

	case sendCompleteMsg:
		m.statusBar.duration = msg.duration
		m.statusBar.running = false
		m.state = stateIdle
		focusCmd := m.inputBox.enable()
		m.chatView.setProcessing(false)
		if msg.err != nil && m.ctx.Err() == nil {
			m.chatView.addNotice(errorStyle.Render("error: " + msg.err.Error()))
		}
		m.recalcLayout()
		return m, focusCmd

	case tickMsg:
		if m.state == stateProcessing {
			m.chatView.advanceSpinner()
			return m, tickCmd()
		}
		return m, nil
	}

	// Delegate to the active sub-component.
	if m.state == stateIdle {
		var cmd tea.Cmd
		m.inputBox, cmd = m.inputBox.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.chatView, cmd = m.chatView.Update(msg)
	return m, cmd
}

func (m appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.chatView.View(),
		m.inputBox.View(),
		m.statusBar.View(),
	)
}

func (m *appModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	initMarkdownRenderer(m.width - 4)
	m.inputBox.setWidth(m.width)
	m.statusBar.width = m.width
	m.recalcLayout()

	var cmd tea.Cmd
	m.chatView, cmd = m.chatView.Update(msg)
	return m, cmd
}

func (m *appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.sess.Cancel()
		if m.cancelBridge != nil {
			m.cancelBridge()
		}
		return m, tea.Quit

	case tea.KeyEsc:
		if m.state == stateProcessing {
			m.sess.Cancel()
			return m, nil
		}
	}

	// Forward to input box when idle, viewport scrolling otherwise.
	if m.state == stateIdle {
		var cmd tea.Cmd
		m.inputBox, cmd = m.inputBox.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.chatView, cmd = m.chatView.Update(msg)
	return m, cmd
}

func (m *appModel) handleSubmit(msg inputSubmitMsg) (tea.Model, tea.Cmd) {
	text := msg.text

	if text == "/quit" || text == "/exit" {
		if m.cancelBridge != nil {
			m.cancelBridge()
		}
		return m, tea.Quit
	}

	if text == "/help" {
		m.chatView.addNotice(helpText())
		m.recalcLayout()
		return m, nil
	}

	m.state = stateProcessing
	m.statusBar.running = true
	m.inputBox.disable()
	m.chatView.setProcessing(true)
	m.sendStart = time.Now()

	// Start the send in a background goroutine via tea.Cmd. The transcript
	// itself arrives through the bridge as the stream folds.
	sess := m.sess
	ctx := m.ctx
	start := m.sendStart
	sendCmd := func() tea.Msg {
		err := sess.SendText(ctx, text)
		return sendCompleteMsg{err: err, duration: time.Since(start)}
	}

	m.recalcLayout()
	return m, tea.Batch(sendCmd, tickCmd())
}

func (m *appModel) recalcLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	statusHeight := 1
	inputHeight := lipgloss.Height(m.inputBox.View())
	chatHeight := max(m.height-inputHeight-statusHeight, 1)
	m.chatView.setSize(m.width, chatHeight)
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func helpText() string {
	return dimStyle.Render(
		"Commands:\n" +
			"  /help          Show this help message\n" +
			"  /quit          Exit the chat\n\n" +
			"Shortcuts:\n" +
			"  Enter          Submit message\n" +
			"  Alt+Enter      New line\n" +
			"  Esc            Cancel the in-flight response\n" +
			"  Ctrl+C         Exit",
	)
}
