package main

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// statusBarModel shows the active thread and timing information.
type statusBarModel struct {
	agentID     string
	threadTitle string
	duration    time.Duration
	running     bool
	width       int
}

func newStatusBar(agentID, threadTitle string) statusBarModel {
	return statusBarModel{agentID: agentID, threadTitle: threadTitle}
}

func (m statusBarModel) View() string {
	var parts []string
	parts = append(parts, "agent: "+m.agentID)
	if m.threadTitle != "" {
		parts = append(parts, "thread: "+m.threadTitle)
	}
	switch {
	case m.running:
		parts = append(parts, "streaming... (esc to cancel)")
	case m.duration > 0:
		parts = append(parts, fmtDuration(m.duration))
	}

	line := " " + strings.Join(parts, " · ")
	if m.width > 0 {
		line = runewidth.Truncate(line, m.width, "...")
	}
	return statusStyle.Render(line)
}
