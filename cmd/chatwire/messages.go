package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/germanamz/chatwire/pkg/transcript"
)

// transcriptMsg delivers a new transcript snapshot from the bridge goroutine.
type transcriptMsg struct {
	transcript transcript.Transcript
}

// warningMsg delivers a fold warning from the bridge goroutine.
type warningMsg struct {
	warning transcript.Warning
}

// streamErrorMsg delivers a terminal stream error from the bridge goroutine.
type streamErrorMsg struct {
	err error
}

// inputSubmitMsg carries the text the user submitted from the input box.
type inputSubmitMsg struct {
	text string
}

// sendCompleteMsg is returned by the tea.Cmd that calls sess.SendText.
type sendCompleteMsg struct {
	err      error
	duration time.Duration
}

// programReadyMsg passes the *tea.Program to the model so it can start the
// bridge goroutine.
type programReadyMsg struct {
	program *tea.Program
}

// initDrainMsg fires after a short delay so that stale terminal responses
// (e.g. OSC 11 background-color replies) are discarded before focusing input.
type initDrainMsg struct{}

// tickMsg drives the processing spinner.
type tickMsg time.Time
