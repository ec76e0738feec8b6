package main

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/germanamz/chatwire/pkg/session"
	"github.com/germanamz/chatwire/pkg/transcript"
)

// startBridge launches a goroutine that forwards session events to the
// bubbletea program. It only calls p.Send() and never touches model state
// directly. Returns a cancel function that stops the bridge and waits for
// the goroutine to exit, ensuring no stale messages are sent after return.
func startBridge(ctx context.Context, p *tea.Program, events *session.EventBus) context.CancelFunc {
	bridgeCtx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	sub := events.Subscribe(64)

	wg.Go(func() {
		defer events.Unsubscribe(sub)
		for {
			select {
			case <-bridgeCtx.Done():
				return
			case ev, ok := <-sub.C:
				if !ok {
					return
				}
				switch ev.Kind {
				case session.EventTranscript:
					t, ok := ev.Data.(transcript.Transcript)
					if !ok {
						continue
					}
					p.Send(transcriptMsg{transcript: t})

				case session.EventWarning:
					w, ok := ev.Data.(transcript.Warning)
					if !ok {
						continue
					}
					p.Send(warningMsg{warning: w})

				case session.EventError:
					err, ok := ev.Data.(error)
					if !ok {
						continue
					}
					p.Send(streamErrorMsg{err: err})
				}
			}
		}
	})

	return func() {
		cancel()
		wg.Wait()
	}
}
