package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/germanamz/chatwire/pkg/session"
)

const newThreadChoice = "__new__"

// pickThread lets the user choose an existing thread or create a new one.
// It runs as a plain terminal form before the TUI starts. Returns the chosen
// thread ID and a display title.
func pickThread(ctx context.Context, list *session.ThreadList) (id, title string, err error) {
	if err := list.Refresh(ctx); err != nil {
		return "", "", fmt.Errorf("list threads: %w", err)
	}

	threads := list.Regular()
	if len(threads) == 0 {
		return createThread(ctx, list)
	}

	opts := make([]huh.Option[string], 0, len(threads)+1)
	opts = append(opts, huh.NewOption("+ New conversation", newThreadChoice))
	for _, t := range threads {
		label := t.Title
		if label == "" {
			label = t.ID
		}
		opts = append(opts, huh.NewOption(
			fmt.Sprintf("%s (%s)", label, t.CreatedAt.Format(time.DateOnly)),
			t.ID,
		))
	}

	var choice string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Pick a conversation").
			Options(opts...).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		return "", "", err
	}

	if choice == newThreadChoice {
		return createThread(ctx, list)
	}

	for _, t := range threads {
		if t.ID == choice {
			return t.ID, t.Title, nil
		}
	}
	return choice, "", nil
}

// createThread prompts for a title and creates the thread on the service.
func createThread(ctx context.Context, list *session.ThreadList) (id, title string, err error) {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Conversation title").
			Description("Leave empty to let the agent title it").
			Value(&title),
	))
	if err := form.Run(); err != nil {
		return "", "", err
	}

	t, err := list.Create(ctx, title)
	if err != nil {
		return "", "", fmt.Errorf("create thread: %w", err)
	}
	return t.ID, t.Title, nil
}
