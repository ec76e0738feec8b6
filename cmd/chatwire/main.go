package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/germanamz/chatwire/pkg/session"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: chatwire [flags]\n\nChat with a remote agent from the terminal.\n\nFlags:\n")
		flag.PrintDefaults()
	}

	configPath := flag.String("config", "chatwire.yaml", "path to configuration file")
	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	baseURL := flag.String("base-url", "", "agent service URL (overrides config)")
	agentID := flag.String("agent", "", "agent to talk to (overrides config)")
	threadID := flag.String("thread", "", "conversation thread ID (overrides config; empty prompts a picker)")
	flag.Parse()

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(*configPath, *baseURL, *agentID, *threadID); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, baseURL, agentID, threadID string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if agentID != "" {
		cfg.AgentID = agentID
	}
	if threadID != "" {
		cfg.ThreadID = threadID
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client := cfg.NewClient()

	// Resolve the thread before the TUI starts: either from config/flag or
	// via an interactive picker.
	threadTitle := ""
	if cfg.ThreadID == "" {
		list := session.NewThreadList(client, cfg.AgentID, cfg.ResourceID)
		id, title, err := pickThread(ctx, list)
		if err != nil {
			return err
		}
		cfg.ThreadID = id
		threadTitle = title
	}

	sess := session.New(client, cfg)
	if err := sess.LoadHistory(ctx); err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	model := newAppModel(ctx, sess, threadTitle, cfg.AgentID)

	p := tea.NewProgram(model, tea.WithAltScreen())

	// Send the program reference so the model can start the bridge goroutine.
	go func() {
		p.Send(programReadyMsg{program: p})
	}()

	_, err = p.Run()
	return err
}

// loadConfig reads the config file; a missing file yields a zero config so
// that flags and environment alone can drive the CLI.
func loadConfig(path string) (session.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return session.Config{}, nil
	}
	return session.LoadConfig(path)
}
