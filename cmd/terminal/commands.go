package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/snapreview/internal/client"
)

// reviewClient is the part of client.Client the terminal needs.
type reviewClient interface {
	Review(ctx context.Context, code, language string) (string, error)
}

func reviewCmd(c reviewClient, code, language string) tea.Cmd {
	return func() tea.Msg {
		review, err := c.Review(context.Background(), code, language)
		return reviewDoneMsg{review: review, err: err}
	}
}

func copyResetCmd(seq int) tea.Cmd {
	return tea.Tick(client.CopyFeedbackDuration, func(time.Time) tea.Msg {
		return copyResetMsg{seq: seq}
	})
}
