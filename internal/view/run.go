package view

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run executes cmds and every follow-up they produce, applying each result
// to b on the calling goroutine. It returns once no store operation is in
// flight. Pending banner timers are not waited for.
func Run(ctx context.Context, b *Board, cmds ...tea.Cmd) error {
	done := make(chan struct{})
	defer close(done)

	results := make(chan tea.Msg)
	exec := func(c tea.Cmd) {
		if c == nil {
			return
		}
		go func() {
			msg := c()
			select {
			case results <- msg:
			case <-done:
			}
		}()
	}

	for _, c := range cmds {
		exec(c)
	}

	for b.InFlight() > 0 {
		select {
		case msg := <-results:
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, c := range batch {
					exec(c)
				}
				continue
			}
			exec(b.Update(msg))
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
