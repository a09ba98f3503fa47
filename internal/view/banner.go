package view

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Failure messages shown in the banner, one per operation category.
const (
	MsgLoadFailed   = "Las tareas no han podido ser cargadas."
	MsgAddFailed    = "La tarea no ha podido ser añadida."
	MsgUpdateFailed = "La tarea no ha podido ser actualizada."
	MsgDeleteFailed = "La tarea no ha podido ser eliminada."
)

// Banner is the single shared error bar.
type Banner struct {
	Text    string
	Visible bool

	// seq identifies the latest show; older expiry ticks are ignored.
	seq int
}

type bannerExpiredMsg struct {
	seq int
}

// bannerText appends the HTTP status when there is one.
func bannerText(message string, code int) string {
	if code <= 0 {
		return message
	}
	return fmt.Sprintf("%s (código %d)", message, code)
}

// show replaces the banner text and returns the tick that hides it.
func (bn *Banner) show(text string, delay time.Duration) tea.Cmd {
	bn.seq++
	bn.Text = text
	bn.Visible = true
	seq := bn.seq
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return bannerExpiredMsg{seq: seq}
	})
}

func (bn *Banner) expire(seq int) {
	if seq != bn.seq {
		return
	}
	bn.Visible = false
}
