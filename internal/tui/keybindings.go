package tui

import (
	"github.com/gdamore/tcell/v2"
)

// SetupKeyBindings configures keyboard input handling
func SetupKeyBindings(a *App) {
	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			a.app.Stop()
			return nil
		case tcell.KeyTab:
			a.cycleFocus(1)
			return nil
		case tcell.KeyBacktab:
			a.cycleFocus(-1)
			return nil
		}
		return event
	})
}

func (a *App) cycleFocus(delta int) {
	current := a.app.GetFocus()
	next := 0
	for index, primitive := range a.focus {
		if primitive == current {
			next = (index + delta + len(a.focus)) % len(a.focus)
			break
		}
	}
	a.app.SetFocus(a.focus[next])
}
