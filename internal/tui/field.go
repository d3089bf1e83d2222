package tui

import (
	"unicode/utf8"

	"github.com/rivo/tview"

	currencyinput "github.com/goliatone/go-currency-input"
)

// FieldHost adapts a tview.InputField to currencyinput.HostField. The hint is
// shown as the field placeholder.
type FieldHost struct {
	input     *tview.InputField
	hint      string
	selection int
	listeners []func()
}

var (
	_ currencyinput.HostField      = &FieldHost{}
	_ currencyinput.ChangeNotifier = &FieldHost{}
)

// NewFieldHost wraps input and takes over its changed func.
func NewFieldHost(input *tview.InputField) *FieldHost {
	host := &FieldHost{input: input}
	input.SetChangedFunc(func(string) {
		host.notify()
	})
	return host
}

func (h *FieldHost) CurrentText() string {
	return h.input.GetText()
}

func (h *FieldHost) SetText(text string) {
	h.selection = utf8.RuneCountInString(text)
	h.input.SetText(text)
}

// SetSelection records the caret index. tview keeps its own caret at the end
// of text set programmatically.
func (h *FieldHost) SetSelection(index int) {
	length := utf8.RuneCountInString(h.input.GetText())
	switch {
	case index < 0:
		index = 0
	case index > length:
		index = length
	}
	h.selection = index
}

// Selection returns the last caret index requested by the controller.
func (h *FieldHost) Selection() int {
	return h.selection
}

func (h *FieldHost) Hint() string {
	return h.hint
}

func (h *FieldHost) SetHint(hint string) {
	h.hint = hint
	h.input.SetPlaceholder(hint)
}

func (h *FieldHost) OnChange(fn func()) {
	if fn == nil {
		return
	}
	h.listeners = append(h.listeners, fn)
}

func (h *FieldHost) notify() {
	for _, listener := range h.listeners {
		listener()
	}
}
