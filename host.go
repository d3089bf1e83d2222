package currencyinput

import "unicode/utf8"

// HostField is the editable text widget a Controller drives.
// Indexes are rune offsets into the current text. Implementations must be
// comparable, normally pointers.
type HostField interface {
	CurrentText() string
	SetText(text string)
	SetSelection(index int)
	Hint() string
	SetHint(hint string)
}

// ChangeNotifier is implemented by hosts that report text changes. The
// controller subscribes when it is built, so hosts must also notify for text
// they receive through SetText.
type ChangeNotifier interface {
	OnChange(fn func())
}

// MemoryField is an in memory HostField. SetText notifies listeners
// synchronously, like widget toolkits do.
type MemoryField struct {
	text      string
	hint      string
	selection int
	listeners []func()
}

var (
	_ HostField      = &MemoryField{}
	_ ChangeNotifier = &MemoryField{}
)

// NewMemoryField returns an empty field.
func NewMemoryField() *MemoryField {
	return &MemoryField{}
}

func (f *MemoryField) CurrentText() string {
	return f.text
}

// SetText replaces the text, moves the selection to the end and notifies listeners.
func (f *MemoryField) SetText(text string) {
	f.text = text
	f.selection = utf8.RuneCountInString(text)
	f.notify()
}

func (f *MemoryField) SetSelection(index int) {
	length := utf8.RuneCountInString(f.text)
	switch {
	case index < 0:
		index = 0
	case index > length:
		index = length
	}
	f.selection = index
}

// Selection returns the caret position.
func (f *MemoryField) Selection() int {
	return f.selection
}

func (f *MemoryField) Hint() string {
	return f.hint
}

func (f *MemoryField) SetHint(hint string) {
	f.hint = hint
}

func (f *MemoryField) OnChange(fn func()) {
	if fn == nil {
		return
	}
	f.listeners = append(f.listeners, fn)
}

// Insert types text at the caret, as a keyboard would.
func (f *MemoryField) Insert(text string) {
	runes := []rune(f.text)
	at := f.selection
	if at > len(runes) {
		at = len(runes)
	}
	updated := string(runes[:at]) + text + string(runes[at:])
	f.text = updated
	f.selection = at + utf8.RuneCountInString(text)
	f.notify()
}

// Backspace deletes the rune before the caret.
func (f *MemoryField) Backspace() {
	runes := []rune(f.text)
	at := f.selection
	if at > len(runes) {
		at = len(runes)
	}
	if at == 0 {
		return
	}
	f.text = string(runes[:at-1]) + string(runes[at:])
	f.selection = at - 1
	f.notify()
}

func (f *MemoryField) notify() {
	for _, listener := range f.listeners {
		listener()
	}
}
