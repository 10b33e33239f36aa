package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/hy4ri/bubbly-todo/internal/tui/components"
)

// Keymap contains the form-level key bindings. Picker navigation lives in
// components.PickerKeys.
type Keymap struct {
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Back      key.Binding
	Quit      key.Binding
	Ack       key.Binding
	Copy      key.Binding

	Picker components.PickerKeys
}

// DefaultKeymap returns the default bindings.
func DefaultKeymap(vim bool) Keymap {
	return Keymap{
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Ack:       key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "ok")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy message")),
		Picker:    components.DefaultPickerKeys(vim),
	}
}

// formHelp is the help.KeyMap shown under the form; it varies with the focused field.
type formHelp struct {
	keys    Keymap
	focused Field
}

// ShortHelp implements help.KeyMap.
func (h formHelp) ShortHelp() []key.Binding {
	b := []key.Binding{h.keys.NextField, h.keys.Submit, h.keys.Back}
	switch h.focused {
	case FieldDate:
		b = append(b, h.keys.Picker.Left, h.keys.Picker.Right, h.keys.Picker.PrevMonth, h.keys.Picker.NextMonth)
	case FieldCategory:
		b = append(b, h.keys.Picker.Up, h.keys.Picker.Down, h.keys.Picker.Choose)
	}
	return b
}

// FullHelp implements help.KeyMap.
func (h formHelp) FullHelp() [][]key.Binding {
	p := h.keys.Picker
	return [][]key.Binding{
		{h.keys.NextField, h.keys.PrevField, h.keys.Submit, h.keys.Back, h.keys.Quit},
		{p.Left, p.Right, p.Up, p.Down},
		{p.PrevMonth, p.NextMonth, p.Today, p.Reset, p.Choose},
	}
}
