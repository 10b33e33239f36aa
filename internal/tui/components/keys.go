package components

import "github.com/charmbracelet/bubbles/key"

// PickerKeys are the bindings shared by the date and category pickers.
type PickerKeys struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	Reset     key.Binding
	Choose    key.Binding
}

// DefaultPickerKeys returns picker bindings. With vim set, h/j/k/l move as
// well as the arrow keys.
func DefaultPickerKeys(vim bool) PickerKeys {
	up, down, left, right := []string{"up"}, []string{"down"}, []string{"left"}, []string{"right"}
	upHelp, downHelp, leftHelp, rightHelp := "↑", "↓", "←", "→"
	if vim {
		up, down, left, right = append(up, "k"), append(down, "j"), append(left, "h"), append(right, "l")
		upHelp, downHelp, leftHelp, rightHelp = "↑/k", "↓/j", "←/h", "→/l"
	}

	return PickerKeys{
		Up:        key.NewBinding(key.WithKeys(up...), key.WithHelp(upHelp, "up")),
		Down:      key.NewBinding(key.WithKeys(down...), key.WithHelp(downHelp, "down")),
		Left:      key.NewBinding(key.WithKeys(left...), key.WithHelp(leftHelp, "prev day")),
		Right:     key.NewBinding(key.WithKeys(right...), key.WithHelp(rightHelp, "next day")),
		PrevMonth: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next month")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Reset:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "original date")),
		Choose:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "choose")),
	}
}
