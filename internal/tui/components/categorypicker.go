package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/bubbly-todo/internal/edit"
	"github.com/hy4ri/bubbly-todo/internal/tui/styles"
	"github.com/mattn/go-runewidth"
)

// CategoryChosenMsg is emitted when the user chooses a picker row.
type CategoryChosenMsg struct {
	Index int
}

// CategoryPickerModel lists the loaded categories with a cursor.
type CategoryPickerModel struct {
	categories edit.CategorySet
	cursor     int
	chosen     string
	loading    bool
	keys       PickerKeys
	width      int
	height     int
	focused    bool
}

var _ Focusable = (*CategoryPickerModel)(nil)

// NewCategoryPicker creates an empty picker in the loading state.
func NewCategoryPicker(keys PickerKeys) *CategoryPickerModel {
	return &CategoryPickerModel{
		loading: true,
		keys:    keys,
		width:   40,
		height:  8,
	}
}

// SetData replaces the rows and puts the cursor on row.
func (c *CategoryPickerModel) SetData(set edit.CategorySet, row int) {
	c.categories = set
	c.loading = false
	c.cursor = 0
	if row >= 0 && row < set.Len() {
		c.cursor = row
	}
}

// SetChosen marks name as the category that will be submitted.
func (c *CategoryPickerModel) SetChosen(name string) {
	c.chosen = name
}

// Len returns the number of rows.
func (c *CategoryPickerModel) Len() int {
	return c.categories.Len()
}

// Cursor returns the highlighted row.
func (c *CategoryPickerModel) Cursor() int {
	return c.cursor
}

// Init implements Component.
func (c *CategoryPickerModel) Init() tea.Cmd {
	return nil
}

// Update implements Component.
func (c *CategoryPickerModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !c.focused || c.categories.Len() == 0 {
		return c, nil
	}

	switch {
	case key.Matches(keyMsg, c.keys.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(keyMsg, c.keys.Down):
		if c.cursor < c.categories.Len()-1 {
			c.cursor++
		}
	case key.Matches(keyMsg, c.keys.Choose):
		index := c.cursor
		return c, func() tea.Msg {
			return CategoryChosenMsg{Index: index}
		}
	}
	return c, nil
}

// View implements Component.
func (c *CategoryPickerModel) View() string {
	if c.loading {
		return styles.StatusText.Render("Loading categories…")
	}
	if c.categories.Len() == 0 {
		return styles.StatusText.Render("No categories available")
	}

	start, end := c.window()
	nameWidth := c.width - 8
	if nameWidth < 8 {
		nameWidth = 8
	}

	var lines []string
	if start > 0 {
		lines = append(lines, styles.HelpDesc.Render("  ↑ more"))
	}
	for i := start; i < end; i++ {
		name := c.categories.Name(i)
		info, _ := c.categories.Lookup(name)

		cursor := "  "
		style := styles.CategoryItem
		if i == c.cursor && c.focused {
			cursor = "> "
			style = styles.CategorySelected
		}

		label := runewidth.Truncate(name, nameWidth, "…")
		if name == c.chosen {
			label = styles.CategoryChosen.Render(label + " ✓")
		}

		lines = append(lines, style.Render(cursor+styles.CategorySwatch(info.Color)+" "+label))
	}
	if end < c.categories.Len() {
		lines = append(lines, styles.HelpDesc.Render("  ↓ more"))
	}

	return strings.Join(lines, "\n")
}

// window returns the visible row range keeping the cursor in view.
func (c *CategoryPickerModel) window() (int, int) {
	n := c.categories.Len()
	visible := c.height
	if visible < 1 || visible >= n {
		return 0, n
	}

	start := c.cursor - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > n {
		start = n - visible
	}
	return start, start + visible
}

// SetSize implements Component.
func (c *CategoryPickerModel) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// Focus sets focus on the picker.
func (c *CategoryPickerModel) Focus() {
	c.focused = true
}

// Blur removes focus.
func (c *CategoryPickerModel) Blur() {
	c.focused = false
}

// Focused returns focus state.
func (c *CategoryPickerModel) Focused() bool {
	return c.focused
}
