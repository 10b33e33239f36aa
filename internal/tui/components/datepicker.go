package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/bubbly-todo/internal/api"
	"github.com/hy4ri/bubbly-todo/internal/tui/styles"
)

// DateChangedMsg is emitted when the picked date changes.
type DateChangedMsg struct {
	Date time.Time
}

// DatePickerModel is a month grid for choosing a single day.
type DatePickerModel struct {
	date     time.Time // midnight, local time
	original time.Time
	today    time.Time
	keys     PickerKeys
	focused  bool
}

var _ Focusable = (*DatePickerModel)(nil)

// NewDatePicker creates a picker positioned on initial. today is used for
// highlighting and the "today" key.
func NewDatePicker(initial, today time.Time, keys PickerKeys) *DatePickerModel {
	initial = truncateDay(initial)
	return &DatePickerModel{
		date:     initial,
		original: initial,
		today:    truncateDay(today),
		keys:     keys,
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// daysIn returns the number of days in t's month.
func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// addMonths moves by n months, clamping the day to the target month's length.
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.Local)
	day := t.Day()
	if last := daysIn(first); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.Local)
}

// Init implements Component.
func (d *DatePickerModel) Init() tea.Cmd {
	return nil
}

// Update implements Component.
func (d *DatePickerModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !d.focused {
		return d, nil
	}

	prev := d.date
	switch {
	case key.Matches(keyMsg, d.keys.Left):
		d.date = d.date.AddDate(0, 0, -1)
	case key.Matches(keyMsg, d.keys.Right):
		d.date = d.date.AddDate(0, 0, 1)
	case key.Matches(keyMsg, d.keys.Up):
		d.date = d.date.AddDate(0, 0, -7)
	case key.Matches(keyMsg, d.keys.Down):
		d.date = d.date.AddDate(0, 0, 7)
	case key.Matches(keyMsg, d.keys.PrevMonth):
		d.date = addMonths(d.date, -1)
	case key.Matches(keyMsg, d.keys.NextMonth):
		d.date = addMonths(d.date, 1)
	case key.Matches(keyMsg, d.keys.Today):
		d.date = d.today
	case key.Matches(keyMsg, d.keys.Reset):
		d.date = d.original
	}

	if d.date.Equal(prev) {
		return d, nil
	}
	date := d.date
	return d, func() tea.Msg {
		return DateChangedMsg{Date: date}
	}
}

// View implements Component.
func (d *DatePickerModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Subtitle.Render(d.date.Format("January 2006")))
	b.WriteString("\n")

	for _, wd := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		b.WriteString(styles.CalendarWeekday.Render(fmt.Sprintf(" %s ", wd)))
	}
	b.WriteString("\n")

	first := time.Date(d.date.Year(), d.date.Month(), 1, 0, 0, 0, 0, time.Local)
	startWeekday := int(first.Weekday())
	days := daysIn(first)

	day := 1
	for week := 0; week < 6 && day <= days; week++ {
		for weekday := 0; weekday < 7; weekday++ {
			if (week == 0 && weekday < startWeekday) || day > days {
				b.WriteString("     ")
				continue
			}

			cell := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.Local)
			style := styles.CalendarDay
			switch {
			case cell.Equal(d.date):
				style = styles.CalendarDaySelected
				if !d.focused {
					style = style.Faint(true)
				}
			case cell.Equal(d.today):
				style = styles.CalendarDayToday
			case cell.Equal(d.original):
				style = styles.CalendarDayOriginal
			case weekday == 0 || weekday == 6:
				style = styles.CalendarDayWeekend
			}

			b.WriteString(style.Render(fmt.Sprintf(" %2d ", day)))
			b.WriteString(" ")
			day++
		}
		b.WriteString("\n")
	}

	summary := api.FormatDate(d.date)
	if !d.date.Equal(d.original) {
		summary += " (was " + api.FormatDate(d.original) + ")"
	}
	b.WriteString(styles.HelpDesc.Render(summary))

	return b.String()
}

// SetSize implements Component. The month grid has a fixed width.
func (d *DatePickerModel) SetSize(width, height int) {}

// Focus sets focus on the picker.
func (d *DatePickerModel) Focus() {
	d.focused = true
}

// Blur removes focus.
func (d *DatePickerModel) Blur() {
	d.focused = false
}

// Focused returns focus state.
func (d *DatePickerModel) Focused() bool {
	return d.focused
}

// Date returns the picked date.
func (d *DatePickerModel) Date() time.Time {
	return d.date
}

// Original returns the date the picker started on.
func (d *DatePickerModel) Original() time.Time {
	return d.original
}
