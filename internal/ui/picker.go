package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNothingToPick is returned by PickItem for an empty list.
var ErrNothingToPick = errors.New("nothing to pick from")

// PickerItem is one row of the picker: a wallet or a network.
type PickerItem struct {
	Name    string // returned on selection
	Detail  string // dimmed, e.g. an address or fullnode URL
	Current bool   // marked and preselected
}

type pickerModel struct {
	title  string
	items  []PickerItem
	cursor int
	chosen string
	done   bool
}

// newPicker starts the cursor on the current item, if any.
func newPicker(title string, items []PickerItem) pickerModel {
	m := pickerModel{title: title, items: items}
	for i, it := range items {
		if it.Current {
			m.cursor = i
			break
		}
	}
	return m
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "q", "esc", "ctrl+c":
		m.done = true
		return m, tea.Quit
	case "up", "k", "shift+tab":
		m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(m.items)
	case "enter", " ":
		m.chosen, m.done = m.items[m.cursor].Name, true
		return m, tea.Quit
	default:
		// 1-9 picks a row directly.
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(m.items) {
				m.cursor = i
				m.chosen, m.done = m.items[i].Name, true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.done {
		return ""
	}

	nameWidth := 0
	for _, it := range m.items {
		nameWidth = max(nameWidth, len(it.Name))
	}

	var sb strings.Builder
	sb.WriteString("\n" + StyleTitle.Render("  "+m.title) + "\n\n")
	for i, it := range m.items {
		mark := " "
		if it.Current {
			mark = StyleSuccess.Render("●")
		}
		row := fmt.Sprintf("%d %s %s  %s", i+1, mark, padR(it.Name, nameWidth), StyleMeta.Render(it.Detail))
		if i == m.cursor {
			sb.WriteString(StyleSelected.Render("  ▸ "+row) + "\n")
		} else {
			sb.WriteString("    " + row + "\n")
		}
	}
	sb.WriteString("\n" + StyleMeta.Render("  ↑↓ move · 1-9 or Enter pick · q cancel") + "\n")
	return sb.String()
}

// PickItem asks the user to choose one item and returns its Name, or "" if
// they cancel.
func PickItem(title string, items []PickerItem) (string, error) {
	if len(items) == 0 {
		return "", ErrNothingToPick
	}

	final, err := tea.NewProgram(newPicker(title, items), tea.WithAltScreen()).Run()
	if err != nil {
		return "", fmt.Errorf("picker: %w", err)
	}
	return final.(pickerModel).chosen, nil
}
