package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// WizardResult holds answers collected by the setup wizard.
type WizardResult struct {
	Network       string
	RPCAlgorithm  string
	WalletAddress string
	WalletName    string
}

type wizardStep int

const (
	stepNetwork wizardStep = iota
	stepAlgorithm
	stepWallet
	stepDone
)

type wizardModel struct {
	step      wizardStep
	result    WizardResult
	cursor    int
	choices   []string
	networks  []string
	algos     []string
	input     string
	inputMode bool
	aborted   bool
}

func newWizard(networks, algorithms []string) wizardModel {
	return wizardModel{
		step:     stepNetwork,
		choices:  networks,
		networks: networks,
		algos:    algorithms,
	}
}

func (m wizardModel) Init() tea.Cmd { return nil }

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Type == tea.KeyCtrlC || key.Type == tea.KeyEsc {
		m.aborted = true
		return m, tea.Quit
	}

	switch {
	case key.Type == tea.KeyEnter:
		m.apply()
		m.advance()
	case m.inputMode:
		switch key.Type {
		case tea.KeyBackspace:
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
		case tea.KeyRunes, tea.KeySpace:
			m.input += string(key.Runes)
		}
	default:
		switch key.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		}
	}

	if m.step == stepDone {
		return m, tea.Quit
	}
	return m, nil
}

func (m *wizardModel) apply() {
	switch m.step {
	case stepNetwork:
		m.result.Network = m.choices[m.cursor]
	case stepAlgorithm:
		m.result.RPCAlgorithm = m.choices[m.cursor]
	case stepWallet:
		// Pasted addresses sometimes carry brackets or quotes.
		addr := strings.Trim(strings.TrimSpace(m.input), `[]"'`)
		if addr != "" {
			m.result.WalletAddress = addr
			m.result.WalletName = "default"
		}
	}
}

func (m *wizardModel) advance() {
	m.step++
	m.cursor = 0
	switch m.step {
	case stepAlgorithm:
		m.choices = m.algos
	case stepWallet:
		m.choices = nil
		m.inputMode = true
		m.input = ""
	default:
		m.inputMode = false
	}
}

func (m wizardModel) View() string {
	var s string
	switch m.step {
	case stepNetwork:
		s = renderMenu("Select default network:", m.choices, m.cursor)
	case stepAlgorithm:
		s = renderMenu("Select RPC algorithm for custom fullnodes:", m.choices, m.cursor)
	case stepWallet:
		s = StyleTitle.Render("Add a watch-only wallet (optional)") + "\n\n"
		s += StyleMeta.Render("Enter a Sui address, or press Enter to skip:") + "\n"
		s += "> " + StyleAddress.Render(m.input) + "█\n"
	case stepDone:
		s = Success("Setup complete!") + "\n"
	}
	return StyleBorder.Render(s) + "\n"
}

func renderMenu(title string, items []string, cursor int) string {
	var sb strings.Builder
	sb.WriteString(StyleTitle.Render(title) + "\n\n")
	for i, item := range items {
		if i == cursor {
			sb.WriteString("▸ " + StyleSelected.Render(item) + "\n")
		} else {
			sb.WriteString("  " + StyleValue.Render(item) + "\n")
		}
	}
	sb.WriteString("\n" + StyleMeta.Render("↑/↓ navigate · Enter select · Esc quit"))
	return sb.String()
}

// RunWizard launches the interactive setup wizard. It returns nil when the
// user aborts.
func RunWizard(networks, algorithms []string) (*WizardResult, error) {
	if len(networks) == 0 || len(algorithms) == 0 {
		return nil, fmt.Errorf("wizard needs at least one network and algorithm")
	}
	final, err := tea.NewProgram(newWizard(networks, algorithms)).Run()
	if err != nil {
		return nil, fmt.Errorf("wizard error: %w", err)
	}
	fm := final.(wizardModel)
	if fm.aborted {
		return nil, nil
	}
	return &fm.result, nil
}
