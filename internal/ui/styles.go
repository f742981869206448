// Package ui renders terminal output for the suikit commands.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	ColorSuccess   = lipgloss.Color("#00D26A") // green, success and received funds
	ColorWarning   = lipgloss.Color("#FFB800") // yellow, warnings
	ColorError     = lipgloss.Color("#FF4444") // red, errors and danger
	ColorAddress   = lipgloss.Color("#00B4D8") // cyan, addresses and digests
	ColorValue     = lipgloss.Color("#FFFFFF") // white, amounts
	ColorMeta      = lipgloss.Color("#6B7280") // gray, metadata
	ColorBorder    = lipgloss.Color("#1E3A5F") // dark blue, chrome
	ColorNetwork   = lipgloss.Color("#4DA2FF") // sui blue, network names
	ColorHighlight = lipgloss.Color("#F15BB5") // pink, headers and selection
)

// Base styles.
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleAddress = lipgloss.NewStyle().Foreground(ColorAddress)
	StyleValue   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	StyleMeta    = lipgloss.NewStyle().Foreground(ColorMeta)
	StyleNetwork = lipgloss.NewStyle().Foreground(ColorNetwork).Bold(true)

	StyleBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	StyleDanger = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(ColorError).
			Foreground(ColorError).
			Padding(0, 1)

	StyleSelected = lipgloss.NewStyle().
			Background(ColorHighlight).
			Foreground(lipgloss.Color("#000000")).
			Bold(true)

	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorNetwork).
			Bold(true).
			MarginBottom(1)
)

// Banner returns the suikit banner.
func Banner() string {
	art := `
  ┌─┐┬ ┬┬┬┌─┬┌┬┐
  └─┐│ ││├┴┐│ │
  └─┘└─┘┴┴ ┴┴ ┴ `

	tagline := StyleMeta.Render("  Sui toolkit: faucet, balances, objects, coin selection")
	return StyleNetwork.Render(art) + "\n" + tagline + "\n"
}

// Success formats a success message.
func Success(msg string) string { return StyleSuccess.Render("✓ " + msg) }

// Warn formats a warning message.
func Warn(msg string) string { return StyleWarning.Render("⚠ " + msg) }

// Err formats an error message.
func Err(msg string) string { return StyleError.Render("✗ " + msg) }

// Info formats a neutral status line.
func Info(msg string) string { return StyleNetwork.Render("ℹ ") + msg }

// Hint formats a follow-up suggestion.
func Hint(msg string) string { return StyleMeta.Render("→ " + msg) }

// Addr formats an address.
func Addr(a string) string { return StyleAddress.Render(a) }

// Val formats a value.
func Val(v string) string { return StyleValue.Render(v) }

// Meta formats metadata text.
func Meta(m string) string { return StyleMeta.Render(m) }

// NetworkName formats a network name.
func NetworkName(n string) string { return StyleNetwork.Render(n) }

// DangerBox frames a warning that must not be missed, such as an exported key.
func DangerBox(title string, lines ...string) string {
	body := StyleError.Render("⚠ "+title) + "\n\n" + strings.Join(lines, "\n")
	return StyleDanger.Render(body)
}

// TruncateAddr shortens an address for display: 0x1234…5678.
func TruncateAddr(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// ShortCoinType drops the package address from a coin type:
// "0x2::sui::SUI" becomes "SUI".
func ShortCoinType(coinType string) string {
	if i := strings.LastIndex(coinType, "::"); i >= 0 {
		return coinType[i+2:]
	}
	return coinType
}
