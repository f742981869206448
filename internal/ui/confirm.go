package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Input is where prompts read answers from.
var Input io.Reader = os.Stdin

// Confirm prompts the user with a yes/no question. Returns true for yes.
func Confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", StyleWarning.Render(prompt))
	return isYes(readLine())
}

// ConfirmDanger is Confirm styled for destructive actions.
func ConfirmDanger(prompt string) bool {
	fmt.Printf("%s [y/N]: ", StyleError.Render("⚠ "+prompt))
	return isYes(readLine())
}

// PromptInput asks for a line of free text and returns it trimmed.
func PromptInput(prompt string) string {
	fmt.Printf("%s ", StyleNetwork.Render(prompt))
	return strings.TrimSpace(readLine())
}

func readLine() string {
	line, _ := bufio.NewReader(Input).ReadString('\n')
	return line
}

func isYes(line string) bool {
	line = strings.TrimSpace(strings.ToLower(line))
	return line == "y" || line == "yes"
}
