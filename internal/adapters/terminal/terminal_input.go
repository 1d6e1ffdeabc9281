package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"vdash/internal/ports"

	"golang.org/x/term"
)

var _ ports.TerminalInput = (*TerminalInput)(nil)

// TerminalInput reads prompts from stdin using golang.org/x/term.
type TerminalInput struct {
	reader *bufio.Reader
}

func ProvideTerminalInput() *TerminalInput {
	return &TerminalInput{reader: bufio.NewReader(os.Stdin)}
}

func (t *TerminalInput) ReadPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	secret, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(secret), nil
}

func (t *TerminalInput) ReadLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := t.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (t *TerminalInput) IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
