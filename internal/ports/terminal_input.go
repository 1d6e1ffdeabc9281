package ports

// TerminalInput provides methods for reading user input from the terminal.
type TerminalInput interface {
	// ReadPassword prompts for a secret and returns the input without echoing it.
	ReadPassword(prompt string) (string, error)
	// ReadLine prompts and returns one line of input with surrounding whitespace removed.
	ReadLine(prompt string) (string, error)
	// IsTerminal returns true if stdin is connected to a terminal.
	IsTerminal() bool
}
