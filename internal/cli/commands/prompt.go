package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// errNoTerminal is returned when no terminal is available to prompt on.
var errNoTerminal = errors.New("no terminal available for password prompt; use --password or WARRANT_PASSWORD")

// promptPassword reads a password with echo disabled.
//
// Stdin usually carries provider responses, so the prompt falls back to the
// controlling terminal when stdin is not one.
func promptPassword(prompt io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err != nil {
			return "", errNoTerminal
		}
		defer func() { _ = tty.Close() }()
		fd = int(tty.Fd())
		prompt = tty
	}

	fmt.Fprint(prompt, "Password: ")
	password, err := term.ReadPassword(fd)
	fmt.Fprint(prompt, "\n")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}
