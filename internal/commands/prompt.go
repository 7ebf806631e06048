package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var errEmptyPassword = errors.New("password cannot be empty")

// readPassword reads a password from in. Terminals get a prompt without echo,
// anything else is read up to the first newline.
func readPassword(in io.Reader, out io.Writer, prompt string) (string, error) {
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		fmt.Fprint(out, prompt)

		password, err := term.ReadPassword(int(file.Fd()))

		fmt.Fprintln(out)

		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}

		if len(password) == 0 {
			return "", errEmptyPassword
		}

		return string(password), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errEmptyPassword
	}

	return password, nil
}

// newPassword returns the --password flag or prompts twice for a new password.
func newPassword(in io.Reader, out io.Writer, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	reader := bufio.NewReader(in)

	var src io.Reader = reader
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		src = file
	}

	first, err := readPassword(src, out, "New password: ")
	if err != nil {
		return "", err
	}

	second, err := readPassword(src, out, "Repeat password: ")
	if err != nil {
		return "", err
	}

	if first != second {
		return "", errors.New("passwords do not match")
	}

	return first, nil
}
