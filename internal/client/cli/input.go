package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

var errEmptyPassword = errors.New("password must not be empty")

type fder interface {
	Fd() uintptr
}

// password prompts on out and reads one password. A terminal input is read
// without echo; anything else is read as a single line.
func (r *runner) password() (string, error) {
	if _, err := fmt.Fprint(r.out, "Password: "); err != nil {
		return "", err
	}

	var pw string
	if f, ok := r.in.(fder); ok && isTerminal(int(f.Fd())) {
		b, err := readPassword(int(f.Fd()))
		fmt.Fprintln(r.out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		pw = string(b)
	} else {
		line, err := r.reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", fmt.Errorf("read password: %w", err)
		}
		pw = strings.TrimRight(line, "\r\n")
	}

	if pw == "" {
		return "", errEmptyPassword
	}
	return pw, nil
}
