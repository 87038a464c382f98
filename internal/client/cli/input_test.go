package cli

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubTerminal(t *testing.T, pw []byte, err error) *int {
	t.Helper()
	origRead, origIs := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = origRead, origIs })

	calls := 0
	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) {
		calls++
		return pw, err
	}
	return &calls
}

func TestPassword_Terminal(t *testing.T) {
	calls := stubTerminal(t, []byte("hidden"), nil)
	out := &bytes.Buffer{}
	r := &runner{in: os.Stdin, reader: bufio.NewReader(os.Stdin), out: out}

	pw, err := r.password()
	require.NoError(t, err)
	assert.Equal(t, "hidden", pw)
	assert.Equal(t, 1, *calls)
	assert.Equal(t, "Password: \n", out.String())
}

func TestPassword_TerminalError(t *testing.T) {
	stubTerminal(t, nil, errors.New("tty gone"))
	r := &runner{in: os.Stdin, reader: bufio.NewReader(os.Stdin), out: &bytes.Buffer{}}

	_, err := r.password()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty gone")
}

func TestPassword_NonFileReaderSkipsTerminal(t *testing.T) {
	calls := stubTerminal(t, []byte("hidden"), nil)
	in := strings.NewReader("typed\n")
	r := &runner{in: in, reader: bufio.NewReader(in), out: &bytes.Buffer{}}

	pw, err := r.password()
	require.NoError(t, err)
	assert.Equal(t, "typed", pw)
	assert.Zero(t, *calls)
}

func TestPassword_EmptyInput(t *testing.T) {
	in := strings.NewReader("")
	r := &runner{in: in, reader: bufio.NewReader(in), out: &bytes.Buffer{}}

	_, err := r.password()
	require.Error(t, err)
}
