package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/TuPhung369/PasswordEpic/internal/client"
)

var errSecretMismatch = errors.New("passwords do not match")

// terminalReader reads secrets without echo when in is a terminal and falls
// back to reading lines, so secrets can be piped in scripts.
type terminalReader struct {
	in    *os.File
	out   io.Writer
	lines *bufio.Reader
}

func newTerminalReader(in *os.File, out io.Writer) *terminalReader {
	return &terminalReader{in: in, out: out, lines: bufio.NewReader(in)}
}

func (r *terminalReader) ReadSecret(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)

	fd := int(r.in.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(r.out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(secret), nil
	}

	line, err := r.lines.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readNewSecret asks for a secret twice and checks both answers match.
func readNewSecret(r client.SecretReader, prompt string) (string, error) {
	secret, err := r.ReadSecret(prompt)
	if err != nil {
		return "", err
	}
	confirm, err := r.ReadSecret("Repeat " + strings.ToLower(prompt[:1]) + prompt[1:])
	if err != nil {
		return "", err
	}
	if secret != confirm {
		return "", errSecretMismatch
	}
	if secret == "" {
		return "", errors.New("password must not be empty")
	}
	return secret, nil
}
